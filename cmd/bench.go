package cmd

import (
	"ca-ledger/benchmark"
	"ca-ledger/crypto"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark mining with SHA-256 against the automaton digest",
	Long: `For every difficulty in --difficulties, mine --blocks blocks on a fresh chain per
hash mode and report the mean time and mean attempts per block.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntSlice("difficulties", benchmark.DefaultConfig.Difficulties, "Difficulties to benchmark")
	viper.BindPFlag("difficulties", benchCmd.Flags().Lookup("difficulties"))
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pterm.Info.Println("Benchmarking mining performance...")
	report := benchmark.RunAll(benchmark.Config{
		Difficulties: cfg.Difficulties,
		Modes:        crypto.Modes,
		Blocks:       cfg.Blocks,
	})

	pterm.DefaultSection.Printfln("BENCHMARK RESULTS (Average over %d blocks)", cfg.Blocks)
	data := pterm.TableData{report.Header()}
	data = append(data, report.Rows()...)
	return renderTable(cmd, data)
}
