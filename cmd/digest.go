package cmd

import (
	"ca-ledger/automaton"
	"ca-ledger/crypto"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var digestCmd = &cobra.Command{
	Use:   "digest [text...]",
	Short: "Print the SHA-256 and automaton digests of each argument",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDigest,
}

func init() {
	digestCmd.Flags().Int("rule", int(crypto.CARule), "Automaton rule for the cahash digest")
	digestCmd.Flags().Int("steps", crypto.CASteps, "Automaton generations for the cahash digest")

	viper.BindPFlag("rule", digestCmd.Flags().Lookup("rule"))
	viper.BindPFlag("steps", digestCmd.Flags().Lookup("steps"))
}

func runDigest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rule := automaton.Rule(cfg.Rule)

	data := pterm.TableData{{"Input", crypto.SHA256Mode.String(), crypto.CAHashMode.String()}}
	for _, in := range args {
		data = append(data, []string{
			in,
			crypto.Sum256Hex([]byte(in)),
			crypto.CAHashHex([]byte(in), rule, cfg.Steps),
		})
	}

	pterm.Info.Printfln("cahash: rule %d, %d steps", cfg.Rule, cfg.Steps)
	return renderTable(cmd, data)
}
