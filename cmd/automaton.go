package cmd

import (
	"fmt"

	"ca-ledger/automaton"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var automatonCmd = &cobra.Command{
	Use:   "automaton",
	Short: "Print the generations of elementary cellular automata",
	Long:  `Evolve a single live cell under each rule and print one line per generation.`,
	RunE:  runAutomaton,
}

func init() {
	automatonCmd.Flags().IntSlice("rules", []int{30, 90, 110}, "Rules to evolve")
	automatonCmd.Flags().Int("width", 21, "Number of cells")
	automatonCmd.Flags().Int("generations", 15, "Generations to print per rule")

	viper.BindPFlag("width", automatonCmd.Flags().Lookup("width"))
	viper.BindPFlag("generations", automatonCmd.Flags().Lookup("generations"))
}

func runAutomaton(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rules, _ := cmd.Flags().GetIntSlice("rules")

	for _, r := range rules {
		if r < 0 || r > 255 {
			return fmt.Errorf("invalid rule %d: must be between 0 and 255", r)
		}
		pterm.DefaultSection.Printfln("Rule %d", r)
		ca := automaton.New(automaton.Rule(r))
		ca.Init(automaton.SingleSeed(cfg.Width))
		for g := 0; g < cfg.Generations; g++ {
			fmt.Fprintln(cmd.OutOrStdout(), ca.String())
			ca.Step()
		}
	}
	return nil
}
