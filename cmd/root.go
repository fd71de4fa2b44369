package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ca-ledger/config"
	"ca-ledger/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "caledger",
	Short: "Cellular automaton hash ledger",
	Long: `caledger mines a minimal proof-of-work ledger with either SHA-256 or an
experimental rule 30 cellular automaton digest, and benchmarks the two.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(automatonCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(benchCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.caledger/config.yaml or ./config.yaml)")

	// Defaults here are only for help text; viper.Unmarshal starts from config.DefaultConfig.
	rootCmd.PersistentFlags().String("hash_mode", config.DefaultConfig.HashMode, "Digest used for blocks (sha256, cahash)")
	rootCmd.PersistentFlags().Int("difficulty", config.DefaultConfig.Difficulty, "Leading '0' hex characters required of a mined block hash")
	rootCmd.PersistentFlags().Int("blocks", config.DefaultConfig.Blocks, "Number of blocks to mine")
	rootCmd.PersistentFlags().String("log_level", config.DefaultConfig.LogLevel, "Logging level (debug, info, warn, error, fatal)")

	viper.BindPFlag("hash_mode", rootCmd.PersistentFlags().Lookup("hash_mode"))
	viper.BindPFlag("difficulty", rootCmd.PersistentFlags().Lookup("difficulty"))
	viper.BindPFlag("blocks", rootCmd.PersistentFlags().Lookup("blocks"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".caledger"))
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CALEDGER") // e.g. CALEDGER_DIFFICULTY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintf(os.Stderr, "Error reading config file '%s': %s\n", viper.ConfigFileUsed(), err)
	}
}

// loadConfig resolves the effective configuration and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetLevel(cfg.GetLogLevel())
	return cfg, nil
}
