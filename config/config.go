package config

import (
	"fmt"
	"strings"

	"ca-ledger/consensus"
	"ca-ledger/crypto"
	"ca-ledger/logger"

	"github.com/spf13/viper"
)

// Config struct holds all configuration for the application.
// Tags are used by viper to map ENV variables and config file keys.
type Config struct {
	// Ledger configuration
	HashMode   string `mapstructure:"hash_mode"`  // "sha256" or "cahash"
	Difficulty int    `mapstructure:"difficulty"` // leading '0' hex characters
	Blocks     int    `mapstructure:"blocks"`     // blocks appended by chain and bench

	// Benchmark configuration
	Difficulties []int `mapstructure:"difficulties"`

	// Automaton configuration (digest and automaton commands only; the
	// ledger always uses rule 30 and 100 steps)
	Rule        int `mapstructure:"rule"`
	Steps       int `mapstructure:"steps"`
	Width       int `mapstructure:"width"`
	Generations int `mapstructure:"generations"`

	// Logging configuration
	LogLevel  string `mapstructure:"log_level"` // e.g., "debug", "info", "warn", "error"
	Verbosity int    `mapstructure:"verbosity"` // Alternative to LogLevel, 0-5
}

// defaultConfig holds the unexported default configuration values.
var defaultConfig = Config{
	HashMode:     "sha256",
	Difficulty:   4,
	Blocks:       10,
	Difficulties: []int{3, 4},
	Rule:         int(crypto.CARule),
	Steps:        crypto.CASteps,
	Width:        21,
	Generations:  15,
	LogLevel:     "info",
	Verbosity:    3,
}

// DefaultConfig is an exported version of defaultConfig, allowing other packages
// to access the default values, for example, when setting up CLI flags.
var DefaultConfig = defaultConfig

// LoadConfig loads configuration from file, environment variables, and flags.
func LoadConfig() (*Config, error) {
	currentConfig := DefaultConfig
	// Decoding into a populated slice would keep trailing defaults.
	currentConfig.Difficulties = nil

	if err := viper.Unmarshal(&currentConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config from Viper: %w", err)
	}
	if !viper.IsSet("difficulties") {
		currentConfig.Difficulties = append([]int(nil), DefaultConfig.Difficulties...)
	}

	loadedConfigMsg := fmt.Sprintf("Effective config: HashMode='%s', Difficulty=%d, Blocks=%d, Difficulties=%v, Rule=%d, Steps=%d, LogLevel='%s'",
		currentConfig.HashMode, currentConfig.Difficulty, currentConfig.Blocks, currentConfig.Difficulties, currentConfig.Rule, currentConfig.Steps, currentConfig.LogLevel)
	logger.Debug(loadedConfigMsg)

	if err := validate(&currentConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &currentConfig, nil
}

func validate(config *Config) error {
	if _, err := crypto.ParseHashMode(config.HashMode); err != nil {
		return err
	}
	if config.Difficulty < 0 || config.Difficulty > consensus.MaxDifficulty {
		return fmt.Errorf("%w: %d, must be between 0 and %d", consensus.ErrInvalidDifficulty, config.Difficulty, consensus.MaxDifficulty)
	}
	for _, d := range config.Difficulties {
		if d < 0 || d > consensus.MaxDifficulty {
			return fmt.Errorf("%w: benchmark difficulty %d, must be between 0 and %d", consensus.ErrInvalidDifficulty, d, consensus.MaxDifficulty)
		}
	}
	if config.Rule < 0 || config.Rule > 255 {
		return fmt.Errorf("invalid rule %d: must be between 0 and 255", config.Rule)
	}

	if config.Blocks <= 0 {
		logger.Warningf("Blocks is invalid (%d), using default: %d", config.Blocks, DefaultConfig.Blocks)
		config.Blocks = DefaultConfig.Blocks
	}
	if len(config.Difficulties) == 0 {
		logger.Warningf("No benchmark difficulties configured, using default: %v", DefaultConfig.Difficulties)
		config.Difficulties = append([]int(nil), DefaultConfig.Difficulties...)
	}
	if config.Steps < 0 {
		logger.Warningf("Steps is invalid (%d), using default: %d", config.Steps, DefaultConfig.Steps)
		config.Steps = DefaultConfig.Steps
	}
	if config.Width <= 0 {
		logger.Warningf("Width is invalid (%d), using default: %d", config.Width, DefaultConfig.Width)
		config.Width = DefaultConfig.Width
	}
	if config.Generations < 0 {
		logger.Warningf("Generations is invalid (%d), using default: %d", config.Generations, DefaultConfig.Generations)
		config.Generations = DefaultConfig.Generations
	}
	return nil
}

// GetHashMode returns the parsed hash mode. LoadConfig has already validated it.
func (c *Config) GetHashMode() crypto.HashMode {
	mode, err := crypto.ParseHashMode(c.HashMode)
	if err != nil {
		logger.Warningf("Unknown hash_mode '%s', falling back to sha256", c.HashMode)
		return crypto.SHA256Mode
	}
	return mode
}

func (c *Config) GetLogLevel() logger.LogLevel {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "trace":
		return logger.DEBUG
	case "info":
		return logger.INFO
	case "warn", "warning":
		return logger.WARNING
	case "error":
		return logger.ERROR
	case "fatal":
		return logger.FATAL
	default:
		logger.Warningf("Unknown log_level '%s', falling back to verbosity %d", c.LogLevel, c.Verbosity)
		switch c.Verbosity {
		case 0, 1:
			return logger.ERROR
		case 2:
			return logger.WARNING
		case 3:
			return logger.INFO
		case 4, 5:
			return logger.DEBUG
		default:
			logger.Warningf("Unknown verbosity level %d, defaulting to INFO", c.Verbosity)
			return logger.INFO
		}
	}
}
