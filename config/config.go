package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ResultsFile string   `mapstructure:"results_file"`
	OutputDir   string   `mapstructure:"output_dir"`
	Formats     []string `mapstructure:"formats"`
	PlanFile    string   `mapstructure:"plan_file"`
	LogLevel    string   `mapstructure:"log_level"`
	Alpha       float64  `mapstructure:"alpha"`
	Width       int      `mapstructure:"width"`
	Height      int      `mapstructure:"height"`
}

var (
	config    *Config
	configErr error
	once      sync.Once
)

// Load reads configuration from defaults, an optional config file, an
// optional .env file and RESULTS_* environment variables, later sources
// overriding earlier ones.
func Load(cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("RESULTS")
	v.AutomaticEnv()

	v.SetDefault("results_file", "results.csv")
	v.SetDefault("output_dir", "figures")
	v.SetDefault("formats", []string{"png"})
	v.SetDefault("plan_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("alpha", 0.01)
	v.SetDefault("width", 1024)
	v.SetDefault("height", 768)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return nil, fmt.Errorf("alpha must be in (0, 1), got %v", c.Alpha)
	}
	return &c, nil
}

// GetConfig returns the configuration loaded without a config file, loading
// it on first use. A failed load is remembered and returned on every call.
func GetConfig() (*Config, error) {
	once.Do(func() {
		config, configErr = Load("")
	})
	return config, configErr
}
