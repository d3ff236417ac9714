package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/dmitrijs2005/wealthwise/internal/flagx"
)

// Config holds runtime settings for the WealthWise CLI.
type Config struct {
	BaseURL             string
	SimulatedAuth       bool
	Timeout             time.Duration
	DataFile            string
	ExportDir           string
	OnlineCheckInterval time.Duration
	LogLevel            string
	LogFormat           string
	S3                  export.S3Settings
}

// DefaultEnvFile is the dotenv file read when present.
const DefaultEnvFile = ".env"

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.SimulatedAuth = false
	c.Timeout = 5 * time.Second
	c.DataFile = "wealthwise.db"
	c.ExportDir = "exports"
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "console"
	c.S3 = export.S3Settings{Region: "us-east-1"}
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	switch c.LogFormat {
	case "console", "text", "json":
	default:
		return fmt.Errorf("log format must be console, text or json, got %q", c.LogFormat)
	}
	return nil
}

// Load builds a Config from defaults, the dotenv file and environment,
// the JSON file named by -c/-config, then flags. Later sources win.
func Load(args []string, envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, envFile); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and DefaultEnvFile.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], DefaultEnvFile)
}
