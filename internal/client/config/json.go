package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/wealthwise/internal/timex"
)

// JSONConfig is the on-disk shape. Absent fields leave the current value
// alone. Durations accept "5s" or integer nanoseconds.
type JSONConfig struct {
	BaseURL             string          `json:"base_url"`
	SimulatedAuth       *bool           `json:"simulated_auth"`
	Timeout             *timex.Duration `json:"timeout"`
	DataFile            string          `json:"data_file"`
	ExportDir           string          `json:"export_dir"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
	S3                  *struct {
		Endpoint  string `json:"endpoint"`
		Region    string `json:"region"`
		Bucket    string `json:"bucket"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
		Prefix    string `json:"prefix"`
	} `json:"s3"`
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJSON overlays cfg with the file at path. An empty path is a no-op.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.DataFile, jc.DataFile)
	setIf(&cfg.ExportDir, jc.ExportDir)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	if jc.SimulatedAuth != nil {
		cfg.SimulatedAuth = *jc.SimulatedAuth
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if s := jc.S3; s != nil {
		setIf(&cfg.S3.Endpoint, s.Endpoint)
		setIf(&cfg.S3.Region, s.Region)
		setIf(&cfg.S3.Bucket, s.Bucket)
		setIf(&cfg.S3.AccessKey, s.AccessKey)
		setIf(&cfg.S3.SecretKey, s.SecretKey)
		setIf(&cfg.S3.Prefix, s.Prefix)
	}
	return nil
}
