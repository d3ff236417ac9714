package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables. Real environment values override the dotenv file.
const (
	EnvBaseURL       = "WEALTHWISE_BASE_URL"
	EnvSimulatedAuth = "WEALTHWISE_SIMULATED_AUTH"
	EnvTimeout       = "WEALTHWISE_TIMEOUT"
	EnvDataFile      = "WEALTHWISE_DATA_FILE"
	EnvExportDir     = "WEALTHWISE_EXPORT_DIR"
	EnvCheckInterval = "WEALTHWISE_CHECK_INTERVAL"
	EnvLogLevel      = "WEALTHWISE_LOG_LEVEL"
	EnvLogFormat     = "WEALTHWISE_LOG_FORMAT"
	EnvS3Endpoint    = "WEALTHWISE_S3_ENDPOINT"
	EnvS3Region      = "WEALTHWISE_S3_REGION"
	EnvS3Bucket      = "WEALTHWISE_S3_BUCKET"
	EnvS3AccessKey   = "WEALTHWISE_S3_ACCESS_KEY"
	EnvS3SecretKey   = "WEALTHWISE_S3_SECRET_KEY"
	EnvS3Prefix      = "WEALTHWISE_S3_PREFIX"
)

// readEnv merges the dotenv file (when it exists) with the process
// environment.
func readEnv(envFile string) (map[string]string, error) {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		default:
			vars = fileVars
		}
	}
	for _, k := range []string{
		EnvBaseURL, EnvSimulatedAuth, EnvTimeout, EnvDataFile, EnvExportDir, EnvCheckInterval, EnvLogLevel, EnvLogFormat,
		EnvS3Endpoint, EnvS3Region, EnvS3Bucket, EnvS3AccessKey, EnvS3SecretKey, EnvS3Prefix,
	} {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}
	return vars, nil
}

func parseEnv(cfg *Config, envFile string) error {
	vars, err := readEnv(envFile)
	if err != nil {
		return err
	}

	str := func(key string, dst *string) {
		if v, ok := vars[key]; ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := vars[key]
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvBaseURL, &cfg.BaseURL)
	str(EnvDataFile, &cfg.DataFile)
	str(EnvExportDir, &cfg.ExportDir)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvLogFormat, &cfg.LogFormat)
	str(EnvS3Endpoint, &cfg.S3.Endpoint)
	str(EnvS3Region, &cfg.S3.Region)
	str(EnvS3Bucket, &cfg.S3.Bucket)
	str(EnvS3AccessKey, &cfg.S3.AccessKey)
	str(EnvS3SecretKey, &cfg.S3.SecretKey)
	str(EnvS3Prefix, &cfg.S3.Prefix)

	if v, ok := vars[EnvSimulatedAuth]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSimulatedAuth, err)
		}
		cfg.SimulatedAuth = b
	}
	if err := dur(EnvTimeout, &cfg.Timeout); err != nil {
		return err
	}
	return dur(EnvCheckInterval, &cfg.OnlineCheckInterval)
}
