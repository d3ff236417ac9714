// Package config loads runtime configuration for the WealthWise CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (".env" by default) and the process environment,
//     WEALTHWISE_* variables; the environment beats the file.
//  3. A JSON file named by -c or -config.
//  4. Command-line flags.
//
// Flags
//
//	-a string   backend base URL
//	-m          serve authentication from the simulated backend
//	-t int      network timeout (seconds)
//	-d string   local database file
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so "5s" and integer nanoseconds both work:
//
//	{
//	  "base_url": "http://localhost:8000",
//	  "simulated_auth": false,
//	  "timeout": "5s",
//	  "data_file": "wealthwise.db",
//	  "export_dir": "exports",
//	  "online_check_interval": "3s",
//	  "log_level": "info",
//	  "s3": {"endpoint": "http://localhost:9000", "bucket": "exports", "prefix": "wealthwise"}
//	}
package config
