// Package config provides configuration management for storage-probe.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults are declared next to each field with a
// `default` struct tag and checked with `validate` tags after loading.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: provider, endpoint, credentials mode, bucket and retry policy
//   - Log: Logging level and format
//   - Database: optional run history database
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Endpoint)
package config
