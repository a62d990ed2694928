// Package config provides configuration management for s3lib.
//
// It uses Viper for environment variables and godotenv for an optional .env
// file. Defaults come from the `default` struct tags of each section, and
// environment variables map onto nested keys (STORAGE_DRIVER -> storage.driver).
//
// # Configuration Structure
//
//   - Storage: driver (minio, aws, local), endpoint, credentials, region, local root
//   - Log: level and format
//   - Server: HTTP port, API key and request body limit
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Endpoint)
package config
