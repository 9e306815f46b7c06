// Package config loads typed configuration from environment variables.
//
// Values come from the process environment, optionally seeded from .env files
// via github.com/joho/godotenv, and are parsed into structs with
// github.com/caarlos0/env/v11 field tags. Each configuration type is parsed
// once and cached for the lifetime of the process.
//
//	type UploadConfig struct {
//		Dir      string `env:"UPLOAD_DIR" envDefault:"./uploads"`
//		MaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"20971520"`
//	}
//
//	var cfg UploadConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnvFiles must run before the first Load to take effect. Reset clears
// the cache, which tests use to reload after changing the environment.
package config
