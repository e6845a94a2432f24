package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// Environment variables that override file values.
const (
	EnvOutput   = "PAGEWRIGHT_OUTPUT"
	EnvProfile  = "PAGEWRIGHT_PROFILE"
	EnvHost     = "PAGEWRIGHT_HOST"
	EnvPort     = "PAGEWRIGHT_PORT"
	EnvLogLevel = "PAGEWRIGHT_LOG_LEVEL"
)

// loadEnvFiles loads .env.local then .env. godotenv never overrides variables
// that are already set, so .env.local wins over .env and the process
// environment wins over both. Missing files are ignored.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output.Directory = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		cfg.Output.Profile = Profile(v)
	}
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid "+EnvPort).Fatal().Build()
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = LogLevel(v)
	}
	return nil
}
