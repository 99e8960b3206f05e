package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables that override the config file. A .env file in the
// working directory is loaded into the environment by the CLI first.
const (
	EnvInputDir     = "YOMU_INPUT_DIR"
	EnvRequest      = "YOMU_REQUEST"
	EnvOutputPath   = "YOMU_OUTPUT"
	EnvOutputFormat = "YOMU_FORMAT"
	EnvPersona      = "YOMU_PERSONA"
	EnvJob          = "YOMU_JOB"
	EnvMaxSections  = "YOMU_MAX_SECTIONS"
	EnvDebug        = "YOMU_DEBUG"
)

// ApplyEnv overrides cfg with any set YOMU_* variables and validates the result.
// Numeric and boolean variables that do not parse are ignored.
func ApplyEnv(cfg *Config) error {
	if v := env(EnvInputDir); v != "" {
		cfg.Input.Dir = v
	}
	if v := env(EnvRequest); v != "" {
		cfg.Input.Request = v
	}
	if v := env(EnvOutputPath); v != "" {
		cfg.Output.Path = v
	}
	if v := env(EnvOutputFormat); v != "" {
		cfg.Output.Format = strings.ToLower(v)
	}
	if v := env(EnvPersona); v != "" {
		cfg.Query.Persona = v
	}
	if v := env(EnvJob); v != "" {
		cfg.Query.Job = v
	}
	if n, err := strconv.Atoi(env(EnvMaxSections)); err == nil && n > 0 {
		cfg.Ranking.MaxSections = n
	}
	if b, err := strconv.ParseBool(env(EnvDebug)); err == nil {
		cfg.Debug = b
	}
	return cfg.Validate()
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
