package config

import "strings"

// Query defaults used when neither flags nor config name a persona or job.
const (
	DefaultPersona = "Travel Planner"
	DefaultJob     = "Plan a trip to Japan including major destinations and accommodations"
)

// ApplyDefaults sets default values for any zero values in cfg and
// normalizes extensions to lowercase with a leading dot.
func ApplyDefaults(cfg *Config) {
	if cfg.Input.Dir == "" {
		cfg.Input.Dir = "./input"
	}
	if cfg.Input.Extensions == nil {
		cfg.Input.Extensions = []string{".pdf"}
	}
	for i, ext := range cfg.Input.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Input.Extensions[i] = ext
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatJSON
	}
	if cfg.Query.Persona == "" {
		cfg.Query.Persona = DefaultPersona
	}
	if cfg.Query.Job == "" {
		cfg.Query.Job = DefaultJob
	}
	if cfg.Ranking.MaxSections == 0 {
		cfg.Ranking.MaxSections = 10
	}
	if cfg.Ranking.ExcerptLength == 0 {
		cfg.Ranking.ExcerptLength = 1000
	}
	if cfg.Ranking.Workers == 0 {
		cfg.Ranking.Workers = 4
	}
	if cfg.Watch.DebounceMS == 0 {
		cfg.Watch.DebounceMS = 500
	}
}
