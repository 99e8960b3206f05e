package ranking

// Fixed scoring weights.
const (
	LexicalMultiplier = 10.0
	TitleTermBonus    = 5.0
	BodyTermBonus     = 2.0
	BodyLengthBonus   = 2.0
	TitleShapeBonus   = 1.0

	MinBodyLength  = 100
	MaxBodyLength  = 2000
	MinTitleWords  = 2
	MaxTitleWords  = 12
	MaxPerDocument = 2
)

// RankingConfig holds the tunable caps of a ranking pass.
type RankingConfig struct {
	MaxSections int `yaml:"max_sections"` // default: 10
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		MaxSections: 10,
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()
	if c.MaxSections <= 0 {
		c.MaxSections = defaults.MaxSections
	}
}
