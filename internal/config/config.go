package config

import "time"

// Config holds the full credo configuration.
// Hierarchy: CLI flags > CREDO_* env vars > ~/.credo/config.yaml > defaults.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	LLM        LLMConfig        `yaml:"llm"`
	Heuristics HeuristicWeights `yaml:"heuristics"`
	Segment    SegmentConfig    `yaml:"segment"`
	Batch      BatchConfig      `yaml:"batch"`
	Output     OutputConfig     `yaml:"output"`
}

// HTTPConfig controls article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// CacheConfig controls the LLM response cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory
	MemoryTTL time.Duration `yaml:"memory_ttl"` // Memory layer only; disk entries never expire
}

// LLMConfig controls the external model call.
// The API key is injected by the CLI from the environment and is never
// written to the config file or the cache.
type LLMConfig struct {
	Provider         string   `yaml:"provider"` // "openai" or "" (mock only)
	Model            string   `yaml:"model"`
	PromptVersion    string   `yaml:"prompt_version"`
	APIKey           string   `yaml:"-"`
	BaseURL          string   `yaml:"base_url,omitempty"`
	TimeoutSeconds   int      `yaml:"timeout_seconds"`
	MaxTokens        int      `yaml:"max_tokens"`
	RecognizedModels []string `yaml:"recognized_models"`
	RequestsPerSec   float64  `yaml:"requests_per_sec"` // Rate limit for live calls
	Burst            int      `yaml:"burst"`
}

// HeuristicWeights are the signed rule weights. All are applied to a
// baseline of 100; negative values penalize.
type HeuristicWeights struct {
	AllCaps        float64 `yaml:"all_caps"`        // Per sentence with excessive capitalization
	Clickbait      float64 `yaml:"clickbait"`       // Per clickbait lexicon hit
	Exclamation    float64 `yaml:"exclamation"`     // Per sentence with excessive ! density
	NoAttribution  float64 `yaml:"no_attribution"`  // Once, when no sentence attributes a source
	Attribution    float64 `yaml:"attribution"`     // Per attributed sentence (capped)
	Hedging        float64 `yaml:"hedging"`         // Once, when hedging ratio is high
	Citation       float64 `yaml:"citation"`        // Per external link (capped)
}

// SegmentConfig controls sentence segmentation
type SegmentConfig struct {
	AbbrevFile string `yaml:"abbrev_file"` // Override abbreviation resource; "" = built-in
}

// BatchConfig controls batch processing
type BatchConfig struct {
	Workers        int     `yaml:"workers"`
	RequestsPerSec float64 `yaml:"requests_per_sec"` // Per-domain fetch rate
	Burst          int     `yaml:"burst"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Credo/0.2 (+https://github.com/credo-scan/credo)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.credo/cache by the CLI
			MemoryTTL: 30 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			PromptVersion:  "v1",
			TimeoutSeconds: 30,
			MaxTokens:      1000,
			RecognizedModels: []string{
				"gpt-4o-mini",
				"gpt-4o",
				"gpt-4.1-mini",
				"gpt-4.1",
			},
			RequestsPerSec: 1,
			Burst:          2,
		},
		Heuristics: DefaultHeuristicWeights(),
		Segment:    SegmentConfig{},
		Batch: BatchConfig{
			Workers:        4,
			RequestsPerSec: 2,
			Burst:          5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// DefaultHeuristicWeights returns the documented default rule weights.
// These are configurable constants, not tuned values.
func DefaultHeuristicWeights() HeuristicWeights {
	return HeuristicWeights{
		AllCaps:       -12,
		Clickbait:     -15,
		Exclamation:   -10,
		NoAttribution: -15,
		Attribution:   3,
		Hedging:       -8,
		Citation:      2,
	}
}
