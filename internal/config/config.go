package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Reasoning (optional; keyword scorer is the fallback)
	AnthropicAPIKey string
	AnthropicModel  string

	// Segmentation / tree
	SummaryMaxLength  int
	HeadingPatternSrc string

	// Graph
	GraphMaxDepth           float64
	GraphMaxResults         int
	MinEdgeWeight           float64
	EnableCrossReferences   bool
	PrecomputeRelationships bool

	// Search
	SearchMaxResults int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// TTLs
	IndexTTL time.Duration
	JobTTL   time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCINDEX_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		HeadingPatternSrc: os.Getenv("HEADING_PATTERNS"),

		GraphMaxDepth:           envFloat("GRAPH_MAX_DEPTH", 3),
		GraphMaxResults:         envInt("GRAPH_MAX_RESULTS", 10),
		MinEdgeWeight:           envFloat("MIN_EDGE_WEIGHT", 0.1),
		EnableCrossReferences:   envBool("ENABLE_CROSS_REFERENCES", true),
		PrecomputeRelationships: envBool("PRECOMPUTE_RELATIONSHIPS", true),

		SearchMaxResults: envInt("SEARCH_MAX_RESULTS", 10),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		IndexTTL: envDuration("INDEX_TTL", 24*time.Hour),
		JobTTL:   envDuration("JOB_TTL", 1*time.Hour),
	}
	cfg.SummaryMaxLength = envInt("SUMMARY_MAX_LENGTH", 200)

	if cfg.SummaryMaxLength <= 0 {
		cfg.SummaryMaxLength = 200
	}
	if cfg.GraphMaxDepth <= 0 {
		cfg.GraphMaxDepth = 3
	}
	if cfg.GraphMaxResults <= 0 {
		cfg.GraphMaxResults = 10
	}
	if cfg.MinEdgeWeight <= 0 {
		cfg.MinEdgeWeight = 0.1
	}
	if cfg.SearchMaxResults <= 0 {
		cfg.SearchMaxResults = 10
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.IndexTTL <= 0 {
		cfg.IndexTTL = 24 * time.Hour
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCINDEX_API_KEY is required")
	}
	return nil
}

// HeadingPatterns compiles the custom heading regexes. Invalid patterns are
// skipped; misconfiguration should not take the service down.
func (c Config) HeadingPatterns() []*regexp.Regexp {
	if c.HeadingPatternSrc == "" {
		return nil
	}
	var out []*regexp.Regexp
	for _, src := range strings.Split(c.HeadingPatternSrc, ";") {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}
		if re, err := regexp.Compile(src); err == nil {
			out = append(out, re)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
