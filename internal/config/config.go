// Package config holds the pipeline's runtime configuration (§1.1, §6): a
// single immutable Config value built once at startup from environment
// variables, validated by a Validator, and threaded explicitly through the
// orchestrator and every layer. There is no package-level mutable singleton.
package config

import (
	"os"
	"runtime"
	"strconv"
)

// Config carries every tunable named in §6's environment-variable table.
type Config struct {
	// Debug gates the debug-log channel (internal/debug). Mirrors PIPELINE_DEBUG.
	Debug bool

	// MinLineCount and MinUniqueTokens are the Layer 0 complexity gate (§4.5).
	MinLineCount    int
	MinUniqueTokens int

	// StructuralThreshold is Layer 2's acceptance threshold (§4.7, §4.10).
	StructuralThreshold float64

	// SemanticThreshold is Layer 3's weighted-Jaccard acceptance threshold (§4.8).
	SemanticThreshold float64

	// MinGroupQuality is the Quality Gate's acceptance floor (§4.9).
	MinGroupQuality float64

	// OppositeLogicPenalty, StatusCodePenalty and SemanticMethodPenalty are the
	// Structural Comparator's multiplicative semantic penalties (§4.3).
	OppositeLogicPenalty  float64
	StatusCodePenalty     float64
	SemanticMethodPenalty float64

	// MaxParallelism caps Layer 2's in-flight partition workers (§5).
	MaxParallelism int

	// MaxPatternMatches and MaxMatchedTextBytes bound ingestion input size (§5, §6).
	MaxPatternMatches   int
	MaxMatchedTextBytes int
}

// Load builds a Config from the environment, falling back to the §6 defaults
// for any variable that is unset or fails to parse.
func Load() *Config {
	return &Config{
		Debug:                 os.Getenv("PIPELINE_DEBUG") != "",
		MinLineCount:          envInt("MIN_LINE_COUNT", 1),
		MinUniqueTokens:       envInt("MIN_UNIQUE_TOKENS", 3),
		StructuralThreshold:   envFloat("STRUCTURAL_THRESHOLD", 0.90),
		SemanticThreshold:     envFloat("SEMANTIC_SIMILARITY_THRESHOLD", 0.70),
		MinGroupQuality:       envFloat("MIN_GROUP_QUALITY", 0.70),
		OppositeLogicPenalty:  envFloat("OPPOSITE_LOGIC_PENALTY", 0.80),
		StatusCodePenalty:     envFloat("STATUS_CODE_PENALTY", 0.70),
		SemanticMethodPenalty: envFloat("SEMANTIC_METHOD_PENALTY", 0.75),
		MaxParallelism:        envInt("MAX_PARALLELISM", 0), // 0 = auto-detect, see setSmartDefaults
		MaxPatternMatches:     envInt("MAX_PATTERN_MATCHES", 50000),
		MaxMatchedTextBytes:   envInt("MAX_MATCHED_TEXT_BYTES", 100000),
	}
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(name string, def float64) float64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// defaultParallelism mirrors the teacher's "leave headroom, minimum of 1"
// sizing convention (Validator.setSmartDefaults).
func defaultParallelism() int {
	return max(1, runtime.NumCPU()-1)
}
