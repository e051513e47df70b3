// Package model defines the data shapes that flow through the
// duplicate-grouping pipeline: CodeBlock in, DuplicateGroup out, plus the
// side-tables the Annotator and Structural Comparator attach along the way.
package model

import "fmt"

// Category is the closed set a block's pattern_id is mapped to.
type Category string

const (
	CategoryUtility           Category = "utility"
	CategoryHelper            Category = "helper"
	CategoryValidator         Category = "validator"
	CategoryAPIHandler        Category = "api_handler"
	CategoryAuthCheck         Category = "auth_check"
	CategoryDatabaseOperation Category = "database_operation"
	CategoryErrorHandler      Category = "error_handler"
	CategoryLogger            Category = "logger"
	CategoryConfigAccess      Category = "config_access"
	CategoryFileOperation     Category = "file_operation"
	CategoryAsyncPattern      Category = "async_pattern"
	CategoryUnknown           Category = "unknown"
)

// SimilarityMethod records which layer accepted a DuplicateGroup.
type SimilarityMethod string

const (
	MethodExactMatch SimilarityMethod = "exact_match"
	MethodStructural SimilarityMethod = "structural"
	MethodSemantic   SimilarityMethod = "semantic"
)

// PriorityLevel buckets a DuplicateGroup's impact_score.
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

// Location is a block's span within a file.
type Location struct {
	FilePath  string `json:"file_path"`
	LineStart int    `json:"line_start"`
	LineEnd   int    `json:"line_end"`
}

// CodeBlock is a candidate unit produced by ingestion from an external
// pattern match (§3, §6).
type CodeBlock struct {
	BlockID     string   `json:"block_id"`
	PatternID   string   `json:"pattern_id"`
	Location    Location `json:"location"`
	SourceCode  string   `json:"source_code"`
	Language    string   `json:"language"`
	Category    Category `json:"category"`
	Tags        []string `json:"tags"`
	LineCount   int      `json:"line_count"`
	ContentHash string   `json:"content_hash"`
	Repository  string   `json:"repository"`
}

// BlockIDFor derives the canonical block identifier from a location.
func BlockIDFor(filePath string, lineStart int) string {
	return fmt.Sprintf("%s:%d", filePath, lineStart)
}

// FunctionTag returns the enclosing function name carried in Tags, if any.
func (b CodeBlock) FunctionTag() (string, bool) {
	const prefix = "function:"
	for _, tag := range b.Tags {
		if len(tag) > len(prefix) && tag[:len(prefix)] == prefix {
			return tag[len(prefix):], true
		}
	}
	return "", false
}

// DuplicateGroup is an accepted cluster of CodeBlocks (§3).
type DuplicateGroup struct {
	GroupID              string           `json:"group_id"`
	MemberBlockIDs       []string         `json:"member_block_ids"`
	SimilarityScore      float64          `json:"similarity_score"`
	SimilarityMethod     SimilarityMethod `json:"similarity_method"`
	Category             Category         `json:"category"`
	Language             string           `json:"language"`
	OccurrenceCount      int              `json:"occurrence_count"`
	TotalLines           int              `json:"total_lines"`
	AffectedFiles        []string         `json:"affected_files"`
	AffectedRepositories []string         `json:"affected_repositories"`
	ImpactScore          float64          `json:"impact_score"`
	PriorityLevel        PriorityLevel    `json:"priority_level"`
}

// SemanticAnnotation is the side-table the Annotator attaches to a block (§3, §4.4).
type SemanticAnnotation struct {
	Category   Category
	Operations map[string]struct{}
	Domains    map[string]struct{}
	Patterns   map[string]struct{}
	DataTypes  map[string]struct{}
	Intent     string
}

// SemanticFeatures is attached to structural comparisons and never persisted (§3, §4.2).
type SemanticFeatures struct {
	HTTPStatusCodes  map[int]struct{}
	LogicalOperators map[string]struct{}
	SemanticMethods  map[string]struct{}
}

// NewSemanticFeatures returns an empty, ready-to-populate SemanticFeatures.
func NewSemanticFeatures() SemanticFeatures {
	return SemanticFeatures{
		HTTPStatusCodes:  make(map[int]struct{}),
		LogicalOperators: make(map[string]struct{}),
		SemanticMethods:  make(map[string]struct{}),
	}
}
