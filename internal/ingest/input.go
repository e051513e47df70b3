// Package ingest validates the §6 input document and constructs CodeBlocks
// from its pattern_matches. Validation is hand-written Go in Validate;
// path-safety is delegated to pathutil.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/standardbeagle/dupgrouper/internal/config"
	pipelineerrors "github.com/standardbeagle/dupgrouper/internal/errors"
	"github.com/standardbeagle/dupgrouper/internal/model"
	"github.com/standardbeagle/dupgrouper/pkg/pathutil"
)

// RepositoryInfo mirrors the §6 "repository_info" object.
type RepositoryInfo struct {
	Path      string `json:"path"`
	Name      string `json:"name,omitempty"`
	GitRemote string `json:"git_remote,omitempty"`
	GitBranch string `json:"git_branch,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// PatternMatch mirrors one entry of the §6 "pattern_matches" array.
type PatternMatch struct {
	FilePath    string   `json:"file_path"`
	RuleID      string   `json:"rule_id"`
	MatchedText string   `json:"matched_text"`
	LineStart   int      `json:"line_start"`
	LineEnd     int      `json:"line_end"`
	ColumnStart int      `json:"column_start,omitempty"`
	ColumnEnd   int      `json:"column_end,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// Document is the top-level §6 input document.
type Document struct {
	RepositoryInfo RepositoryInfo `json:"repository_info"`
	PatternMatches []PatternMatch `json:"pattern_matches"`
}

// Validate checks the §6 bounds in ordinary Go: the repository path length,
// the match-count and matched-text ceilings, per-field ranges, line_end ≥
// line_start, and path safety. DocumentSchema is not evaluated here.
func Validate(doc Document, cfg *config.Config) error {
	if len(doc.RepositoryInfo.Path) > 1000 {
		return pipelineerrors.NewValidationError("repository_info.path", doc.RepositoryInfo.Path, fmt.Errorf("exceeds 1000 characters"))
	}
	if len(doc.PatternMatches) > cfg.MaxPatternMatches {
		return pipelineerrors.NewValidationError("pattern_matches", fmt.Sprintf("%d", len(doc.PatternMatches)),
			fmt.Errorf("exceeds MAX_PATTERN_MATCHES (%d)", cfg.MaxPatternMatches))
	}

	for i, m := range doc.PatternMatches {
		if err := validateMatch(m, cfg); err != nil {
			return fmt.Errorf("pattern_matches[%d]: %w", i, err)
		}
	}
	return nil
}

func validateMatch(m PatternMatch, cfg *config.Config) error {
	if err := pathutil.ValidateRelative(m.FilePath); err != nil {
		return pipelineerrors.NewValidationError("file_path", m.FilePath, err)
	}
	if len(m.RuleID) == 0 || len(m.RuleID) > 100 {
		return pipelineerrors.NewValidationError("rule_id", m.RuleID, fmt.Errorf("must be 1-100 characters"))
	}
	if len(m.MatchedText) > cfg.MaxMatchedTextBytes {
		return pipelineerrors.NewValidationError("matched_text", m.RuleID,
			fmt.Errorf("exceeds MAX_MATCHED_TEXT_BYTES (%d)", cfg.MaxMatchedTextBytes))
	}
	if m.LineStart < 1 || m.LineStart > 1_000_000 {
		return pipelineerrors.NewValidationError("line_start", fmt.Sprintf("%d", m.LineStart), fmt.Errorf("must be in [1, 1000000]"))
	}
	if m.LineEnd < m.LineStart || m.LineEnd > 1_000_000 {
		return pipelineerrors.NewValidationError("line_end", fmt.Sprintf("%d", m.LineEnd), fmt.Errorf("must be in [line_start, 1000000]"))
	}
	if m.Confidence != nil && (*m.Confidence < 0 || *m.Confidence > 1) {
		return pipelineerrors.NewValidationError("confidence", fmt.Sprintf("%v", *m.Confidence), fmt.Errorf("must be in [0, 1]"))
	}
	return nil
}

// BuildBlocks constructs CodeBlocks from a validated Document (§3).
func BuildBlocks(doc Document) []model.CodeBlock {
	repository := doc.RepositoryInfo.Name
	if repository == "" {
		repository = filepath.Base(doc.RepositoryInfo.Path)
	}

	blocks := make([]model.CodeBlock, 0, len(doc.PatternMatches))
	for _, m := range doc.PatternMatches {
		lineCount := m.LineEnd - m.LineStart + 1
		blocks = append(blocks, model.CodeBlock{
			BlockID:     model.BlockIDFor(m.FilePath, m.LineStart),
			PatternID:   m.RuleID,
			Location:    model.Location{FilePath: m.FilePath, LineStart: m.LineStart, LineEnd: m.LineEnd},
			SourceCode:  m.MatchedText,
			Language:    languageFromExtension(m.FilePath),
			Category:    categoryFor(m.RuleID),
			Tags:        []string{},
			LineCount:   lineCount,
			ContentHash: contentHash(m.MatchedText),
			Repository:  repository,
		})
	}
	return blocks
}

// contentHash is a 16-hex-char truncation of SHA-256 over whitespace-
// collapsed source_code (§3), deliberately the standard library: this
// content_hash is a cryptographic-strength identity hash, not a
// performance-tuned sharding key (that role is xxhash, §4.6), so there is
// no ecosystem library in the corpus to reach for here.
func contentHash(sourceCode string) string {
	collapsed := whitespaceRe.ReplaceAllString(strings.TrimSpace(sourceCode), " ")
	sum := sha256.Sum256([]byte(collapsed))
	return hex.EncodeToString(sum[:])[:16]
}

var whitespaceRe = regexp.MustCompile(`\s+`)

var extensionLanguages = map[string]string{
	".js": "javascript", ".jsx": "javascript", ".mjs": "javascript",
	".ts": "typescript", ".tsx": "typescript",
	".py": "python", ".go": "go", ".java": "java", ".rb": "ruby",
	".php": "php", ".cs": "csharp", ".c": "c", ".cpp": "cpp", ".rs": "rust",
}

func languageFromExtension(filePath string) string {
	ext := strings.ToLower(filepath.Ext(filePath))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return "unknown"
}

// ruleCategoryHints maps rule_id substrings to a CodeBlock category (§3).
// Ordered so more specific hints are checked before generic ones.
var ruleCategoryHints = []struct {
	substr   string
	category model.Category
}{
	{"auth", model.CategoryAuthCheck},
	{"valid", model.CategoryValidator},
	{"api", model.CategoryAPIHandler},
	{"handler", model.CategoryAPIHandler},
	{"route", model.CategoryAPIHandler},
	{"database", model.CategoryDatabaseOperation},
	{"query", model.CategoryDatabaseOperation},
	{"sql", model.CategoryDatabaseOperation},
	{"error", model.CategoryErrorHandler},
	{"catch", model.CategoryErrorHandler},
	{"log", model.CategoryLogger},
	{"config", model.CategoryConfigAccess},
	{"file", model.CategoryFileOperation},
	{"async", model.CategoryAsyncPattern},
	{"promise", model.CategoryAsyncPattern},
	{"helper", model.CategoryHelper},
	{"util", model.CategoryUtility},
}

func categoryFor(ruleID string) model.Category {
	lower := strings.ToLower(ruleID)
	for _, hint := range ruleCategoryHints {
		if strings.Contains(lower, hint.substr) {
			return hint.category
		}
	}
	return model.CategoryUnknown
}
