// Package layers implements the five-stage grouping pipeline (§4.5-§4.10):
// complexity filtering, exact hashing, structural clustering, semantic
// clustering, and the quality gate.
package layers

import (
	"regexp"

	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/debug"
	"github.com/standardbeagle/dupgrouper/internal/model"
)

var controlFlowKeywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "while": {}, "switch": {}, "case": {}, "try": {}, "catch": {},
}

var tokenRe = regexp.MustCompile(`\b[A-Za-z_$][A-Za-z0-9_$]*\b`)

// FilterLayer0 rejects blocks below the minimum complexity threshold (§4.5),
// returning the survivors in input order.
func FilterLayer0(blocks []model.CodeBlock, cfg *config.Config) []model.CodeBlock {
	survivors := make([]model.CodeBlock, 0, len(blocks))
	for _, b := range blocks {
		if passesLayer0(b, cfg) {
			survivors = append(survivors, b)
		} else {
			debug.LogLayer0("rejected block %s: line_count=%d unique_tokens=%d", b.BlockID, b.LineCount, uniqueTokenCount(b.SourceCode))
		}
	}
	return survivors
}

func passesLayer0(b model.CodeBlock, cfg *config.Config) bool {
	if b.LineCount < cfg.MinLineCount {
		return false
	}
	if uniqueTokenCount(b.SourceCode) >= cfg.MinUniqueTokens {
		return true
	}
	return hasControlFlowKeyword(b.SourceCode)
}

func uniqueTokenCount(code string) int {
	seen := make(map[string]struct{})
	for _, tok := range tokenRe.FindAllString(code, -1) {
		seen[tok] = struct{}{}
	}
	return len(seen)
}

func hasControlFlowKeyword(code string) bool {
	for _, tok := range tokenRe.FindAllString(code, -1) {
		if _, ok := controlFlowKeywords[tok]; ok {
			return true
		}
	}
	return false
}
