// Package annotate tags a CodeBlock with the operations, domains, patterns
// and data types it exhibits, and builds a compact "intent" string from them
// (§4.4).
//
// The four pattern dictionaries are compiled once, at construction, and
// reused across every call — mirroring the teacher's
// globalSemanticPatternsOnce sync.Once convention for module-level pattern
// caches, but threaded through an explicit Annotator value rather than a
// package-level global, so two independent callers never share mutable
// state.
package annotate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/standardbeagle/dupgrouper/internal/model"
)

// operationKeys, domainKeys, patternKeys and dataTypeKeys are the closed
// vocabularies from §4.4; each key becomes a case-insensitive word-boundary
// regex compiled once in NewAnnotator.
var operationKeys = []string{
	"filter", "map", "reduce", "find", "some", "every", "sort", "includes",
	"iterate", "flatten", "concat", "slice", "splice", "append", "remove",
	"prepend", "read", "create", "update", "delete", "fetch", "parse",
	"serialize", "transform", "split", "join", "replace", "extract", "merge",
	"spread", "validate",
}

var domainKeys = []string{
	"user", "auth", "payment", "commerce", "notification", "file", "database",
	"cache", "queue", "api", "webhook", "event", "logging", "config", "test",
}

var patternKeys = []string{
	"guard_clause", "null_check", "error_handling", "retry_logic", "timeout",
	"async_await", "promise_chain", "promise_composition", "promise_creation",
	"caching", "pagination", "batching", "streaming", "locking", "rate_limiting",
}

var dataTypeKeys = []string{
	"array", "object", "string", "number", "boolean", "date", "promise",
	"null", "undefined", "map", "set", "collection", "buffer", "regex",
}

// Annotator holds the pre-compiled pattern dictionaries.
type Annotator struct {
	operations map[string]*regexp.Regexp
	domains    map[string]*regexp.Regexp
	patterns   map[string]*regexp.Regexp
	dataTypes  map[string]*regexp.Regexp
}

// NewAnnotator compiles every pattern dictionary once.
func NewAnnotator() *Annotator {
	return &Annotator{
		operations: compileKeyPatterns(operationKeys),
		domains:    compileKeyPatterns(domainKeys),
		patterns:   compileKeyPatterns(patternKeys),
		dataTypes:  compileKeyPatterns(dataTypeKeys),
	}
}

func compileKeyPatterns(keys []string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(keys))
	for _, key := range keys {
		pattern := `(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(key), "_", "[ _-]?") + `\b`
		out[key] = regexp.MustCompile(pattern)
	}
	return out
}

// Annotate tags block (§4.4). Domain matching also searches the
// space-joined tags, per spec.
func (a *Annotator) Annotate(block model.CodeBlock) model.SemanticAnnotation {
	haystack := block.SourceCode
	tagHaystack := haystack + " " + strings.Join(block.Tags, " ")

	ops := matchKeys(a.operations, haystack)
	doms := matchKeys(a.domains, tagHaystack)
	pats := matchKeys(a.patterns, haystack)
	types := matchKeys(a.dataTypes, haystack)

	return model.SemanticAnnotation{
		Category:   block.Category,
		Operations: ops,
		Domains:    doms,
		Patterns:   pats,
		DataTypes:  types,
		Intent:     buildIntent(ops, doms, pats),
	}
}

func matchKeys(dict map[string]*regexp.Regexp, text string) map[string]struct{} {
	out := make(map[string]struct{})
	for key, re := range dict {
		if re.MatchString(text) {
			out[key] = struct{}{}
		}
	}
	return out
}

// buildIntent builds the canonical intent string (§3):
// "<op1>+<op2>|on:<dom1>+<dom2>|with:<pat1>+<pat2>", alphabetically sorted,
// missing sections elided, "unknown" if nothing matched.
func buildIntent(ops, doms, pats map[string]struct{}) string {
	opList := sortedKeys(ops)
	domList := sortedKeys(doms)
	patList := sortedKeys(pats)

	if len(opList) == 0 && len(domList) == 0 && len(patList) == 0 {
		return "unknown"
	}

	var parts []string
	if len(opList) > 0 {
		parts = append(parts, strings.Join(opList, "+"))
	}
	if len(domList) > 0 {
		parts = append(parts, "on:"+strings.Join(domList, "+"))
	}
	if len(patList) > 0 {
		parts = append(parts, "with:"+strings.Join(patList, "+"))
	}
	return strings.Join(parts, "|")
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
