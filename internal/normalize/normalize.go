// Package normalize canonicalizes source text while preserving the
// identifiers and method names that carry semantic meaning (§4.1). It is
// deliberately line-oriented, in the spirit of the teacher's
// normalizeCode/normalizeIdentifiers pair, rather than a full tokenizer.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// semanticObjects are identifiers that must survive generic rewriting
// because the object they name disambiguates otherwise-isomorphic code.
var semanticObjects = map[string]struct{}{
	"Math": {}, "Object": {}, "Array": {}, "String": {}, "Number": {},
	"Boolean": {}, "console": {}, "process": {}, "JSON": {}, "Date": {}, "Promise": {},
}

// semanticMethods are method/property names preserved for the same reason.
var semanticMethods = map[string]struct{}{
	// array functional methods
	"map": {}, "filter": {}, "reduce": {}, "forEach": {}, "find": {}, "some": {},
	"every": {}, "slice": {}, "splice": {}, "push": {}, "pop": {}, "shift": {},
	"unshift": {}, "join": {}, "split": {}, "includes": {}, "indexOf": {},
	// object methods
	"get": {}, "set": {}, "has": {}, "delete": {}, "keys": {}, "values": {}, "entries": {},
	// async
	"then": {}, "catch": {}, "finally": {}, "async": {}, "await": {},
	// transformations
	"reverse": {}, "sort": {}, "concat": {},
	// math
	"max": {}, "min": {}, "abs": {}, "floor": {}, "ceil": {}, "round": {},
	// string ops
	"trim": {}, "toLowerCase": {}, "toUpperCase": {}, "replace": {},
	// HTTP
	"status": {}, "json": {}, "send": {}, "redirect": {},
	// semantic properties
	"length": {}, "name": {}, "value": {}, "id": {}, "type": {},
}

var (
	lineCommentRe  = regexp.MustCompile(`//[^\n]{0,500}`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.{0,20000}?\*/`)
	whitespaceRe   = regexp.MustCompile(`\s+`)

	// String literals: single-, double-, backtick-quoted. Bounded body length
	// precludes catastrophic backtracking on adversarial input (§4.2).
	doubleQuotedRe = regexp.MustCompile(`"(?:[^"\\]|\\.){0,10000}"`)
	singleQuotedRe = regexp.MustCompile(`'(?:[^'\\]|\\.){0,10000}'`)
	backtickedRe   = regexp.MustCompile("`(?:[^`\\\\]|\\\\.){0,10000}`")

	numberRe = regexp.MustCompile(`\b\d+\.?\d*\b`)

	identifierRe = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)
	allCapsRe    = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

	// Placeholder tokens inserted during preservation, restored after the
	// identifier rewrite pass. Index-addressed to survive word-boundary
	// rewriting intact.
	preservePlaceholderRe = regexp.MustCompile(`\x00(\d+)\x00`)

	punctuationRe = regexp.MustCompile(`\s*([(){}\[\];,.])\s*`)
	operatorRe    = regexp.MustCompile(`\s*(=>|===|!==|==|!=|&&|\|\||[+\-*/%<>=&|])\s*`)
)

// Normalize canonicalizes code per §4.1. Deterministic; idempotent up to
// whitespace.
func Normalize(code string) string {
	s := stripComments(code)

	s = doubleQuotedRe.ReplaceAllString(s, `"STR"`)
	s = singleQuotedRe.ReplaceAllString(s, `'STR'`)
	s = backtickedRe.ReplaceAllString(s, "`STR`")
	s = numberRe.ReplaceAllString(s, "NUM")

	// Preservation runs after string/number replacement (so literal bodies
	// can never be mistaken for a preserved identifier) and before the
	// generic identifier rewrite (so the rewrite never touches a preserved
	// token's placeholder digits).
	var preserved []string
	s = preserveTokens(s, &preserved)

	s = identifierRe.ReplaceAllStringFunc(s, func(ident string) string {
		if ident == "STR" || ident == "NUM" {
			return ident
		}
		if allCapsRe.MatchString(ident) {
			return "CONST"
		}
		return "var"
	})

	s = restoreTokens(s, preserved)

	s = punctuationRe.ReplaceAllString(s, "$1")
	s = operatorRe.ReplaceAllString(s, " $1 ")

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func stripComments(code string) string {
	code = blockCommentRe.ReplaceAllString(code, " ")
	code = lineCommentRe.ReplaceAllString(code, "")
	return code
}

// preserveTokens replaces every whitelisted identifier with a NUL-delimited
// placeholder so the generic identifier rewrite below skips it, recording
// the original text for restoreTokens.
func preserveTokens(code string, preserved *[]string) string {
	return identifierRe.ReplaceAllStringFunc(code, func(ident string) string {
		_, obj := semanticObjects[ident]
		_, method := semanticMethods[ident]
		if !obj && !method {
			return ident
		}
		idx := len(*preserved)
		*preserved = append(*preserved, ident)
		return "\x00" + strconv.Itoa(idx) + "\x00"
	})
}

func restoreTokens(code string, preserved []string) string {
	return preservePlaceholderRe.ReplaceAllStringFunc(code, func(match string) string {
		groups := preservePlaceholderRe.FindStringSubmatch(match)
		idx, err := strconv.Atoi(groups[1])
		if err != nil || idx < 0 || idx >= len(preserved) {
			return match
		}
		return preserved[idx]
	})
}
