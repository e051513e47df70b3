// Package features extracts meaning-bearing signals from *original*,
// un-normalized source text (§4.2). This ordering is load-bearing:
// normalization erases the very tokens this package looks for.
package features

import (
	"regexp"
	"strconv"

	"github.com/standardbeagle/dupgrouper/internal/model"
)

// Every pattern below uses a bounded quantifier for any "gap" it allows
// between tokens, precluding catastrophic backtracking on adversarial
// input (§4.2).
var (
	strictEqRe    = regexp.MustCompile(`===`)
	strictNeqRe   = regexp.MustCompile(`!==`)
	looseEqRe     = regexp.MustCompile(`==`)
	looseNeqRe    = regexp.MustCompile(`!=`)
	logicalAndRe  = regexp.MustCompile(`&&`)
	logicalOrRe   = regexp.MustCompile(`\|\|`)

	statusCodeRe = regexp.MustCompile(`\b(?:res|response)\.status\(\s{0,20}(\d{3})\s{0,20}\)`)

	mathMethodRe    = regexp.MustCompile(`\bMath\.(max|min|floor|ceil|round)\(`)
	consoleMethodRe = regexp.MustCompile(`\bconsole\.(log|error|warn)\(`)
	reverseRe       = regexp.MustCompile(`\.reverse\(`)
	upperRe         = regexp.MustCompile(`\.toUpperCase\(`)
	lowerRe         = regexp.MustCompile(`\.toLowerCase\(`)
)

// Extract builds SemanticFeatures from un-normalized code (§4.2).
func Extract(code string) model.SemanticFeatures {
	f := model.NewSemanticFeatures()

	// Compound operators are detected before simple ones so a lone '!' match
	// doesn't also fire for every '!==' / '!=' occurrence.
	if strictNeqRe.MatchString(code) {
		f.LogicalOperators["!=="] = struct{}{}
	}
	if strictEqRe.MatchString(code) {
		f.LogicalOperators["==="] = struct{}{}
	}
	if looseNeqRe.MatchString(strictNeqRe.ReplaceAllString(code, "")) {
		f.LogicalOperators["!="] = struct{}{}
	}
	if looseEqRe.MatchString(stripStrictOperators(code)) {
		f.LogicalOperators["=="] = struct{}{}
	}
	if logicalAndRe.MatchString(code) {
		f.LogicalOperators["&&"] = struct{}{}
	}
	if logicalOrRe.MatchString(code) {
		f.LogicalOperators["||"] = struct{}{}
	}
	if hasLoneNot(code) {
		f.LogicalOperators["!"] = struct{}{}
	}

	for _, m := range statusCodeRe.FindAllStringSubmatch(code, -1) {
		if status, err := strconv.Atoi(m[1]); err == nil {
			f.HTTPStatusCodes[status] = struct{}{}
		}
	}

	for _, m := range mathMethodRe.FindAllStringSubmatch(code, -1) {
		f.SemanticMethods["Math."+m[1]] = struct{}{}
	}
	for _, m := range consoleMethodRe.FindAllStringSubmatch(code, -1) {
		f.SemanticMethods["console."+m[1]] = struct{}{}
	}
	if reverseRe.MatchString(code) {
		f.SemanticMethods["reverse"] = struct{}{}
	}
	if upperRe.MatchString(code) {
		f.SemanticMethods["toUpperCase"] = struct{}{}
	}
	if lowerRe.MatchString(code) {
		f.SemanticMethods["toLowerCase"] = struct{}{}
	}

	return f
}

// stripStrictOperators removes both 3-character strict (in)equality operators
// before looking for the 2-character loose "==", so neither "===" nor the
// "==" substring inside "!==" is also counted as a loose "==" occurrence.
func stripStrictOperators(code string) string {
	code = strictEqRe.ReplaceAllString(code, "")
	return strictNeqRe.ReplaceAllString(code, "")
}

// hasLoneNot reports a '!' that is not immediately followed by '=' (which
// would make it part of '!=' or '!==').
func hasLoneNot(code string) bool {
	for i := 0; i < len(code); i++ {
		if code[i] != '!' {
			continue
		}
		if i+1 < len(code) && code[i+1] == '=' {
			continue
		}
		return true
	}
	return false
}
