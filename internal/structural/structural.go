// Package structural computes a 0-1 structural similarity score between two
// code strings (§4.3): normalization plus edit distance plus method-chain
// comparison, attenuated by a unified multiplicative semantic penalty.
package structural

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/dupgrouper/internal/features"
	"github.com/standardbeagle/dupgrouper/internal/model"
	"github.com/standardbeagle/dupgrouper/internal/normalize"
)

// Method is the outcome tag for a pairwise comparison (§4.3).
type Method string

const (
	MethodExact     Method = "exact"
	MethodStructural Method = "structural"
	MethodDifferent Method = "different"
)

// Penalties holds the three multiplicative semantic penalties (§4.3, §6),
// threaded from config rather than hard-coded.
type Penalties struct {
	OppositeLogic  float64
	StatusCode     float64
	SemanticMethod float64
}

// methodChainRe matches a run of 2+ consecutive ".name(args)" calls, each
// call's argument list bounded and free of nested parens (§4.3). Real chains
// always have argument content — possibly empty — between the links, so
// each unit consumes its own "(...)" rather than requiring the next "."
// to sit immediately after the previous one.
var methodChainRe = regexp.MustCompile(`(?:\.[A-Za-z_$][A-Za-z0-9_$]{0,60}\([^()]{0,200}\)){2,}`)
var chainLinkRe = regexp.MustCompile(`\.([A-Za-z_$][A-Za-z0-9_$]{0,60})\(`)

// oppositeLogicPairs are logical-operator pairs treated as semantically
// opposite (§4.6, §4.3): `===` vs `!==`, `==` vs `!=`.
var oppositeLogicPairs = [][2]string{
	{"===", "!=="},
	{"==", "!="},
}

// Similarity computes (score, method) for a pair of original code strings
// against an acceptance threshold (§4.3).
func Similarity(a, b string, threshold float64, p Penalties) (float64, Method) {
	if a == "" || b == "" {
		return 0, MethodDifferent
	}
	if sha256Hex(a) == sha256Hex(b) {
		return 1.0, MethodExact
	}

	fa := features.Extract(a)
	fb := features.Extract(b)

	normA := normalize.Normalize(a)
	normB := normalize.Normalize(b)

	var base float64
	if normA == normB {
		base = 0.95
	} else {
		base = levenshteinRatio(normA, normB)
	}

	chainSim := chainSimilarity(a, b)
	if chainSim < 1.0 {
		base = 0.7*base + 0.3*chainSim
	}

	base = applyPenalties(base, fa, fb, p)

	if base >= threshold {
		return base, MethodStructural
	}
	return base, MethodDifferent
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// levenshteinRatio computes an edit-distance-derived similarity in [0,1] via
// go-edlib. go-edlib's StringsSimilarity(Levenshtein) already returns a
// normalized similarity (1.0 = identical), so it is returned as-is.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0.0
	}
	return float64(sim)
}

// chainSimilarity compares the longest method chains in a and b (§4.3).
func chainSimilarity(a, b string) float64 {
	chainA := LongestMethodChain(a)
	chainB := LongestMethodChain(b)

	if len(chainA) == 0 && len(chainB) == 0 {
		return 1.0
	}
	if len(chainA) == 0 || len(chainB) == 0 {
		return 0.5
	}
	if sameChain(chainA, chainB) {
		return 1.0
	}
	if len(chainA) == len(chainB) {
		matches := 0
		for i := range chainA {
			if chainA[i] == chainB[i] {
				matches++
			}
		}
		return float64(matches) / float64(len(chainA))
	}

	shorter, longer := chainA, chainB
	if len(longer) < len(shorter) {
		shorter, longer = longer, shorter
	}
	if isPrefix(shorter, longer) {
		return float64(len(shorter)) / float64(len(longer))
	}
	return 0.0
}

func sameChain(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isPrefix(shorter, longer []string) bool {
	for i := range shorter {
		if shorter[i] != longer[i] {
			return false
		}
	}
	return true
}

// LongestMethodChain returns the names of the longest run of consecutive
// ".name(args)" calls found anywhere in code (§4.3).
func LongestMethodChain(code string) []string {
	var best []string
	for _, match := range methodChainRe.FindAllString(code, -1) {
		links := chainLinkRe.FindAllStringSubmatch(match, -1)
		if len(links) <= len(best) {
			continue
		}
		chain := make([]string, len(links))
		for i, l := range links {
			chain[i] = l[1]
		}
		best = chain
	}
	return best
}

// applyPenalties attenuates base by the unified semantic penalty (§4.3):
// different non-empty sets of status codes, logical operators (including
// opposite pairs), or semantic methods each multiply the score down.
func applyPenalties(base float64, fa, fb model.SemanticFeatures, p Penalties) float64 {
	if differsNonEmpty(intSetKeys(fa.HTTPStatusCodes), intSetKeys(fb.HTTPStatusCodes)) {
		base *= p.StatusCode
	}
	if logicalOperatorsDiffer(fa.LogicalOperators, fb.LogicalOperators) {
		base *= p.OppositeLogic
	}
	if differsNonEmpty(strSetKeys(fa.SemanticMethods), strSetKeys(fb.SemanticMethods)) {
		base *= p.SemanticMethod
	}
	if base < 0 {
		base = 0
	}
	return base
}

// logicalOperatorsDiffer reports whether two operator sets differ, either by
// not matching exactly (both non-empty) or by containing an opposite pair
// (§4.6): {===} vs {!==}, or {==} vs {!=}.
func logicalOperatorsDiffer(a, b map[string]struct{}) bool {
	for _, pair := range oppositeLogicPairs {
		_, aHas0 := a[pair[0]]
		_, aHas1 := a[pair[1]]
		_, bHas0 := b[pair[0]]
		_, bHas1 := b[pair[1]]
		if (aHas0 && bHas1 && !aHas1) || (aHas1 && bHas0 && !aHas0) {
			return true
		}
	}
	return differsNonEmpty(strSetKeys(a), strSetKeys(b))
}

func differsNonEmpty(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if len(a) != len(b) {
		return true
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}
	for _, v := range a {
		if _, ok := setB[v]; !ok {
			return true
		}
	}
	return false
}

func intSetKeys(m map[int]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, strconv.Itoa(k))
	}
	return out
}

func strSetKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
