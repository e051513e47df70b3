package layers

import (
	"strconv"

	"github.com/standardbeagle/dupgrouper/internal/structural"
)

// setsDifferNonEmpty reports whether two sets differ, only when both are
// non-empty (§4.6: "non-empty … differ").
func setsDifferNonEmpty(a, b []string) bool {
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

// oppositeLogicalOperatorPairs are treated as semantically opposite (§4.6):
// `{===}` vs `{!==}`, or `{==}` vs `{!=}`.
var oppositeLogicalOperatorPairs = [][2]string{
	{"===", "!=="},
	{"==", "!="},
}

func oppositeLogicalOperators(a, b map[string]struct{}) bool {
	for _, pair := range oppositeLogicalOperatorPairs {
		_, aHas0 := a[pair[0]]
		_, aHas1 := a[pair[1]]
		_, bHas0 := b[pair[0]]
		_, bHas1 := b[pair[1]]
		if (aHas0 && bHas1 && !aHas1) || (aHas1 && bHas0 && !aHas0) {
			return true
		}
	}
	return false
}

func intKeys(m map[int]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, strconv.Itoa(k))
	}
	return out
}

func strKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// sameMethodChain reports whether a and b's longest method chains are equal
// (§4.6 "differ in method chains" is treated as inequality of the chains
// extracted by the Structural Comparator's own chain-extraction logic).
func sameMethodChain(a, b string) bool {
	return chainEqual(structural.LongestMethodChain(a), structural.LongestMethodChain(b))
}

func chainEqual(a, b []string) bool {
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
