package structural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPenalties() Penalties {
	return Penalties{OppositeLogic: 0.80, StatusCode: 0.70, SemanticMethod: 0.75}
}

// noPenalties leaves a score unattenuated: each multiplicative factor is
// 1.0, not the zero value (which would zero out the score entirely instead
// of disabling the penalty).
func noPenalties() Penalties {
	return Penalties{OppositeLogic: 1.0, StatusCode: 1.0, SemanticMethod: 1.0}
}

func TestSimilarity_EmptyInput(t *testing.T) {
	score, method := Similarity("", "x", 0.9, defaultPenalties())
	assert.Equal(t, 0.0, score)
	assert.Equal(t, MethodDifferent, method)
}

func TestSimilarity_ExactMatch(t *testing.T) {
	code := `function getUser(id) { return users.find(u => u.id === id); }`
	score, method := Similarity(code, code, 0.9, defaultPenalties())
	assert.Equal(t, 1.0, score)
	assert.Equal(t, MethodExact, method)
}

func TestSimilarity_StructuralMatch(t *testing.T) {
	a := `function getUser(id) { return users.find(u => u.id === id); }`
	b := `function getAccount(key) { return accounts.find(u => u.id === key); }`

	score, method := Similarity(a, b, 0.6, defaultPenalties())
	require.Greater(t, score, 0.6)
	assert.Equal(t, MethodStructural, method)
}

func TestSimilarity_OppositeLogicPenalized(t *testing.T) {
	a := `if (a === b) { return true; }`
	b := `if (a !== b) { return true; }`

	withPenalty, _ := Similarity(a, b, 0.0, defaultPenalties())
	withoutPenalty, _ := Similarity(a, b, 0.0, noPenalties())

	assert.Less(t, withPenalty, withoutPenalty)
}

func TestSimilarity_StatusCodePenalized(t *testing.T) {
	a := `res.status(404).json({ error: "missing" });`
	b := `res.status(500).json({ error: "missing" });`

	withPenalty, _ := Similarity(a, b, 0.0, defaultPenalties())
	withoutPenalty, _ := Similarity(a, b, 0.0, noPenalties())

	assert.Less(t, withPenalty, withoutPenalty)
}

func TestSimilarity_DifferentCodeBelowThreshold(t *testing.T) {
	a := `function add(x, y) { return x + y; }`
	b := `class Widget extends Component { render() { return null; } }`

	score, method := Similarity(a, b, 0.9, defaultPenalties())
	assert.Less(t, score, 0.9)
	assert.Equal(t, MethodDifferent, method)
}

func TestChainSimilarity_IdenticalChains(t *testing.T) {
	assert.Equal(t, 1.0, chainSimilarity("a.map(x).filter(y).join(z)", "b.map(x).filter(y).join(z)"))
}

func TestChainSimilarity_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.5, chainSimilarity("a.map(x).filter(y)", "plain statement"))
}

func TestChainSimilarity_PrefixRelation(t *testing.T) {
	sim := chainSimilarity("a.map(x).filter(y).join(z)", "b.map(x).filter(y)")
	assert.InDelta(t, 2.0/3.0, sim, 0.01)
}

func TestSimilarity_MathMaxVsMinStaysBelowThreshold(t *testing.T) {
	a := `function findMax(arr){return Math.max(...arr);}`
	b := `function findMin(arr){return Math.min(...arr);}`

	score, method := Similarity(a, b, 0.90, defaultPenalties())
	assert.Less(t, score, 0.90)
	assert.Equal(t, MethodDifferent, method)
}

func TestSimilarity_FilterMapChainLengthDiffersStaysBelowThreshold(t *testing.T) {
	a := `arr.filter(p).map(f)`
	b := `arr.filter(p).map(f).reverse()`

	score, method := Similarity(a, b, 0.90, defaultPenalties())
	assert.Less(t, score, 0.90)
	assert.Equal(t, MethodDifferent, method)
}
