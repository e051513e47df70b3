package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Idempotent(t *testing.T) {
	code := `function getUser(id) {
		// fetch a user
		return users.filter(u => u.id === id)[0];
	}`

	once := Normalize(code)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalize_PreservesSemanticMethod(t *testing.T) {
	a := Normalize("const result = items.filter(x => x.active);")
	b := Normalize("const result = items.reduce((acc, x) => acc, 0);")

	assert.Contains(t, a, "filter")
	assert.Contains(t, b, "reduce")
	assert.NotEqual(t, a, b)
}

func TestNormalize_PreservesSemanticObject(t *testing.T) {
	out := Normalize("const n = Math.max(a, b);")
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "max")
}

func TestNormalize_GenericizesIdentifiers(t *testing.T) {
	a := Normalize("function add(x, y) { return x + y; }")
	b := Normalize("function sum(p, q) { return p + q; }")
	assert.Equal(t, a, b)
}

func TestNormalize_GenericizesConstants(t *testing.T) {
	out := Normalize("const MAX_RETRIES = 3;")
	assert.Contains(t, out, "CONST")
}

func TestNormalize_StripsComments(t *testing.T) {
	out := Normalize("x = 1; // trailing comment\n/* block\ncomment */\ny = 2;")
	assert.NotContains(t, out, "trailing")
	assert.NotContains(t, out, "block")
}

func TestNormalize_ReplacesStringsAndNumbers(t *testing.T) {
	a := Normalize(`log("hello", 42)`)
	b := Normalize(`log("world", 99)`)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "STR")
	assert.Contains(t, a, "NUM")
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	out := Normalize("x   =    1;\n\n\ny=2;")
	assert.NotContains(t, out, "  ")
}
