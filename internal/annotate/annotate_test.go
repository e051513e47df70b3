package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/dupgrouper/internal/model"
)

func TestAnnotate_BuildsIntent(t *testing.T) {
	a := NewAnnotator()
	block := model.CodeBlock{
		SourceCode: "function getUserById(id) { return users.filter(u => u.id === id); }",
		Tags:       []string{"user", "function:getUserById"},
	}

	ann := a.Annotate(block)

	_, hasFilter := ann.Operations["filter"]
	assert.True(t, hasFilter)

	_, hasUser := ann.Domains["user"]
	assert.True(t, hasUser)

	assert.Contains(t, ann.Intent, "filter")
	assert.Contains(t, ann.Intent, "on:user")
}

func TestAnnotate_UnknownWhenNoMatches(t *testing.T) {
	a := NewAnnotator()
	block := model.CodeBlock{SourceCode: "x9 = zzzzz123;", Tags: nil}

	ann := a.Annotate(block)
	assert.Equal(t, "unknown", ann.Intent)
}

func TestAnnotate_DomainMatchesFromTags(t *testing.T) {
	a := NewAnnotator()
	block := model.CodeBlock{
		SourceCode: "function noop() {}",
		Tags:       []string{"payment", "function:noop"},
	}

	ann := a.Annotate(block)
	_, hasPayment := ann.Domains["payment"]
	assert.True(t, hasPayment)
}

func TestAnnotate_PatternsAndDataTypes(t *testing.T) {
	a := NewAnnotator()
	block := model.CodeBlock{
		SourceCode: "async_await function retryFetch() { if (!data) return null; await retry_logic(); const array = []; }",
	}

	ann := a.Annotate(block)
	_, hasAsync := ann.Patterns["async_await"]
	_, hasRetry := ann.Patterns["retry_logic"]
	_, hasArray := ann.DataTypes["array"]

	assert.True(t, hasAsync)
	assert.True(t, hasRetry)
	assert.True(t, hasArray)
}

func TestAnnotate_IntentSectionsSortedAlphabetically(t *testing.T) {
	a := NewAnnotator()
	block := model.CodeBlock{
		SourceCode: "function process() { return items.map(x => x).filter(y => y); }",
	}

	ann := a.Annotate(block)
	assert.Contains(t, ann.Intent, "filter+map")
}
