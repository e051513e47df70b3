package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockIDFor(t *testing.T) {
	assert.Equal(t, "src/main.go:10", BlockIDFor("src/main.go", 10))
}

func TestFunctionTag(t *testing.T) {
	b := CodeBlock{Tags: []string{"array", "function:handleLogin", "helper"}}

	name, ok := b.FunctionTag()
	assert.True(t, ok)
	assert.Equal(t, "handleLogin", name)

	b2 := CodeBlock{Tags: []string{"array"}}
	_, ok = b2.FunctionTag()
	assert.False(t, ok)
}

func TestComputeImpactScore_Caps(t *testing.T) {
	// Occurrence and LOC factors should saturate at 1.0 past their caps.
	uncapped := ComputeImpactScore(3, 1.0, 50)
	capped := ComputeImpactScore(100, 1.0, 10000)

	assert.Less(t, uncapped, capped)
	assert.LessOrEqual(t, capped, 100.0)
	assert.InDelta(t, 100.0, capped, 0.001)
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, PriorityCritical, PriorityFor(80))
	assert.Equal(t, PriorityHigh, PriorityFor(60))
	assert.Equal(t, PriorityMedium, PriorityFor(30))
	assert.Equal(t, PriorityLow, PriorityFor(10))
}

func TestNewDuplicateGroup(t *testing.T) {
	members := []CodeBlock{
		{
			BlockID: "a.go:1", ContentHash: "abc123", Category: CategoryHelper,
			Language: "javascript", LineCount: 10,
			Location: Location{FilePath: "a.go"}, Repository: "repo-one",
		},
		{
			BlockID: "b.go:5", ContentHash: "abc123", Category: CategoryHelper,
			Language: "javascript", LineCount: 8,
			Location: Location{FilePath: "b.go"}, Repository: "repo-two",
		},
	}

	g := NewDuplicateGroup(members, 0.95, MethodStructural)

	assert.Equal(t, "abc123", g.GroupID)
	assert.Equal(t, 2, g.OccurrenceCount)
	assert.Equal(t, 18, g.TotalLines)
	assert.Equal(t, []string{"a.go", "b.go"}, g.AffectedFiles)
	assert.Equal(t, []string{"repo-one", "repo-two"}, g.AffectedRepositories)
	assert.Equal(t, MethodStructural, g.SimilarityMethod)
	assert.ElementsMatch(t, []string{"a.go:1", "b.go:5"}, g.MemberBlockIDs)
}
