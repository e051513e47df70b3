package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/dupgrouper/internal/model"
)

func TestGroupLayer1_GroupsIdenticalHashes(t *testing.T) {
	code := `function getUser(id) { return users.find(u => u.id === id); }`
	blocks := []model.CodeBlock{
		{BlockID: "a.go:1", ContentHash: "hash1", SourceCode: code, LineCount: 1, Category: model.CategoryHelper, Location: model.Location{FilePath: "a.go"}},
		{BlockID: "b.go:1", ContentHash: "hash1", SourceCode: code, LineCount: 1, Category: model.CategoryHelper, Location: model.Location{FilePath: "b.go"}},
		{BlockID: "c.go:1", ContentHash: "hash2", SourceCode: "different code entirely", LineCount: 1, Category: model.CategoryHelper, Location: model.Location{FilePath: "c.go"}},
	}

	groups, ungrouped := GroupLayer1(blocks)

	assert.Len(t, groups, 1)
	assert.Equal(t, 1.0, groups[0].SimilarityScore)
	assert.Equal(t, model.MethodExactMatch, groups[0].SimilarityMethod)
	assert.Len(t, ungrouped, 1)
	assert.Equal(t, "c.go:1", ungrouped[0].BlockID)
}

func TestGroupLayer1_RejectsBucketWithDifferingStatusCodes(t *testing.T) {
	blocks := []model.CodeBlock{
		{BlockID: "a", ContentHash: "samehash", SourceCode: `res.status(404).json(x);`, LineCount: 1},
		{BlockID: "b", ContentHash: "samehash", SourceCode: `res.status(500).json(x);`, LineCount: 1},
	}

	groups, ungrouped := GroupLayer1(blocks)

	assert.Empty(t, groups)
	assert.Len(t, ungrouped, 2)
}

func TestGroupLayer1_SingleBucketMemberStaysUngrouped(t *testing.T) {
	blocks := []model.CodeBlock{
		{BlockID: "a", ContentHash: "unique", SourceCode: "x", LineCount: 1},
	}

	groups, ungrouped := GroupLayer1(blocks)
	assert.Empty(t, groups)
	assert.Len(t, ungrouped, 1)
}
