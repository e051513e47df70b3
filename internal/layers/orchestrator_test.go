package layers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/dupgrouper/internal/model"
)

func TestOrchestrator_Run_ExactDuplicatesSurviveEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.MinGroupQuality = 0.0

	code := `function validateEmail(s) { return /@/.test(s) && s.length > 3; }`
	blocks := []model.CodeBlock{
		{
			BlockID: "a.go:1", PatternID: "p1", Category: model.CategoryValidator,
			SourceCode: code, LineCount: 1, ContentHash: "samehash",
			Location: model.Location{FilePath: "a.go"},
		},
		{
			BlockID: "b.go:1", PatternID: "p1", Category: model.CategoryValidator,
			SourceCode: code, LineCount: 1, ContentHash: "samehash",
			Location: model.Location{FilePath: "b.go"},
		},
	}

	orch := NewOrchestrator(cfg)
	groups := orch.Run(context.Background(), blocks)

	require.Len(t, groups, 1)
	assert.Equal(t, model.MethodExactMatch, groups[0].SimilarityMethod)
	assert.Equal(t, 2, groups[0].OccurrenceCount)
}

func TestOrchestrator_Run_CancelledContextStopsEarly(t *testing.T) {
	cfg := testConfig()
	blocks := []model.CodeBlock{
		{BlockID: "a", Category: model.CategoryHelper, LineCount: 1, SourceCode: "if (x) { y(); }"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := NewOrchestrator(cfg)
	groups := orch.Run(ctx, blocks)
	assert.Empty(t, groups)
}

func TestOrchestrator_Run_NoBlocksNoGroups(t *testing.T) {
	cfg := testConfig()
	orch := NewOrchestrator(cfg)
	groups := orch.Run(context.Background(), nil)
	assert.Empty(t, groups)
}
