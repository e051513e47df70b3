package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/model"
)

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.MaxParallelism = 0
	_ = config.ValidateConfig(cfg)
	return cfg
}

func TestFilterLayer0_RejectsTooFewLines(t *testing.T) {
	cfg := testConfig()
	cfg.MinLineCount = 3

	blocks := []model.CodeBlock{
		{BlockID: "a", LineCount: 1, SourceCode: "x = 1;"},
		{BlockID: "b", LineCount: 5, SourceCode: "const helper = value => value * 2;"},
	}

	survivors := FilterLayer0(blocks, cfg)
	assert.Len(t, survivors, 1)
	assert.Equal(t, "b", survivors[0].BlockID)
}

func TestFilterLayer0_WaivesTokenMinimumForControlFlow(t *testing.T) {
	cfg := testConfig()
	cfg.MinUniqueTokens = 10

	blocks := []model.CodeBlock{
		{BlockID: "a", LineCount: 2, SourceCode: "if (x) { y(); }"},
	}

	survivors := FilterLayer0(blocks, cfg)
	assert.Len(t, survivors, 1)
}

func TestFilterLayer0_RejectsLowTokenNoControlFlow(t *testing.T) {
	cfg := testConfig()
	cfg.MinUniqueTokens = 10

	blocks := []model.CodeBlock{
		{BlockID: "a", LineCount: 2, SourceCode: "a = b;"},
	}

	survivors := FilterLayer0(blocks, cfg)
	assert.Empty(t, survivors)
}
