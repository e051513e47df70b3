package layers

import (
	"context"

	"github.com/standardbeagle/dupgrouper/internal/annotate"
	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/debug"
	"github.com/standardbeagle/dupgrouper/internal/model"
	"github.com/standardbeagle/dupgrouper/internal/structural"
)

// Orchestrator drives Layer 0 through the Quality Gate and returns the
// accepted groups (§4.10).
type Orchestrator struct {
	cfg       *config.Config
	annotator *annotate.Annotator
}

// NewOrchestrator constructs an Orchestrator bound to cfg.
func NewOrchestrator(cfg *config.Config) *Orchestrator {
	return &Orchestrator{cfg: cfg, annotator: annotate.NewAnnotator()}
}

// Run executes the pipeline: Layer 0, then 1, then 2 on survivors, then 3 on
// remaining survivors, applying the Quality Gate to every candidate group
// (§4.10). ctx is checked at each layer boundary for cooperative
// cancellation (§5); a cancelled context returns immediately with whatever
// groups have been accepted so far.
func (o *Orchestrator) Run(ctx context.Context, blocks []model.CodeBlock) []model.DuplicateGroup {
	blocksByID := make(map[string]model.CodeBlock, len(blocks))
	for _, b := range blocks {
		blocksByID[b.BlockID] = b
	}

	survivors := FilterLayer0(blocks, o.cfg)
	debug.LogOrchestrator("layer0: %d/%d blocks survived", len(survivors), len(blocks))
	if ctx.Err() != nil {
		return nil
	}

	layer1Groups, survivors := GroupLayer1(survivors)
	debug.LogOrchestrator("layer1: %d groups, %d blocks remain", len(layer1Groups), len(survivors))
	if ctx.Err() != nil {
		return o.gate(layer1Groups, blocksByID)
	}

	penalties := structural.Penalties{
		OppositeLogic:  o.cfg.OppositeLogicPenalty,
		StatusCode:     o.cfg.StatusCodePenalty,
		SemanticMethod: o.cfg.SemanticMethodPenalty,
	}
	layer2Groups, survivors := GroupLayer2(survivors, o.cfg, penalties)
	debug.LogOrchestrator("layer2: %d groups, %d blocks remain", len(layer2Groups), len(survivors))
	if ctx.Err() != nil {
		return o.gate(append(layer1Groups, layer2Groups...), blocksByID)
	}

	grouper := NewGrouper(o.annotator, o.cfg)
	layer3Groups, survivors := grouper.Cluster(survivors)
	debug.LogOrchestrator("layer3: %d groups, %d blocks remain ungrouped", len(layer3Groups), len(survivors))

	candidates := make([]model.DuplicateGroup, 0, len(layer1Groups)+len(layer2Groups)+len(layer3Groups))
	candidates = append(candidates, layer1Groups...)
	candidates = append(candidates, layer2Groups...)
	candidates = append(candidates, layer3Groups...)

	return o.gate(candidates, blocksByID)
}

func (o *Orchestrator) gate(candidates []model.DuplicateGroup, blocksByID map[string]model.CodeBlock) []model.DuplicateGroup {
	accepted := QualityGate(candidates, blocksByID, o.cfg)
	debug.LogOrchestrator("quality gate: %d/%d groups accepted", len(accepted), len(candidates))
	return accepted
}
