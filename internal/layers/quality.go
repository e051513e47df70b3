package layers

import (
	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/debug"
	"github.com/standardbeagle/dupgrouper/internal/model"
)

// QualityGate scores each candidate group and rejects those below
// cfg.MinGroupQuality (§4.9). blocksByID is used to compute
// semantic_consistency and mean line count from the group's members.
func QualityGate(groups []model.DuplicateGroup, blocksByID map[string]model.CodeBlock, cfg *config.Config) []model.DuplicateGroup {
	accepted := make([]model.DuplicateGroup, 0, len(groups))
	for _, g := range groups {
		quality := groupQuality(g, blocksByID)
		if quality < cfg.MinGroupQuality {
			debug.LogQuality("group %s rejected: quality=%.3f < %.3f", g.GroupID, quality, cfg.MinGroupQuality)
			continue
		}
		accepted = append(accepted, g)
	}
	return accepted
}

// groupQuality computes the §4.9 composite score:
// 0.40·s + 0.20·min(|G|/4,1) + 0.20·min(mean(line_count)/10,1) + 0.20·semantic_consistency
func groupQuality(g model.DuplicateGroup, blocksByID map[string]model.CodeBlock) float64 {
	sizeFactor := min(float64(g.OccurrenceCount)/4.0, 1.0)
	meanLines := float64(g.TotalLines) / float64(g.OccurrenceCount)
	locFactor := min(meanLines/10.0, 1.0)
	consistency := semanticConsistency(g, blocksByID)

	return 0.40*g.SimilarityScore + 0.20*sizeFactor + 0.20*locFactor + 0.20*consistency
}

// semanticConsistency implements §4.9's four-tier score: 1.0 if all members
// share (category, pattern_id), 0.7 if only category, 0.5 if only
// pattern_id, else 0.3.
func semanticConsistency(g model.DuplicateGroup, blocksByID map[string]model.CodeBlock) float64 {
	if len(g.MemberBlockIDs) == 0 {
		return 0.3
	}
	first, ok := blocksByID[g.MemberBlockIDs[0]]
	if !ok {
		return 0.3
	}

	sameCategory, samePatternID := true, true
	for _, id := range g.MemberBlockIDs {
		b, ok := blocksByID[id]
		if !ok {
			return 0.3
		}
		if b.Category != first.Category {
			sameCategory = false
		}
		if b.PatternID != first.PatternID {
			samePatternID = false
		}
	}

	switch {
	case sameCategory && samePatternID:
		return 1.0
	case sameCategory:
		return 0.7
	case samePatternID:
		return 0.5
	default:
		return 0.3
	}
}
