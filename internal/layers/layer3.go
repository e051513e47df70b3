package layers

import (
	"strings"

	"github.com/standardbeagle/dupgrouper/internal/annotate"
	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/debug"
	"github.com/standardbeagle/dupgrouper/internal/model"
)

// Group clusters still-un-grouped blocks by weighted-Jaccard similarity over
// their semantic annotations (§4.8). Naming (Group/NewGrouper) is unified
// per §9: the package and its exported constructor use one consistent
// spelling throughout.
type Group struct {
	annotator *annotate.Annotator
	cfg       *config.Config
}

// NewGrouper constructs a Layer 3 Group clusterer.
func NewGrouper(annotator *annotate.Annotator, cfg *config.Config) *Group {
	return &Group{annotator: annotator, cfg: cfg}
}

// Cluster performs greedy clustering mirroring §4.7's pattern, using
// weighted Jaccard plus intent compatibility as the pairwise test (§4.8).
func (g *Group) Cluster(blocks []model.CodeBlock) (groups []model.DuplicateGroup, ungrouped []model.CodeBlock) {
	annotations := make([]model.SemanticAnnotation, len(blocks))
	for i, b := range blocks {
		annotations[i] = g.annotator.Annotate(b)
	}

	used := make([]bool, len(blocks))

	for i := range blocks {
		if used[i] {
			continue
		}
		group := []model.CodeBlock{blocks[i]}
		similarities := []float64{}

		for j := i + 1; j < len(blocks); j++ {
			if used[j] {
				continue
			}
			if blocks[i].Category != blocks[j].Category {
				continue
			}
			sim := weightedJaccard(annotations[i], annotations[j])
			if sim < g.cfg.SemanticThreshold {
				continue
			}
			if !intentCompatible(annotations[i].Intent, annotations[j].Intent) {
				continue
			}
			group = append(group, blocks[j])
			similarities = append(similarities, sim)
			used[j] = true
		}

		if len(group) >= 2 {
			used[i] = true
			groups = append(groups, model.NewDuplicateGroup(group, mean(similarities), model.MethodSemantic))
		} else {
			debug.LogLayer3("block %s did not form a semantic group", blocks[i].BlockID)
		}
	}

	for i, b := range blocks {
		if !used[i] {
			ungrouped = append(ungrouped, b)
		}
	}
	return groups, ungrouped
}

// weightedJaccard computes the §4.8 weighted sum of per-dimension Jaccard
// indices over the four annotation sets.
func weightedJaccard(a, b model.SemanticAnnotation) float64 {
	return 0.40*jaccard(a.Operations, b.Operations) +
		0.25*jaccard(a.Domains, b.Domains) +
		0.20*jaccard(a.Patterns, b.Patterns) +
		0.15*jaccard(a.DataTypes, b.DataTypes)
}

// jaccard computes |A∩B|/|A∪B|, with both-empty → 1.0 and exactly-one-empty → 0.5.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.5
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// intentCompatible reports whether the operation prefixes (tokens before the
// first "|") of two intent strings share at least one token (§4.8). An
// "unknown" intent is incompatible with anything, including another
// "unknown".
func intentCompatible(a, b string) bool {
	if a == "unknown" || b == "unknown" {
		return false
	}
	prefixA := intentPrefix(a)
	prefixB := intentPrefix(b)
	if prefixA == "" || prefixB == "" {
		return false
	}
	setB := make(map[string]struct{})
	for _, tok := range strings.Split(prefixB, "+") {
		setB[tok] = struct{}{}
	}
	for _, tok := range strings.Split(prefixA, "+") {
		if _, ok := setB[tok]; ok {
			return true
		}
	}
	return false
}

func intentPrefix(intent string) string {
	if idx := strings.IndexByte(intent, '|'); idx >= 0 {
		return intent[:idx]
	}
	return intent
}
