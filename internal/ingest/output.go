package ingest

import "github.com/standardbeagle/dupgrouper/internal/model"

// Metrics is the §6 output "metrics" object.
type Metrics struct {
	TotalCodeBlocks         int     `json:"total_code_blocks"`
	TotalDuplicateGroups    int     `json:"total_duplicate_groups"`
	ExactDuplicates         int     `json:"exact_duplicates"`
	StructuralDuplicates    int     `json:"structural_duplicates"`
	SemanticDuplicates      int     `json:"semantic_duplicates"`
	TotalDuplicatedLines    int     `json:"total_duplicated_lines"`
	PotentialLOCReduction   int     `json:"potential_loc_reduction"`
	DuplicationPercentage   float64 `json:"duplication_percentage"`
	TotalSuggestions        int     `json:"total_suggestions"`
	QuickWins               int     `json:"quick_wins"`
	HighPrioritySuggestions int     `json:"high_priority_suggestions"`
}

// Output is the §6 top-level output document. Suggestions is always an
// empty slice: suggestion synthesis is explicitly out of scope (produced by
// an external module this pipeline only leaves a slot for).
type Output struct {
	CodeBlocks      []model.CodeBlock     `json:"code_blocks"`
	DuplicateGroups []model.DuplicateGroup `json:"duplicate_groups"`
	Suggestions     []any                  `json:"suggestions"`
	Metrics         Metrics                `json:"metrics"`
}

// BuildOutput assembles the final output document from the blocks considered
// and the groups the quality gate accepted.
func BuildOutput(blocks []model.CodeBlock, groups []model.DuplicateGroup) Output {
	metrics := Metrics{
		TotalCodeBlocks:      len(blocks),
		TotalDuplicateGroups: len(groups),
	}

	totalLines := 0
	for _, b := range blocks {
		totalLines += b.LineCount
	}

	duplicatedLines := 0
	for _, g := range groups {
		switch g.SimilarityMethod {
		case model.MethodExactMatch:
			metrics.ExactDuplicates++
		case model.MethodStructural:
			metrics.StructuralDuplicates++
		case model.MethodSemantic:
			metrics.SemanticDuplicates++
		}

		duplicatedLines += g.TotalLines
		if g.OccurrenceCount > 0 {
			metrics.PotentialLOCReduction += g.TotalLines - (g.TotalLines / g.OccurrenceCount)
		}
	}
	metrics.TotalDuplicatedLines = duplicatedLines

	if totalLines > 0 {
		metrics.DuplicationPercentage = 100.0 * float64(duplicatedLines) / float64(totalLines)
	}

	return Output{
		CodeBlocks:      blocks,
		DuplicateGroups: groups,
		Suggestions:     []any{},
		Metrics:         metrics,
	}
}
