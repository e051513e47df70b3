package model

import "sort"

// Impact-score capping constants (§3): occurrence and LOC factors saturate
// past these counts rather than growing unbounded, mirroring the teacher's
// totalLines/filesCount severity thresholds in calculateImpact.
const (
	occurrenceCap = 10
	locCap        = 200
)

// ComputeImpactScore derives impact_score ∈ [0,100] from occurrence count,
// similarity and total duplicated lines (§3): 40% capped occurrence factor +
// 35% similarity + 25% capped LOC factor.
func ComputeImpactScore(occurrenceCount int, similarity float64, totalLines int) float64 {
	occurrenceFactor := min(float64(occurrenceCount)/occurrenceCap, 1.0)
	locFactor := min(float64(totalLines)/locCap, 1.0)
	return 100 * (0.40*occurrenceFactor + 0.35*similarity + 0.25*locFactor)
}

// PriorityFor buckets impact_score into a PriorityLevel by the §3 thresholds
// {75, 50, 25}.
func PriorityFor(impactScore float64) PriorityLevel {
	switch {
	case impactScore >= 75:
		return PriorityCritical
	case impactScore >= 50:
		return PriorityHigh
	case impactScore >= 25:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// NewDuplicateGroup assembles a DuplicateGroup from its accepted members,
// computing every derived field (§3). Callers pass at least 2 members.
// Category and Language are copied from members[0]; this function does not
// check that the other members share them.
func NewDuplicateGroup(members []CodeBlock, similarity float64, method SimilarityMethod) DuplicateGroup {
	totalLines := 0
	fileSet := make(map[string]struct{})
	repoSet := make(map[string]struct{})
	memberIDs := make([]string, 0, len(members))

	for _, m := range members {
		totalLines += m.LineCount
		fileSet[m.Location.FilePath] = struct{}{}
		if m.Repository != "" {
			repoSet[m.Repository] = struct{}{}
		}
		memberIDs = append(memberIDs, m.BlockID)
	}

	impact := ComputeImpactScore(len(members), similarity, totalLines)

	return DuplicateGroup{
		GroupID:              members[0].ContentHash,
		MemberBlockIDs:       memberIDs,
		SimilarityScore:      similarity,
		SimilarityMethod:     method,
		Category:             members[0].Category,
		Language:             members[0].Language,
		OccurrenceCount:      len(members),
		TotalLines:           totalLines,
		AffectedFiles:        sortedKeys(fileSet),
		AffectedRepositories: sortedKeys(repoSet),
		ImpactScore:          impact,
		PriorityLevel:        PriorityFor(impact),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
