package layers

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/standardbeagle/dupgrouper/internal/config"
	"github.com/standardbeagle/dupgrouper/internal/debug"
	"github.com/standardbeagle/dupgrouper/internal/model"
	"github.com/standardbeagle/dupgrouper/internal/structural"
)

type partitionKey struct {
	patternID string
	category  model.Category
}

// GroupLayer2 performs greedy single-pass structural clustering over blocks
// not yet grouped (§4.7). When cfg.MaxParallelism > 1, disjoint
// (pattern_id, category) partitions are scanned concurrently — step 4's
// compatibility check already requires equal pattern_id and category, so
// cross-partition pairs can never match. Partition results are concatenated
// in partition order (the order in which each partition first appears in the
// input), so output order is deterministic for a given input (§5); the
// ungrouped blocks are therefore grouped by partition, not in input order.
func GroupLayer2(blocks []model.CodeBlock, cfg *config.Config, penalties structural.Penalties) (groups []model.DuplicateGroup, ungrouped []model.CodeBlock) {
	partitions, keyOrder := partitionBlocks(blocks)

	results := make([][]model.DuplicateGroup, len(keyOrder))
	leftovers := make([][]model.CodeBlock, len(keyOrder))

	runPartition := func(i int) {
		results[i], leftovers[i] = greedyCluster(partitions[keyOrder[i]], cfg, penalties)
	}

	if cfg.MaxParallelism > 1 && len(keyOrder) > 1 {
		runPartitionsConcurrently(keyOrder, cfg.MaxParallelism, runPartition)
	} else {
		for i := range keyOrder {
			runPartition(i)
		}
	}

	for i := range keyOrder {
		groups = append(groups, results[i]...)
		ungrouped = append(ungrouped, leftovers[i]...)
	}
	return groups, ungrouped
}

func partitionBlocks(blocks []model.CodeBlock) (map[partitionKey][]model.CodeBlock, []partitionKey) {
	partitions := make(map[partitionKey][]model.CodeBlock)
	var order []partitionKey
	for _, b := range blocks {
		key := partitionKey{patternID: b.PatternID, category: b.Category}
		if _, ok := partitions[key]; !ok {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], b)
	}
	return partitions, order
}

// runPartitionsConcurrently bounds in-flight partitions at maxParallelism
// using errgroup + semaphore.Weighted (§5, §2.1), the same "leave headroom"
// sizing convention as config.defaultParallelism.
func runPartitionsConcurrently(keys []partitionKey, maxParallelism int, run func(i int)) {
	sem := semaphore.NewWeighted(int64(maxParallelism))
	g, ctx := errgroup.WithContext(context.Background())

	for i := range keys {
		i := i
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			run(i)
			return nil
		})
	}
	_ = g.Wait() // run never returns an error; partitions are independent
}

func greedyCluster(blocks []model.CodeBlock, cfg *config.Config, penalties structural.Penalties) (groups []model.DuplicateGroup, ungrouped []model.CodeBlock) {
	used := make([]bool, len(blocks))

	for i := range blocks {
		if used[i] {
			continue
		}
		group := []model.CodeBlock{blocks[i]}
		similarities := []float64{}
		memberIdx := []int{i}

		for j := i + 1; j < len(blocks); j++ {
			if used[j] {
				continue
			}
			if !semanticallyCompatiblePair(blocks[i], blocks[j]) {
				continue
			}
			score, method := structural.Similarity(blocks[i].SourceCode, blocks[j].SourceCode, cfg.StructuralThreshold, penalties)
			if method == structural.MethodDifferent {
				continue
			}
			if score < cfg.StructuralThreshold {
				continue
			}
			group = append(group, blocks[j])
			similarities = append(similarities, score)
			memberIdx = append(memberIdx, j)
			used[j] = true
		}

		if len(group) >= 2 && groupSemanticallyValid(group) {
			used[i] = true
			groups = append(groups, model.NewDuplicateGroup(group, mean(similarities), model.MethodStructural))
		} else {
			// Release any provisional members back to ungrouped; only i is
			// guaranteed unused here since group members were marked used
			// speculatively above.
			for _, idx := range memberIdx[1:] {
				used[idx] = false
			}
		}
	}

	for i, b := range blocks {
		if !used[i] {
			ungrouped = append(ungrouped, b)
		}
	}
	return groups, ungrouped
}

// groupSemanticallyValid applies §4.7 step 5's acceptance check: same
// pattern_id, same category, and the §4.6 pairwise checks.
func groupSemanticallyValid(blocks []model.CodeBlock) bool {
	if len(blocks) == 0 {
		return false
	}
	patternID := blocks[0].PatternID
	category := blocks[0].Category
	for _, b := range blocks {
		if b.PatternID != patternID || b.Category != category {
			debug.LogLayer2("group rejected: pattern_id/category mismatch")
			return false
		}
	}
	return pairwiseSemanticallyValid(blocks)
}

// semanticallyCompatiblePair implements §4.7 step 4's compatibility check:
// same pattern_id, same category, not the same function in the same file,
// and a line-count ratio of at least 0.5.
func semanticallyCompatiblePair(a, b model.CodeBlock) bool {
	if a.PatternID != b.PatternID || a.Category != b.Category {
		return false
	}
	if sameFunctionAndFile(a, b) {
		return false
	}
	return lineCountRatio(a.LineCount, b.LineCount) >= 0.5
}

func sameFunctionAndFile(a, b model.CodeBlock) bool {
	if a.Location.FilePath != b.Location.FilePath {
		return false
	}
	fnA, okA := a.FunctionTag()
	fnB, okB := b.FunctionTag()
	return okA && okB && fnA == fnB
}

func lineCountRatio(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	lo, hi := float64(a), float64(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo / hi
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
