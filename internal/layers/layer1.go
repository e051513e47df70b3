package layers

import (
	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/dupgrouper/internal/debug"
	"github.com/standardbeagle/dupgrouper/internal/features"
	"github.com/standardbeagle/dupgrouper/internal/model"
)

// GroupLayer1 buckets blocks by content_hash and runs pairwise semantic
// validation on every bucket of size ≥ 2 (§4.6). Returns the accepted
// groups and the blocks left ungrouped, in input order.
func GroupLayer1(blocks []model.CodeBlock) (groups []model.DuplicateGroup, ungrouped []model.CodeBlock) {
	// The bucket map is keyed by xxhash.Sum64String(content_hash) for fast,
	// non-cryptographic sharding (§2.1, §4.6); the emitted content_hash and
	// group_id stay the SHA-256 hex strings from §3.
	buckets := make(map[uint64][]model.CodeBlock)
	order := make([]uint64, 0)
	for _, b := range blocks {
		key := xxhash.Sum64String(b.ContentHash)
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], b)
	}

	usedBlockIDs := make(map[string]struct{})

	for _, key := range order {
		bucket := buckets[key]
		if len(bucket) < 2 {
			continue
		}
		if !pairwiseSemanticallyValid(bucket) {
			debug.LogLayer1("bucket %x rejected: pairwise semantic validation failed", key)
			continue
		}
		groups = append(groups, model.NewDuplicateGroup(bucket, 1.0, model.MethodExactMatch))
		for _, b := range bucket {
			usedBlockIDs[b.BlockID] = struct{}{}
		}
	}

	for _, b := range blocks {
		if _, used := usedBlockIDs[b.BlockID]; !used {
			ungrouped = append(ungrouped, b)
		}
	}
	return groups, ungrouped
}

// pairwiseSemanticallyValid implements the §4.6 checks shared with Layer 2's
// final acceptance: no pair may differ in method chains, non-empty HTTP
// status codes, opposite logical operators, or non-empty semantic methods.
func pairwiseSemanticallyValid(blocks []model.CodeBlock) bool {
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if !pairSemanticallyCompatible(blocks[i], blocks[j]) {
				return false
			}
		}
	}
	return true
}

func pairSemanticallyCompatible(a, b model.CodeBlock) bool {
	fa := features.Extract(a.SourceCode)
	fb := features.Extract(b.SourceCode)

	if setsDifferNonEmpty(intKeys(fa.HTTPStatusCodes), intKeys(fb.HTTPStatusCodes)) {
		return false
	}
	if oppositeLogicalOperators(fa.LogicalOperators, fb.LogicalOperators) {
		return false
	}
	if setsDifferNonEmpty(strKeys(fa.SemanticMethods), strKeys(fb.SemanticMethods)) {
		return false
	}
	if !sameMethodChain(a.SourceCode, b.SourceCode) {
		return false
	}
	return true
}
