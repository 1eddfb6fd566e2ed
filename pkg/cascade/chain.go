package cascade

import "sort"

// DefaultChainLimit caps impact chains at the size the original product
// renders. The total dependent count is always reported uncapped.
const DefaultChainLimit = 10

// BuildChain orders dependents by (depth ascending, unit id ascending)
// and truncates to limit entries. A limit <= 0 falls back to
// DefaultChainLimit. The input slice is not modified.
func BuildChain(deps []Dependent, limit int) []Dependent {
	if limit <= 0 {
		limit = DefaultChainLimit
	}

	chain := make([]Dependent, len(deps))
	copy(chain, deps)

	sort.SliceStable(chain, func(i, j int) bool {
		if chain[i].Depth != chain[j].Depth {
			return chain[i].Depth < chain[j].Depth
		}
		return chain[i].Unit.ID < chain[j].Unit.ID
	})

	if len(chain) > limit {
		chain = chain[:limit]
	}
	return chain
}
