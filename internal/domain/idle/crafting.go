package idle

import "maps"

// CanAfford reports whether the recipe can be paid in full. Costs are paid
// against one shared ledger, so a resource named by a fixed cost and an any-of
// cost only counts once.
func CanAfford(recipe Recipe, resources map[string]float64) bool {
	return pay(recipe.Costs, maps.Clone(resources))
}

// CostProgress returns how much of a single cost the ledger currently covers.
func CostProgress(c Cost, resources map[string]float64) (have, need float64) {
	switch c.Kind {
	case CostAnyOf:
		for _, id := range c.ResourceIDs {
			have += resources[id]
		}
	default:
		have = resources[c.ResourceID]
	}
	return have, c.Amount
}

// Craft pays the recipe out of resources and credits its output. Fixed costs
// are paid first. Any-of costs then drain each resource of the set fully, in
// declaration order, before moving on. Nothing changes when the recipe is
// unaffordable.
func Craft(recipe Recipe, resources map[string]float64, discovered map[string]bool) bool {
	paid := maps.Clone(resources)
	if !pay(recipe.Costs, paid) {
		return false
	}
	for id, v := range paid {
		resources[id] = v
	}
	out := recipe.Output
	if out.Amount > 0 {
		resources[out.ResourceID] = saturatingAdd(resources[out.ResourceID], out.Amount)
		if discovered != nil && resources[out.ResourceID] > 0 {
			discovered[out.ResourceID] = true
		}
	}
	return true
}

// pay deducts costs from resources in place and reports whether every cost
// was covered. Callers pass a copy; a failed payment leaves it partly spent.
func pay(costs []Cost, resources map[string]float64) bool {
	for _, c := range costs {
		if c.Kind == CostAnyOf {
			continue
		}
		if resources[c.ResourceID] < c.Amount {
			return false
		}
		resources[c.ResourceID] = clampZero(resources[c.ResourceID] - c.Amount)
	}
	for _, c := range costs {
		if c.Kind != CostAnyOf {
			continue
		}
		remaining := c.Amount
		for _, id := range c.ResourceIDs {
			if remaining <= 0 {
				break
			}
			take := minFloat(resources[id], remaining)
			if take <= 0 {
				continue
			}
			resources[id] -= take
			remaining -= take
		}
		if remaining > 0 {
			return false
		}
	}
	return true
}
