package idle

func RequirementMet(req Requirement, resources map[string]float64) bool {
	if req.None() {
		return true
	}
	return resources[req.ResourceID] >= req.Amount
}

func IsUnlocked(node Node, resources map[string]float64) bool {
	return RequirementMet(node.Base().Requirement, resources)
}

// UnlockProgress reports how close the ledger is to a node's requirement, in 0..1.
func UnlockProgress(node Node, resources map[string]float64) float64 {
	req := node.Base().Requirement
	if req.None() || req.Amount <= 0 {
		return 1
	}
	return clamp01(resources[req.ResourceID] / req.Amount)
}

// VisibleNodes returns every unlocked node in input order plus at most one
// locked node: the first one whose prerequisite resource is already
// discovered. Deeper locked nodes stay hidden.
func VisibleNodes(nodes []Node, resources map[string]float64, discovered map[string]bool) []Node {
	out := make([]Node, 0, len(nodes))
	var next Node
	for _, n := range nodes {
		if IsUnlocked(n, resources) {
			out = append(out, n)
			continue
		}
		if next == nil && discovered[n.Base().Requirement.ResourceID] {
			next = n
		}
	}
	if next == nil {
		return out
	}
	for _, n := range out {
		if n.Base().ID == next.Base().ID {
			return out
		}
	}
	return append(out, next)
}
