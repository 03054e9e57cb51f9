package observe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"
)

var ErrInvalidRequest = errors.New("invalid observe request")

var categories = []idle.NodeCategory{idle.CategoryWoodcutting, idle.CategoryMining, idle.CategoryFishing}

type UseCase struct {
	Session ports.EngineSession
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Category = idle.NodeCategory(strings.TrimSpace(string(req.Category)))
	if req.Category != "" && !knownCategory(req.Category) {
		return Response{}, fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, req.Category)
	}

	var out Response
	err := u.Session.Do(ctx, func(e *idle.Engine) error {
		cat := e.Catalog()
		out = Response{
			Resources:  projectResources(e),
			Level:      e.Level(),
			Gather:     projectGather(e),
			Nodes:      map[string][]ObservedNode{},
			Upgrades:   projectUpgrades(e),
			Recipes:    projectRecipes(e),
			SellPrices: map[string]float64{},
			Effects:    e.Effects(),
			Automation: map[string]AutomationState{},
		}
		for _, c := range categories {
			if req.Category != "" && c != req.Category {
				continue
			}
			out.Nodes[string(c)] = projectNodes(e, e.VisibleNodes(c))
		}
		for _, r := range cat.Resources {
			if !e.Discovered(r.ID) {
				continue
			}
			if price, ok := e.SellPrice(r.ID); ok {
				out.SellPrices[r.ID] = price
			}
		}
		for _, n := range cat.Nodes {
			id := n.Base().ID
			if e.AutoAvailable(id) {
				out.Automation[id] = AutomationState{Available: true, Enabled: e.AutoEnabled(id)}
			}
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}

func knownCategory(c idle.NodeCategory) bool {
	for _, k := range categories {
		if k == c {
			return true
		}
	}
	return false
}

// projectResources lists discovered resources in catalog order.
func projectResources(e *idle.Engine) []ObservedResource {
	defs := e.Catalog().Resources
	out := make([]ObservedResource, 0, len(defs))
	for _, r := range defs {
		if !e.Discovered(r.ID) {
			continue
		}
		out = append(out, ObservedResource{ID: r.ID, Name: r.Name, Amount: e.Resource(r.ID)})
	}
	return out
}

func projectGather(e *idle.Engine) ObservedGather {
	s := e.Session()
	out := ObservedGather{ActiveNodeID: s.ActiveNodeID, Progress: s.Progress}
	if n, ok := e.Node(s.ActiveNodeID); ok {
		out.CycleMS = e.CycleDuration(n).Milliseconds()
	}
	return out
}

func projectNodes(e *idle.Engine, nodes []idle.Node) []ObservedNode {
	res := e.Resources()
	active := e.Session().ActiveNodeID
	out := make([]ObservedNode, 0, len(nodes))
	for _, n := range nodes {
		b := n.Base()
		xp, reward := e.CycleYield(n)
		view := ObservedNode{
			ID:             b.ID,
			Label:          b.Label,
			ActionVerb:     b.ActionVerb,
			Kind:           n.Kind(),
			Unlocked:       idle.IsUnlocked(n, res),
			UnlockProgress: idle.UnlockProgress(n, res),
			Requirement:    b.Requirement,
			CycleMS:        e.CycleDuration(n).Milliseconds(),
			XPPerCycle:     xp,
			Active:         b.ID == active,
		}
		switch nd := n.(type) {
		case idle.StandardNode:
			view.ResourceID = nd.ResourceID
			view.RewardPerCycle = reward
		case idle.FishingNode:
			chances := idle.FishChances(nd.FishTable)
			for i, f := range nd.FishTable {
				view.FishChances = append(view.FishChances, ObservedFishRoll{ResourceID: f.ResourceID, Percent: chances[i]})
			}
		}
		out = append(out, view)
	}
	return out
}

func projectUpgrades(e *idle.Engine) []ObservedUpgrade {
	defs := e.Catalog().Upgrades
	out := make([]ObservedUpgrade, 0, len(defs))
	for _, u := range defs {
		out = append(out, ObservedUpgrade{
			ID:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			Category:    u.Category,
			Cost:        u.Cost,
			Owned:       e.Owned(u.ID),
			Affordable:  e.CanBuyUpgrade(u.ID),
			AutoNodeID:  u.AutoNodeID,
		})
	}
	return out
}

func projectRecipes(e *idle.Engine) []ObservedRecipe {
	res := e.Resources()
	defs := e.Catalog().Recipes
	out := make([]ObservedRecipe, 0, len(defs))
	for _, r := range defs {
		view := ObservedRecipe{
			ID:        r.ID,
			Label:     r.Label,
			Skill:     r.Skill,
			Output:    r.Output,
			Craftable: e.CanCraft(r.ID),
		}
		for _, c := range r.Costs {
			have, need := idle.CostProgress(c, res)
			view.Costs = append(view.Costs, ObservedCost{Label: costLabel(c), Have: have, Need: need})
		}
		out = append(out, view)
	}
	return out
}

func costLabel(c idle.Cost) string {
	if c.Label != "" {
		return c.Label
	}
	if c.Kind == idle.CostAnyOf {
		ids := append([]string(nil), c.ResourceIDs...)
		sort.Strings(ids)
		return strings.Join(ids, "|")
	}
	return c.ResourceID
}
