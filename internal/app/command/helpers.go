package command

import (
	"strings"

	"idleodyssey/internal/domain/idle"
)

func (e *RejectedError) withSuggestion(input string, candidates []string) *RejectedError {
	if s := idle.Suggest(input, candidates); s != "" {
		return e.with("did_you_mean", s)
	}
	return e
}

func unknownNode(e *idle.Engine, id string) *RejectedError {
	return reject(CodeUnknownNode, "unknown node %q", id).withSuggestion(id, nodeIDs(e.Catalog()))
}

func unknownResource(e *idle.Engine, id string) *RejectedError {
	return reject(CodeUnknownResource, "unknown resource %q", id).withSuggestion(id, resourceIDs(e.Catalog()))
}

func missing(e *idle.Engine, cost map[string]float64) map[string]float64 {
	out := map[string]float64{}
	for id, need := range cost {
		if have := e.Resource(id); have < need {
			out[id] = need - have
		}
	}
	return out
}

func costLabel(c idle.Cost) string {
	if c.Label != "" {
		return c.Label
	}
	if c.Kind == idle.CostAnyOf {
		return strings.Join(c.ResourceIDs, "|")
	}
	return c.ResourceID
}

func nodeIDs(cat idle.Catalog) []string {
	out := make([]string, 0, len(cat.Nodes))
	for _, n := range cat.Nodes {
		out = append(out, n.Base().ID)
	}
	return out
}

func resourceIDs(cat idle.Catalog) []string {
	out := make([]string, 0, len(cat.Resources))
	for _, r := range cat.Resources {
		out = append(out, r.ID)
	}
	return out
}

func upgradeIDs(cat idle.Catalog) []string {
	out := make([]string, 0, len(cat.Upgrades))
	for _, u := range cat.Upgrades {
		out = append(out, u.ID)
	}
	return out
}

func recipeIDs(cat idle.Catalog) []string {
	out := make([]string, 0, len(cat.Recipes))
	for _, r := range cat.Recipes {
		out = append(out, r.ID)
	}
	return out
}
