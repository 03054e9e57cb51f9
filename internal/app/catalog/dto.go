package catalog

import "idleodyssey/internal/domain/idle"

type Response struct {
	Resources []string `json:"resources"`
	Nodes     []string `json:"nodes"`
	Upgrades  []string `json:"upgrades"`
	Recipes   []string `json:"recipes"`
}

func summarize(cat idle.Catalog) Response {
	out := Response{
		Resources: make([]string, 0, len(cat.Resources)),
		Nodes:     make([]string, 0, len(cat.Nodes)),
		Upgrades:  make([]string, 0, len(cat.Upgrades)),
		Recipes:   make([]string, 0, len(cat.Recipes)),
	}
	for _, r := range cat.Resources {
		out.Resources = append(out.Resources, r.ID)
	}
	for _, n := range cat.Nodes {
		out.Nodes = append(out.Nodes, n.Base().ID)
	}
	for _, u := range cat.Upgrades {
		out.Upgrades = append(out.Upgrades, u.ID)
	}
	for _, r := range cat.Recipes {
		out.Recipes = append(out.Recipes, r.ID)
	}
	return out
}
