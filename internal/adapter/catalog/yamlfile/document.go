package yamlfile

import (
	"fmt"
	"math"
	"time"

	"idleodyssey/internal/domain/idle"
)

// document is the on-disk catalog layout. Durations are written in seconds.
type document struct {
	CurrencyID   string             `yaml:"currency_id,omitempty"`
	ExperienceID string             `yaml:"experience_id,omitempty"`
	Resources    []resourceDoc      `yaml:"resources"`
	Nodes        []nodeDoc          `yaml:"nodes"`
	Upgrades     []upgradeDoc       `yaml:"upgrades,omitempty"`
	Recipes      []recipeDoc        `yaml:"recipes,omitempty"`
	SellPrices   map[string]float64 `yaml:"sell_prices,omitempty"`
	BaseStats    map[string]float64 `yaml:"base_stats,omitempty"`
}

type resourceDoc struct {
	ID                  string `yaml:"id"`
	Name                string `yaml:"name"`
	Decimals            int    `yaml:"decimals,omitempty"`
	DiscoveredByDefault bool   `yaml:"discovered_by_default,omitempty"`
}

type requirementDoc struct {
	ResourceID string  `yaml:"resource_id"`
	Amount     float64 `yaml:"amount"`
}

type fishDoc struct {
	ResourceID string  `yaml:"resource_id"`
	Chance     float64 `yaml:"chance"`
	Label      string  `yaml:"label,omitempty"`
}

type nodeDoc struct {
	ID              string          `yaml:"id"`
	Kind            idle.NodeKind   `yaml:"kind"`
	Category        string          `yaml:"category"`
	Label           string          `yaml:"label"`
	ActionVerb      string          `yaml:"action_verb"`
	Requirement     *requirementDoc `yaml:"requirement,omitempty"`
	DurationSeconds float64         `yaml:"duration_seconds"`
	XP              float64         `yaml:"xp"`
	StatNamespace   string          `yaml:"stat_namespace,omitempty"`
	ResourceID      string          `yaml:"resource_id,omitempty"`
	RewardAmount    float64         `yaml:"reward_amount,omitempty"`
	FishTable       []fishDoc       `yaml:"fish_table,omitempty"`
}

type modifierDoc struct {
	Stat  string            `yaml:"stat"`
	Kind  idle.ModifierKind `yaml:"kind"`
	Value float64           `yaml:"value"`
}

type effectDoc struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name,omitempty"`
	Source    string        `yaml:"source,omitempty"`
	Stacks    int           `yaml:"stacks,omitempty"`
	MaxStacks int           `yaml:"max_stacks,omitempty"`
	Modifiers []modifierDoc `yaml:"modifiers"`
}

type upgradeDoc struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Category    string             `yaml:"category,omitempty"`
	Material    string             `yaml:"material,omitempty"`
	Cost        map[string]float64 `yaml:"cost"`
	Effects     []effectDoc        `yaml:"effects,omitempty"`
	AutoNodeID  string             `yaml:"auto_node_id,omitempty"`
}

type costDoc struct {
	Type        idle.CostKind `yaml:"type"`
	ResourceID  string        `yaml:"resource_id,omitempty"`
	ResourceIDs []string      `yaml:"resource_ids,omitempty"`
	Amount      float64       `yaml:"amount"`
	Label       string        `yaml:"label,omitempty"`
}

type outputDoc struct {
	ResourceID string  `yaml:"resource_id"`
	Amount     float64 `yaml:"amount"`
}

type recipeDoc struct {
	ID     string    `yaml:"id"`
	Skill  string    `yaml:"skill"`
	Label  string    `yaml:"label"`
	Output outputDoc `yaml:"output"`
	Costs  []costDoc `yaml:"costs"`
}

func (d document) toCatalog() (idle.Catalog, error) {
	cat := idle.Catalog{
		CurrencyID:   d.CurrencyID,
		ExperienceID: d.ExperienceID,
	}
	for _, r := range d.Resources {
		cat.Resources = append(cat.Resources, idle.ResourceDef(r))
	}
	for i, n := range d.Nodes {
		node, err := n.toNode()
		if err != nil {
			return idle.Catalog{}, fmt.Errorf("nodes[%d]: %w", i, err)
		}
		cat.Nodes = append(cat.Nodes, node)
	}
	for i, u := range d.Upgrades {
		up := idle.UpgradeDef{
			ID:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			Category:    u.Category,
			Material:    u.Material,
			Cost:        u.Cost,
			AutoNodeID:  u.AutoNodeID,
		}
		for j, e := range u.Effects {
			eff, err := e.toEffect()
			if err != nil {
				return idle.Catalog{}, fmt.Errorf("upgrades[%d].effects[%d]: %w", i, j, err)
			}
			up.Effects = append(up.Effects, eff)
		}
		cat.Upgrades = append(cat.Upgrades, up)
	}
	for _, r := range d.Recipes {
		rec := idle.Recipe{
			ID:     r.ID,
			Skill:  r.Skill,
			Label:  r.Label,
			Output: idle.RecipeOutput(r.Output),
		}
		for _, c := range r.Costs {
			rec.Costs = append(rec.Costs, idle.Cost{
				Kind:        c.Type,
				ResourceID:  c.ResourceID,
				ResourceIDs: c.ResourceIDs,
				Amount:      c.Amount,
				Label:       c.Label,
			})
		}
		cat.Recipes = append(cat.Recipes, rec)
	}
	if len(d.SellPrices) > 0 {
		cat.SellPrices = d.SellPrices
	}
	if len(d.BaseStats) > 0 {
		cat.BaseStats = make(map[idle.StatKey]float64, len(d.BaseStats))
		for raw, v := range d.BaseStats {
			k, err := idle.ParseStatKey(raw)
			if err != nil {
				return idle.Catalog{}, fmt.Errorf("base_stats: %w", err)
			}
			cat.BaseStats[k] = v
		}
	}
	return cat, nil
}

func (n nodeDoc) toNode() (idle.Node, error) {
	base := idle.NodeBase{
		ID:            n.ID,
		Category:      idle.NodeCategory(n.Category),
		Label:         n.Label,
		ActionVerb:    n.ActionVerb,
		Duration:      idle.NodeDuration(n.DurationSeconds),
		XP:            n.XP,
		StatNamespace: n.StatNamespace,
	}
	if n.Requirement != nil {
		base.Requirement = idle.Requirement{ResourceID: n.Requirement.ResourceID, Amount: n.Requirement.Amount}
	}
	switch n.Kind {
	case idle.NodeStandard, "":
		return idle.StandardNode{NodeBase: base, ResourceID: n.ResourceID, RewardAmount: n.RewardAmount}, nil
	case idle.NodeFishing:
		node := idle.FishingNode{NodeBase: base}
		for _, f := range n.FishTable {
			node.FishTable = append(node.FishTable, idle.FishEntry(f))
		}
		return node, nil
	default:
		return nil, fmt.Errorf("node %q: unknown kind %q", n.ID, n.Kind)
	}
}

func (e effectDoc) toEffect() (idle.Effect, error) {
	eff := idle.Effect{
		ID:        e.ID,
		Name:      e.Name,
		Source:    idle.EffectSource(e.Source),
		Stacks:    e.Stacks,
		MaxStacks: e.MaxStacks,
	}
	for _, m := range e.Modifiers {
		k, err := idle.ParseStatKey(m.Stat)
		if err != nil {
			return idle.Effect{}, fmt.Errorf("effect %q: %w", e.ID, err)
		}
		eff.Modifiers = append(eff.Modifiers, idle.Modifier{Stat: k, Kind: m.Kind, Value: m.Value})
	}
	return eff, nil
}

func fromCatalog(cat idle.Catalog) document {
	d := document{
		CurrencyID:   cat.CurrencyID,
		ExperienceID: cat.ExperienceID,
		SellPrices:   cat.SellPrices,
	}
	for _, r := range cat.Resources {
		d.Resources = append(d.Resources, resourceDoc(r))
	}
	for _, n := range cat.Nodes {
		d.Nodes = append(d.Nodes, fromNode(n))
	}
	for _, u := range cat.Upgrades {
		ud := upgradeDoc{
			ID:          u.ID,
			Name:        u.Name,
			Description: u.Description,
			Category:    u.Category,
			Material:    u.Material,
			Cost:        u.Cost,
			AutoNodeID:  u.AutoNodeID,
		}
		for _, e := range u.Effects {
			ed := effectDoc{ID: e.ID, Name: e.Name, Source: string(e.Source), Stacks: e.Stacks, MaxStacks: e.MaxStacks}
			for _, m := range e.Modifiers {
				ed.Modifiers = append(ed.Modifiers, modifierDoc{Stat: m.Stat.String(), Kind: m.Kind, Value: m.Value})
			}
			ud.Effects = append(ud.Effects, ed)
		}
		d.Upgrades = append(d.Upgrades, ud)
	}
	for _, r := range cat.Recipes {
		rd := recipeDoc{
			ID:     r.ID,
			Skill:  r.Skill,
			Label:  r.Label,
			Output: outputDoc(r.Output),
		}
		for _, c := range r.Costs {
			rd.Costs = append(rd.Costs, costDoc{
				Type:        c.Kind,
				ResourceID:  c.ResourceID,
				ResourceIDs: c.ResourceIDs,
				Amount:      c.Amount,
				Label:       c.Label,
			})
		}
		d.Recipes = append(d.Recipes, rd)
	}
	if len(cat.BaseStats) > 0 {
		d.BaseStats = make(map[string]float64, len(cat.BaseStats))
		for k, v := range cat.BaseStats {
			d.BaseStats[k.String()] = v
		}
	}
	return d
}

func fromNode(n idle.Node) nodeDoc {
	b := n.Base()
	nd := nodeDoc{
		ID:              b.ID,
		Kind:            n.Kind(),
		Category:        string(b.Category),
		Label:           b.Label,
		ActionVerb:      b.ActionVerb,
		DurationSeconds: seconds(b.Duration),
		XP:              b.XP,
		StatNamespace:   b.StatNamespace,
	}
	if !b.Requirement.None() {
		nd.Requirement = &requirementDoc{ResourceID: b.Requirement.ResourceID, Amount: b.Requirement.Amount}
	}
	switch node := n.(type) {
	case idle.StandardNode:
		nd.ResourceID = node.ResourceID
		nd.RewardAmount = node.RewardAmount
	case idle.FishingNode:
		for _, f := range node.FishTable {
			nd.FishTable = append(nd.FishTable, fishDoc(f))
		}
	}
	return nd
}

// seconds keeps millisecond precision so written files stay readable.
func seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
