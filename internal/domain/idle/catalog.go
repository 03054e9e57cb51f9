package idle

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the read-only content the engine is built from. Node order is
// display order.
type Catalog struct {
	Resources    []ResourceDef
	Nodes        []Node
	Upgrades     []UpgradeDef
	Recipes      []Recipe
	SellPrices   map[string]float64
	BaseStats    map[StatKey]float64
	CurrencyID   string
	ExperienceID string
}

type catalogIndex struct {
	resources map[string]ResourceDef
	nodes     map[string]Node
	upgrades  map[string]UpgradeDef
	recipes   map[string]Recipe
	stats     map[StatKey]float64
}

func (c Catalog) currency() string {
	if c.CurrencyID == "" {
		return DefaultCurrencyID
	}
	return c.CurrencyID
}

func (c Catalog) experience() string {
	if c.ExperienceID == "" {
		return DefaultExperienceID
	}
	return c.ExperienceID
}

// StatKeys lists every stat the catalog defines: the global XP multiplier and
// amount/mult/speed for each node namespace.
func (c Catalog) StatKeys() []StatKey {
	seen := map[StatKey]bool{}
	out := []StatKey{XPGainMult()}
	seen[XPGainMult()] = true
	for _, n := range c.Nodes {
		ns := statNamespace(n)
		for _, k := range []StatKey{AmountStat(ns), MultStat(ns), SpeedStat(ns)} {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

func (c Catalog) Validate() error {
	_, err := c.index()
	return err
}

func (c Catalog) index() (catalogIndex, error) {
	idx := catalogIndex{
		resources: make(map[string]ResourceDef, len(c.Resources)),
		nodes:     make(map[string]Node, len(c.Nodes)),
		upgrades:  make(map[string]UpgradeDef, len(c.Upgrades)),
		recipes:   make(map[string]Recipe, len(c.Recipes)),
		stats:     map[StatKey]float64{},
	}

	for _, r := range c.Resources {
		if strings.TrimSpace(r.ID) == "" {
			return idx, fmt.Errorf("%w: resource with empty id", ErrInvalidCatalog)
		}
		if _, dup := idx.resources[r.ID]; dup {
			return idx, fmt.Errorf("%w: duplicate resource %q", ErrInvalidCatalog, r.ID)
		}
		idx.resources[r.ID] = r
	}
	for _, id := range []string{c.currency(), c.experience()} {
		if _, ok := idx.resources[id]; !ok {
			return idx, fmt.Errorf("%w: missing built-in resource %q", ErrInvalidCatalog, id)
		}
	}
	checkResource := func(where, id string) error {
		if _, ok := idx.resources[id]; ok {
			return nil
		}
		return fmt.Errorf("%w: %s references unknown resource %q%s", ErrInvalidCatalog, where, id, didYouMean(id, keys(idx.resources)))
	}

	for _, n := range c.Nodes {
		if n == nil {
			return idx, fmt.Errorf("%w: nil node", ErrInvalidCatalog)
		}
		b := n.Base()
		if strings.TrimSpace(b.ID) == "" {
			return idx, fmt.Errorf("%w: node with empty id", ErrInvalidCatalog)
		}
		if _, dup := idx.nodes[b.ID]; dup {
			return idx, fmt.Errorf("%w: duplicate node %q", ErrInvalidCatalog, b.ID)
		}
		if b.Duration <= 0 {
			return idx, fmt.Errorf("%w: node %q has non-positive duration", ErrInvalidCatalog, b.ID)
		}
		if !b.Requirement.None() {
			if err := checkResource("node "+b.ID+" requirement", b.Requirement.ResourceID); err != nil {
				return idx, err
			}
		}
		switch node := n.(type) {
		case StandardNode:
			if err := checkResource("node "+b.ID, node.ResourceID); err != nil {
				return idx, err
			}
		case FishingNode:
			for _, f := range node.FishTable {
				if err := checkResource("node "+b.ID+" fish table", f.ResourceID); err != nil {
					return idx, err
				}
				if f.Chance < 0 {
					return idx, fmt.Errorf("%w: node %q has negative chance for %q", ErrInvalidCatalog, b.ID, f.ResourceID)
				}
			}
		default:
			return idx, fmt.Errorf("%w: node %q has unsupported kind %q", ErrInvalidCatalog, b.ID, n.Kind())
		}
		idx.nodes[b.ID] = n
	}

	for _, k := range c.StatKeys() {
		idx.stats[k] = defaultBase(k.Kind)
	}
	for k, v := range c.BaseStats {
		if _, ok := idx.stats[k]; !ok {
			return idx, unknownStatError("base stats", k, idx.stats)
		}
		idx.stats[k] = v
	}

	for _, u := range c.Upgrades {
		if strings.TrimSpace(u.ID) == "" {
			return idx, fmt.Errorf("%w: upgrade with empty id", ErrInvalidCatalog)
		}
		if _, dup := idx.upgrades[u.ID]; dup {
			return idx, fmt.Errorf("%w: duplicate upgrade %q", ErrInvalidCatalog, u.ID)
		}
		for id := range u.Cost {
			if err := checkResource("upgrade "+u.ID+" cost", id); err != nil {
				return idx, err
			}
		}
		for _, e := range u.Effects {
			if strings.TrimSpace(e.ID) == "" {
				return idx, fmt.Errorf("%w: upgrade %q grants an effect with empty id", ErrInvalidCatalog, u.ID)
			}
			for _, m := range e.Modifiers {
				if _, ok := idx.stats[m.Stat]; !ok {
					return idx, unknownStatError("upgrade "+u.ID, m.Stat, idx.stats)
				}
				if m.Kind != ModifierAdd && m.Kind != ModifierMul {
					return idx, fmt.Errorf("%w: upgrade %q has modifier kind %q", ErrInvalidCatalog, u.ID, m.Kind)
				}
			}
		}
		if u.AutoNodeID != "" {
			if _, ok := idx.nodes[u.AutoNodeID]; !ok {
				return idx, fmt.Errorf("%w: upgrade %q unlocks automation for unknown node %q%s", ErrInvalidCatalog, u.ID, u.AutoNodeID, didYouMean(u.AutoNodeID, keys(idx.nodes)))
			}
		}
		idx.upgrades[u.ID] = u
	}

	for _, r := range c.Recipes {
		if strings.TrimSpace(r.ID) == "" {
			return idx, fmt.Errorf("%w: recipe with empty id", ErrInvalidCatalog)
		}
		if _, dup := idx.recipes[r.ID]; dup {
			return idx, fmt.Errorf("%w: duplicate recipe %q", ErrInvalidCatalog, r.ID)
		}
		if err := checkResource("recipe "+r.ID+" output", r.Output.ResourceID); err != nil {
			return idx, err
		}
		for _, cost := range r.Costs {
			switch cost.Kind {
			case CostResource:
				if err := checkResource("recipe "+r.ID+" cost", cost.ResourceID); err != nil {
					return idx, err
				}
			case CostAnyOf:
				if len(cost.ResourceIDs) == 0 {
					return idx, fmt.Errorf("%w: recipe %q has an empty any_of cost", ErrInvalidCatalog, r.ID)
				}
				for _, id := range cost.ResourceIDs {
					if err := checkResource("recipe "+r.ID+" cost", id); err != nil {
						return idx, err
					}
				}
			default:
				return idx, fmt.Errorf("%w: recipe %q has cost type %q", ErrInvalidCatalog, r.ID, cost.Kind)
			}
		}
		idx.recipes[r.ID] = r
	}

	for id, price := range c.SellPrices {
		if err := checkResource("sell price", id); err != nil {
			return idx, err
		}
		if price < 0 {
			return idx, fmt.Errorf("%w: negative sell price for %q", ErrInvalidCatalog, id)
		}
	}
	return idx, nil
}

// NodeDuration is a convenience for catalogs written in seconds.
func NodeDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func statNamespace(n Node) string {
	b := n.Base()
	if b.StatNamespace != "" {
		return b.StatNamespace
	}
	switch node := n.(type) {
	case StandardNode:
		return node.ResourceID
	case FishingNode:
		return FishingStatNamespace
	default:
		return b.ID
	}
}

func unknownStatError(where string, k StatKey, known map[StatKey]float64) error {
	names := make([]string, 0, len(known))
	for s := range known {
		names = append(names, s.String())
	}
	return fmt.Errorf("%w: %w: %s references %q%s", ErrInvalidCatalog, ErrUnknownStat, where, k.String(), didYouMean(k.String(), names))
}

func didYouMean(input string, candidates []string) string {
	if s := Suggest(input, candidates); s != "" {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}

// Suggest returns the candidate closest to input by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(input string, candidates []string) string {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", -1
	for _, cand := range sorted {
		dist := levenshtein.ComputeDistance(in, strings.ToLower(cand))
		if dist > suggestLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 10:
		return 2
	default:
		return 3
	}
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
