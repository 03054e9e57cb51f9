package idle

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"time"
)

// Engine is the authoritative game state. It is not safe for concurrent use;
// callers serialize every mutation and tick.
type Engine struct {
	cat   Catalog
	idx   catalogIndex
	clock Clock
	rng   Rand
	log   *slog.Logger

	resources     map[string]float64
	discovered    map[string]bool
	effects       *EffectSet
	owned         map[string]bool
	autoAvailable map[string]bool
	autoEnabled   map[string]bool
	session       GatherSession
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

func WithRand(r Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func New(cat Catalog, opts ...Option) (*Engine, error) {
	idx, err := cat.index()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &Engine{
		cat:           cat,
		idx:           idx,
		clock:         SystemClock{},
		rng:           rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix()))),
		log:           slog.Default(),
		resources:     make(map[string]float64, len(cat.Resources)),
		discovered:    make(map[string]bool, len(cat.Resources)),
		effects:       NewEffectSet(),
		owned:         map[string]bool{},
		autoAvailable: map[string]bool{},
		autoEnabled:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, r := range cat.Resources {
		e.resources[r.ID] = 0
		if r.DiscoveredByDefault {
			e.discovered[r.ID] = true
		}
	}
	return e, nil
}

// MustNew panics on an invalid catalog. Meant for tests and built-in content.
func MustNew(cat Catalog, opts ...Option) *Engine {
	e, err := New(cat, opts...)
	if err != nil {
		panic(fmt.Sprintf("idle.MustNew: %v", err))
	}
	return e
}

func (e *Engine) Catalog() Catalog { return e.cat }

func (e *Engine) Node(id string) (Node, bool) {
	n, ok := e.idx.nodes[id]
	return n, ok
}

func (e *Engine) Upgrade(id string) (UpgradeDef, bool) {
	u, ok := e.idx.upgrades[id]
	return u, ok
}

func (e *Engine) Recipe(id string) (Recipe, bool) {
	r, ok := e.idx.recipes[id]
	return r, ok
}

func (e *Engine) HasResource(id string) bool {
	_, ok := e.idx.resources[id]
	return ok
}

// AddResource credits (or, for negative amounts, debits) a resource. Debits
// clamp at zero. Spending paths use the cost helpers instead.
// AddResource refuses a credit that would overflow the ledger.
func (e *Engine) AddResource(id string, amount float64) bool {
	if !e.HasResource(id) || !finite(amount) || !finite(e.resources[id]+amount) {
		return false
	}
	e.gain(id, amount)
	return true
}

func (e *Engine) SetResource(id string, amount float64) bool {
	if !e.HasResource(id) || !finite(amount) {
		return false
	}
	e.resources[id] = clampZero(amount)
	if e.resources[id] > 0 {
		e.discovered[id] = true
	}
	return true
}

// SetActiveNode selects the node to gather, or deactivates with "". Any
// in-flight progress is discarded.
func (e *Engine) SetActiveNode(id string) bool {
	if id == "" {
		e.session = GatherSession{}
		return true
	}
	if _, ok := e.idx.nodes[id]; !ok {
		return false
	}
	e.session = GatherSession{ActiveNodeID: id, LastTickAt: e.clock.Now()}
	return true
}

func (e *Engine) BuyUpgrade(id string) bool {
	u, ok := e.idx.upgrades[id]
	if !ok || e.owned[id] {
		return false
	}
	if !e.spend(u.Cost) {
		return false
	}
	for _, eff := range u.Effects {
		e.effects.Add(eff)
	}
	e.owned[id] = true
	if u.AutoNodeID != "" {
		e.autoAvailable[u.AutoNodeID] = true
	}
	return true
}

func (e *Engine) CanBuyUpgrade(id string) bool {
	u, ok := e.idx.upgrades[id]
	return ok && !e.owned[id] && e.canPay(u.Cost)
}

func (e *Engine) ToggleAuto(nodeID string) bool {
	if !e.autoAvailable[nodeID] {
		return false
	}
	e.autoEnabled[nodeID] = !e.autoEnabled[nodeID]
	return true
}

// SellPrice reports the unit price, false when the resource cannot be sold.
func (e *Engine) SellPrice(id string) (float64, bool) {
	if id == e.cat.currency() || id == e.cat.experience() {
		return 0, false
	}
	price, ok := e.cat.SellPrices[id]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

// SellResource sells amount (everything when nil) and returns the gold gained.
func (e *Engine) SellResource(id string, amount *float64) float64 {
	price, ok := e.SellPrice(id)
	if !ok {
		return 0
	}
	qty := e.resources[id]
	if amount != nil {
		if !finite(*amount) {
			return 0
		}
		qty = minFloat(qty, math.Max(0, *amount))
	}
	if qty <= 0 {
		return 0
	}
	gold := math.Floor(qty * price)
	if gold <= 0 || !finite(gold) {
		return 0
	}
	e.resources[id] = clampZero(e.resources[id] - qty)
	e.gain(e.cat.currency(), gold)
	return gold
}

func (e *Engine) CanCraft(recipeID string) bool {
	r, ok := e.idx.recipes[recipeID]
	return ok && CanAfford(r, e.resources)
}

func (e *Engine) Craft(recipeID string) bool {
	r, ok := e.idx.recipes[recipeID]
	if !ok {
		return false
	}
	return Craft(r, e.resources, e.discovered)
}

func (e *Engine) AddEffect(effect Effect) bool {
	if effect.ID == "" {
		return false
	}
	for _, m := range effect.Modifiers {
		if _, ok := e.idx.stats[m.Stat]; !ok {
			return false
		}
	}
	e.effects.Add(effect)
	return true
}

func (e *Engine) RemoveEffect(id string) bool {
	return e.effects.Remove(id)
}

// Stat resolves a stat against the current effects. Expired effects linger
// until the next tick prunes them.
func (e *Engine) Stat(key StatKey) (float64, bool) {
	base, ok := e.idx.stats[key]
	if !ok {
		return 0, false
	}
	return Resolve(base, key, e.effects.List()), true
}

func (e *Engine) BaseStat(key StatKey) (float64, bool) {
	base, ok := e.idx.stats[key]
	return base, ok
}

func (e *Engine) stat(key StatKey, effects []Effect) float64 {
	return Resolve(e.idx.stats[key], key, effects)
}

func (e *Engine) Resources() map[string]float64    { return maps.Clone(e.resources) }
func (e *Engine) Resource(id string) float64       { return e.resources[id] }
func (e *Engine) Discovered(id string) bool        { return e.discovered[id] }
func (e *Engine) Owned(upgradeID string) bool      { return e.owned[upgradeID] }
func (e *Engine) AutoAvailable(nodeID string) bool { return e.autoAvailable[nodeID] }
func (e *Engine) AutoEnabled(nodeID string) bool   { return e.autoEnabled[nodeID] }
func (e *Engine) Session() GatherSession           { return e.session }
func (e *Engine) Effects() []Effect                { return e.effects.List() }
func (e *Engine) Level() LevelInfo                 { return LevelFor(e.resources[e.cat.experience()]) }

func (e *Engine) IsNodeUnlocked(id string) bool {
	n, ok := e.idx.nodes[id]
	return ok && IsUnlocked(n, e.resources)
}

// VisibleNodes applies the teaser policy to one category, or to every node
// when category is empty.
func (e *Engine) VisibleNodes(category NodeCategory) []Node {
	nodes := make([]Node, 0, len(e.cat.Nodes))
	for _, n := range e.cat.Nodes {
		if category == "" || n.Base().Category == category {
			nodes = append(nodes, n)
		}
	}
	return VisibleNodes(nodes, e.resources, e.discovered)
}

// CycleDuration is the effective duration of one completion of the node.
func (e *Engine) CycleDuration(n Node) time.Duration {
	return e.cycleDuration(n, e.effects.List())
}

func (e *Engine) cycleDuration(n Node, effects []Effect) time.Duration {
	speed := e.stat(SpeedStat(statNamespace(n)), effects)
	if !finite(speed) || speed < MinSpeedMultiplier {
		speed = MinSpeedMultiplier
	}
	d := time.Duration(float64(n.Base().Duration) / speed)
	if d < MinCycleDuration {
		d = MinCycleDuration
	}
	return d
}

// CycleYield is the XP and, for standard nodes, the reward one completion of
// the node grants under the current effects.
func (e *Engine) CycleYield(n Node) (xp, reward float64) {
	return e.cycleYield(n, e.effects.List())
}

func (e *Engine) cycleYield(n Node, effects []Effect) (xp, reward float64) {
	xp = n.Base().XP * e.stat(XPGainMult(), effects)
	if sn, ok := n.(StandardNode); ok {
		ns := statNamespace(n)
		reward = (sn.RewardAmount + e.stat(AmountStat(ns), effects)) * e.stat(MultStat(ns), effects)
	}
	return xp, reward
}

// State is a detached copy of the engine state.
type State struct {
	Resources     map[string]float64 `json:"resources"`
	Discovered    map[string]bool    `json:"discovered"`
	Effects       []Effect           `json:"effects"`
	Owned         map[string]bool    `json:"owned_upgrades"`
	AutoAvailable map[string]bool    `json:"auto_available"`
	AutoEnabled   map[string]bool    `json:"auto_enabled"`
	Session       GatherSession      `json:"gather"`
}

func (e *Engine) Snapshot() State {
	return State{
		Resources:     maps.Clone(e.resources),
		Discovered:    maps.Clone(e.discovered),
		Effects:       e.effects.clone().List(),
		Owned:         maps.Clone(e.owned),
		AutoAvailable: maps.Clone(e.autoAvailable),
		AutoEnabled:   maps.Clone(e.autoEnabled),
		Session:       e.session,
	}
}
