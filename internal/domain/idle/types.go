package idle

import (
	"sync"
	"time"
)

type ResourceDef struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Decimals            int    `json:"decimals"`
	DiscoveredByDefault bool   `json:"discovered_by_default"`
}

type ModifierKind string

const (
	ModifierAdd ModifierKind = "add"
	ModifierMul ModifierKind = "mul"
)

type Modifier struct {
	Stat  StatKey      `json:"stat"`
	Kind  ModifierKind `json:"kind"`
	Value float64      `json:"value"`
}

type EffectSource string

const (
	SourceUpgrade    EffectSource = "upgrade"
	SourceEvent      EffectSource = "event"
	SourceDebuff     EffectSource = "debuff"
	SourceConsumable EffectSource = "consumable"
)

// Effect is a stackable modifier bundle. A nil ExpiresAt means permanent and
// MaxStacks 0 means uncapped.
type Effect struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Modifiers []Modifier   `json:"modifiers"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Stacks    int          `json:"stacks"`
	MaxStacks int          `json:"max_stacks,omitempty"`
	Source    EffectSource `json:"source,omitempty"`
}

func (e Effect) clone() Effect {
	e.Modifiers = append([]Modifier(nil), e.Modifiers...)
	if e.ExpiresAt != nil {
		t := *e.ExpiresAt
		e.ExpiresAt = &t
	}
	return e
}

func (e Effect) stackCount() int {
	if e.Stacks < 1 {
		return 1
	}
	return e.Stacks
}

// Requirement gates a node on a ledger threshold. The zero value is always met.
type Requirement struct {
	ResourceID string  `json:"resource_id,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}

func (r Requirement) None() bool {
	return r.ResourceID == ""
}

type NodeCategory string

const (
	CategoryWoodcutting NodeCategory = "woodcutting"
	CategoryMining      NodeCategory = "mining"
	CategoryFishing     NodeCategory = "fishing"
)

type NodeKind string

const (
	NodeStandard NodeKind = "standard"
	NodeFishing  NodeKind = "fishing"
)

// Node is implemented only by StandardNode and FishingNode.
type Node interface {
	Kind() NodeKind
	Base() NodeBase
	isNode()
}

type NodeBase struct {
	ID          string        `json:"id"`
	Category    NodeCategory  `json:"category"`
	Label       string        `json:"label"`
	ActionVerb  string        `json:"action_verb"`
	Requirement Requirement   `json:"requirement"`
	Duration    time.Duration `json:"duration"`
	XP          float64       `json:"xp"`
	// StatNamespace selects the prod.<ns>.* stat keys.
	StatNamespace string `json:"stat_namespace"`
}

type StandardNode struct {
	NodeBase
	ResourceID   string  `json:"resource_id"`
	RewardAmount float64 `json:"reward_amount"`
}

func (StandardNode) Kind() NodeKind   { return NodeStandard }
func (n StandardNode) Base() NodeBase { return n.NodeBase }

func (StandardNode) isNode() {}

type FishEntry struct {
	ResourceID string  `json:"resource_id"`
	Chance     float64 `json:"chance"`
	Label      string  `json:"label,omitempty"`
}

type FishingNode struct {
	NodeBase
	FishTable []FishEntry `json:"fish_table"`
}

func (FishingNode) Kind() NodeKind   { return NodeFishing }
func (n FishingNode) Base() NodeBase { return n.NodeBase }

func (FishingNode) isNode() {}

type UpgradeDef struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Material    string             `json:"material,omitempty"`
	Cost        map[string]float64 `json:"cost"`
	Effects     []Effect           `json:"effects,omitempty"`
	AutoNodeID  string             `json:"auto_node_id,omitempty"`
}

type CostKind string

const (
	CostResource CostKind = "resource"
	CostAnyOf    CostKind = "any_of"
)

// Cost is either a fixed cost (ResourceID) or a fungible cost drawn from
// ResourceIDs in declaration order.
type Cost struct {
	Kind        CostKind `json:"type"`
	ResourceID  string   `json:"resource_id,omitempty"`
	ResourceIDs []string `json:"resource_ids,omitempty"`
	Amount      float64  `json:"amount"`
	Label       string   `json:"label,omitempty"`
}

type RecipeOutput struct {
	ResourceID string  `json:"resource_id"`
	Amount     float64 `json:"amount"`
}

type Recipe struct {
	ID     string       `json:"id"`
	Skill  string       `json:"skill"`
	Label  string       `json:"label"`
	Output RecipeOutput `json:"output"`
	Costs  []Cost       `json:"costs"`
}

type GatherSession struct {
	ActiveNodeID string    `json:"active_node_id,omitempty"`
	LastTickAt   time.Time `json:"last_tick_at"`
	Progress     float64   `json:"progress"`
}

func (s GatherSession) Active() bool {
	return s.ActiveNodeID != ""
}

// Rand is satisfied by *math/rand/v2.Rand.
type Rand interface {
	Float64() float64
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
