package observe

import "idleodyssey/internal/domain/idle"

type Request struct {
	// Category limits the node listing; empty lists every category.
	Category idle.NodeCategory
}

type Response struct {
	Resources  []ObservedResource         `json:"resources"`
	Level      idle.LevelInfo             `json:"level"`
	Gather     ObservedGather             `json:"gather"`
	Nodes      map[string][]ObservedNode  `json:"nodes"`
	Upgrades   []ObservedUpgrade          `json:"upgrades"`
	Recipes    []ObservedRecipe           `json:"recipes"`
	SellPrices map[string]float64         `json:"sell_prices"`
	Effects    []idle.Effect              `json:"effects"`
	Automation map[string]AutomationState `json:"automation"`
}

type ObservedResource struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type ObservedGather struct {
	ActiveNodeID string  `json:"active_node_id,omitempty"`
	Progress     float64 `json:"progress"`
	CycleMS      int64   `json:"cycle_ms,omitempty"`
}

type ObservedNode struct {
	ID             string             `json:"id"`
	Label          string             `json:"label"`
	ActionVerb     string             `json:"action_verb"`
	Kind           idle.NodeKind      `json:"kind"`
	Unlocked       bool               `json:"unlocked"`
	UnlockProgress float64            `json:"unlock_progress"`
	Requirement    idle.Requirement   `json:"requirement"`
	CycleMS        int64              `json:"cycle_ms"`
	XPPerCycle     float64            `json:"xp_per_cycle"`
	ResourceID     string             `json:"resource_id,omitempty"`
	RewardPerCycle float64            `json:"reward_per_cycle,omitempty"`
	FishChances    []ObservedFishRoll `json:"fish_chances,omitempty"`
	Active         bool               `json:"active"`
}

type ObservedFishRoll struct {
	ResourceID string  `json:"resource_id"`
	Percent    float64 `json:"percent"`
}

type ObservedUpgrade struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Cost        map[string]float64 `json:"cost"`
	Owned       bool               `json:"owned"`
	Affordable  bool               `json:"affordable"`
	AutoNodeID  string             `json:"auto_node_id,omitempty"`
}

type ObservedRecipe struct {
	ID        string            `json:"id"`
	Label     string            `json:"label"`
	Skill     string            `json:"skill"`
	Output    idle.RecipeOutput `json:"output"`
	Craftable bool              `json:"craftable"`
	Costs     []ObservedCost    `json:"costs"`
}

type ObservedCost struct {
	Label string  `json:"label"`
	Have  float64 `json:"have"`
	Need  float64 `json:"need"`
}

type AutomationState struct {
	Available bool `json:"available"`
	Enabled   bool `json:"enabled"`
}

type StatRequest struct {
	Key string
}

type StatResponse struct {
	Key   string  `json:"key"`
	Base  float64 `json:"base"`
	Value float64 `json:"value"`
}
