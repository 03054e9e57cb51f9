package command

import "idleodyssey/internal/domain/idle"

type Type string

const (
	TypeSelectNode  Type = "select_node"
	TypeStop        Type = "stop"
	TypeSell        Type = "sell"
	TypeBuyUpgrade  Type = "buy_upgrade"
	TypeCraft       Type = "craft"
	TypeToggleAuto  Type = "toggle_auto"
	TypeAddResource Type = "add_resource"
	TypeSetResource Type = "set_resource"
)

const ResultOK = "OK"

type Request struct {
	Type       Type     `json:"type"`
	NodeID     string   `json:"node_id,omitempty"`
	ResourceID string   `json:"resource_id,omitempty"`
	UpgradeID  string   `json:"upgrade_id,omitempty"`
	RecipeID   string   `json:"recipe_id,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
}

type Response struct {
	ResultCode string             `json:"result_code"`
	Command    Type               `json:"command"`
	GoldGained float64            `json:"gold_gained,omitempty"`
	Resources  map[string]float64 `json:"resources"`
	Gather     idle.GatherSession `json:"gather"`
	Level      idle.LevelInfo     `json:"level"`
}
