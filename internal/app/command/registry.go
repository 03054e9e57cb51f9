package command

import (
	"errors"

	"idleodyssey/internal/domain/idle"
)

type commandDef struct {
	validate func(req Request) error
	apply    func(e *idle.Engine, req Request, out *Response) error
}

var registry = map[Type]commandDef{
	TypeSelectNode: {
		validate: require(func(r Request) bool { return r.NodeID != "" }, "node_id is required"),
		apply:    applySelectNode,
	},
	TypeStop: {
		apply: func(e *idle.Engine, _ Request, _ *Response) error {
			e.SetActiveNode("")
			return nil
		},
	},
	TypeSell: {
		validate: func(r Request) error {
			if r.ResourceID == "" {
				return errors.New("resource_id is required")
			}
			if r.Amount != nil && *r.Amount < 0 {
				return errors.New("amount must not be negative")
			}
			return nil
		},
		apply: applySell,
	},
	TypeBuyUpgrade: {
		validate: require(func(r Request) bool { return r.UpgradeID != "" }, "upgrade_id is required"),
		apply:    applyBuyUpgrade,
	},
	TypeCraft: {
		validate: require(func(r Request) bool { return r.RecipeID != "" }, "recipe_id is required"),
		apply:    applyCraft,
	},
	TypeToggleAuto: {
		validate: require(func(r Request) bool { return r.NodeID != "" }, "node_id is required"),
		apply:    applyToggleAuto,
	},
	TypeAddResource: {
		validate: require(func(r Request) bool { return r.ResourceID != "" && r.Amount != nil }, "resource_id and amount are required"),
		apply: func(e *idle.Engine, req Request, _ *Response) error {
			if !e.AddResource(req.ResourceID, *req.Amount) {
				return unknownResource(e, req.ResourceID)
			}
			return nil
		},
	},
	TypeSetResource: {
		validate: func(r Request) error {
			if r.ResourceID == "" || r.Amount == nil {
				return errors.New("resource_id and amount are required")
			}
			if *r.Amount < 0 {
				return errors.New("amount must not be negative")
			}
			return nil
		},
		apply: func(e *idle.Engine, req Request, _ *Response) error {
			if !e.SetResource(req.ResourceID, *req.Amount) {
				return unknownResource(e, req.ResourceID)
			}
			return nil
		},
	},
}

func require(ok func(Request) bool, msg string) func(Request) error {
	return func(r Request) error {
		if !ok(r) {
			return errors.New(msg)
		}
		return nil
	}
}

func applySelectNode(e *idle.Engine, req Request, _ *Response) error {
	if !e.SetActiveNode(req.NodeID) {
		return unknownNode(e, req.NodeID)
	}
	return nil
}

func applySell(e *idle.Engine, req Request, out *Response) error {
	if !e.HasResource(req.ResourceID) {
		return unknownResource(e, req.ResourceID)
	}
	if _, ok := e.SellPrice(req.ResourceID); !ok {
		return reject(CodeNotSellable, "%s cannot be sold", req.ResourceID)
	}
	gold := e.SellResource(req.ResourceID, req.Amount)
	if gold <= 0 {
		return reject(CodeNothingToSell, "not enough %s to sell", req.ResourceID).
			with("owned", e.Resource(req.ResourceID))
	}
	out.GoldGained = gold
	return nil
}

func applyBuyUpgrade(e *idle.Engine, req Request, _ *Response) error {
	u, ok := e.Upgrade(req.UpgradeID)
	if !ok {
		return reject(CodeUnknownUpgrade, "unknown upgrade %q", req.UpgradeID).
			withSuggestion(req.UpgradeID, upgradeIDs(e.Catalog()))
	}
	if e.Owned(u.ID) {
		return reject(CodeAlreadyOwned, "upgrade %q is already owned", u.ID)
	}
	if !e.BuyUpgrade(u.ID) {
		return reject(CodeInsufficientResources, "cannot afford upgrade %q", u.ID).
			with("missing", missing(e, u.Cost))
	}
	return nil
}

func applyCraft(e *idle.Engine, req Request, _ *Response) error {
	r, ok := e.Recipe(req.RecipeID)
	if !ok {
		return reject(CodeUnknownRecipe, "unknown recipe %q", req.RecipeID).
			withSuggestion(req.RecipeID, recipeIDs(e.Catalog()))
	}
	if !e.Craft(r.ID) {
		short := map[string]float64{}
		for _, c := range r.Costs {
			have, need := idle.CostProgress(c, e.Resources())
			if have < need {
				short[costLabel(c)] = need - have
			}
		}
		return reject(CodeInsufficientResources, "cannot afford recipe %q", r.ID).with("missing", short)
	}
	return nil
}

func applyToggleAuto(e *idle.Engine, req Request, _ *Response) error {
	if _, ok := e.Node(req.NodeID); !ok {
		return unknownNode(e, req.NodeID)
	}
	if !e.ToggleAuto(req.NodeID) {
		return reject(CodeAutomationLocked, "automation for %q is not unlocked", req.NodeID)
	}
	return nil
}
