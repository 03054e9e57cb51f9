package idle

// DefaultCatalog is the built-in content: three skills, a smithing recipe and
// the general store.
func DefaultCatalog() Catalog {
	return Catalog{
		Resources:    defaultResources(),
		Nodes:        defaultNodes(),
		Upgrades:     defaultUpgrades(),
		Recipes:      defaultRecipes(),
		SellPrices:   defaultSellPrices(),
		CurrencyID:   DefaultCurrencyID,
		ExperienceID: DefaultExperienceID,
	}
}

func defaultResources() []ResourceDef {
	return []ResourceDef{
		{ID: "gold", Name: "Gold", DiscoveredByDefault: true},
		{ID: "xp", Name: "Experience", DiscoveredByDefault: true},
		{ID: "oak", Name: "Oak Log", DiscoveredByDefault: true},
		{ID: "birch", Name: "Birch Log"},
		{ID: "spruce", Name: "Spruce Log"},
		{ID: "maple", Name: "Maple Log"},
		{ID: "pebbles", Name: "Pebbles"},
		{ID: "stone", Name: "Stone"},
		{ID: "copper", Name: "Copper Ore"},
		{ID: "tin", Name: "Tin Ore"},
		{ID: "iron", Name: "Iron Ore"},
		{ID: "worm", Name: "Worm"},
		{ID: "minifish", Name: "Minifish"},
		{ID: "smallfish", Name: "Small Fish"},
		{ID: "goldfish", Name: "Goldfish"},
		{ID: "bronze_bar", Name: "Bronze Bar"},
	}
}

func defaultNodes() []Node {
	tree := func(id, resource string, xp float64, req Requirement, label string) Node {
		return StandardNode{
			NodeBase: NodeBase{
				ID:          id,
				Category:    CategoryWoodcutting,
				Label:       label,
				ActionVerb:  "Cut",
				Requirement: req,
				Duration:    NodeDuration(3),
				XP:          xp,
			},
			ResourceID:   resource,
			RewardAmount: 1,
		}
	}
	vein := func(id, resource string, xp, seconds float64, req Requirement, label string) Node {
		return StandardNode{
			NodeBase: NodeBase{
				ID:          id,
				Category:    CategoryMining,
				Label:       label,
				ActionVerb:  "Mine",
				Requirement: req,
				Duration:    NodeDuration(seconds),
				XP:          xp,
			},
			ResourceID:   resource,
			RewardAmount: 1,
		}
	}

	return []Node{
		tree("tree.oak", "oak", 5, Requirement{}, "Oak Tree"),
		tree("tree.birch", "birch", 10, Requirement{ResourceID: "oak", Amount: 50}, "Birch Tree"),
		tree("tree.spruce", "spruce", 50, Requirement{ResourceID: "birch", Amount: 100}, "Spruce Tree"),
		tree("tree.maple", "maple", 80, Requirement{ResourceID: "spruce", Amount: 150}, "Maple Tree"),

		vein("mine.pebbles", "pebbles", 3, 2, Requirement{ResourceID: "oak", Amount: 15}, "Happy Stone"),
		vein("mine.stone", "stone", 8, 3, Requirement{ResourceID: "pebbles", Amount: 35}, "Stone Vein"),
		vein("mine.copper", "copper", 8, 3, Requirement{ResourceID: "stone", Amount: 90}, "Copper Vein"),
		vein("mine.tin", "tin", 8, 3, Requirement{ResourceID: "copper", Amount: 50}, "Tin Vein"),
		vein("mine.iron", "iron", 8, 3, Requirement{ResourceID: "copper", Amount: 150}, "Iron Vein"),

		FishingNode{
			NodeBase: NodeBase{
				ID:          "fish.pond",
				Category:    CategoryFishing,
				Label:       "Quiet Pond",
				ActionVerb:  "Fish",
				Requirement: Requirement{ResourceID: "oak", Amount: 30},
				Duration:    NodeDuration(4),
				XP:          6,
			},
			FishTable: []FishEntry{
				{ResourceID: "worm", Chance: 50},
				{ResourceID: "minifish", Chance: 30},
				{ResourceID: "smallfish", Chance: 15},
				{ResourceID: "goldfish", Chance: 5},
			},
		},
	}
}

func defaultUpgrades() []UpgradeDef {
	out := make([]UpgradeDef, 0, 11)
	for _, wood := range []string{"oak", "birch", "spruce", "maple"} {
		out = append(out,
			UpgradeDef{
				ID:          "wood." + wood + ".amount.plus1",
				Name:        "Sharper Axe",
				Description: "+1 Wood per cut",
				Category:    "woodcutting",
				Material:    wood,
				Cost:        map[string]float64{"gold": 25},
				Effects: []Effect{{
					ID:        "eff.wood." + wood + ".amount.plus1",
					Name:      "Wood Amount +1",
					Source:    SourceUpgrade,
					Modifiers: []Modifier{{Stat: AmountStat(wood), Kind: ModifierAdd, Value: 1}},
				}},
			},
			UpgradeDef{
				ID:          "wood." + wood + ".speed.x2",
				Name:        "Fast Hands",
				Description: "Cutting speed x2",
				Category:    "woodcutting",
				Material:    wood,
				Cost:        map[string]float64{"gold": 75, wood: 25},
				Effects: []Effect{{
					ID:        "eff.wood." + wood + ".speed.x2",
					Name:      "Wood Speed x2",
					Source:    SourceUpgrade,
					Modifiers: []Modifier{{Stat: SpeedStat(wood), Kind: ModifierMul, Value: 2}},
				}},
			},
		)
	}
	out = append(out,
		UpgradeDef{
			ID:          "auto.tree.oak",
			Name:        "Apprentice Woodcutter",
			Description: "Unlocks auto for Oak Tree",
			Category:    "woodcutting",
			Material:    "oak",
			Cost:        map[string]float64{"gold": 150, "oak": 100},
			AutoNodeID:  "tree.oak",
		},
		UpgradeDef{
			ID:          "fishing.speed.x1_5",
			Name:        "Better Bait",
			Description: "Fishing speed x1.5",
			Category:    "fishing",
			Cost:        map[string]float64{"gold": 60, "worm": 20},
			Effects: []Effect{{
				ID:        "eff.fishing.speed.x1_5",
				Name:      "Fishing Speed x1.5",
				Source:    SourceUpgrade,
				Modifiers: []Modifier{{Stat: SpeedStat(FishingStatNamespace), Kind: ModifierMul, Value: 1.5}},
			}},
		},
		UpgradeDef{
			ID:          "xp.mult.x1_5",
			Name:        "Training Manual",
			Description: "XP gain x1.5",
			Category:    "general",
			Cost:        map[string]float64{"gold": 100},
			Effects: []Effect{{
				ID:        "eff.xp.mult.x1_5",
				Name:      "XP Mult x1.5",
				Source:    SourceUpgrade,
				Modifiers: []Modifier{{Stat: XPGainMult(), Kind: ModifierMul, Value: 1.5}},
			}},
		},
	)
	return out
}

func defaultRecipes() []Recipe {
	return []Recipe{{
		ID:     "smithing.bronze_bar",
		Skill:  "smithing",
		Label:  "Bronze Bar",
		Output: RecipeOutput{ResourceID: "bronze_bar", Amount: 1},
		Costs: []Cost{
			{Kind: CostAnyOf, Label: "Wood (any kind)", ResourceIDs: []string{"oak", "birch", "spruce", "maple"}, Amount: 1},
			{Kind: CostResource, ResourceID: "copper", Amount: 1},
			{Kind: CostResource, ResourceID: "tin", Amount: 1},
		},
	}}
}

func defaultSellPrices() map[string]float64 {
	return map[string]float64{
		"oak":        1,
		"birch":      2,
		"spruce":     3,
		"maple":      4,
		"pebbles":    1,
		"stone":      1,
		"copper":     4,
		"tin":        4,
		"iron":       5,
		"worm":       1,
		"minifish":   2,
		"smallfish":  3,
		"goldfish":   10,
		"bronze_bar": 15,
	}
}
