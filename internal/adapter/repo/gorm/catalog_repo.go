package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"idleodyssey/internal/adapter/repo/gorm/model"
	"idleodyssey/internal/app/ports"
	"idleodyssey/internal/domain/idle"

	"gorm.io/gorm"
)

const catalogMetaID = 1

var (
	_ ports.CatalogRepository = CatalogRepo{}
	_ ports.TxManager         = TxManager{}
)

// CatalogRepo stores one catalog across the catalog_* tables. Save replaces
// the whole catalog inside a transaction.
type CatalogRepo struct {
	db *gorm.DB
	tx TxManager
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return CatalogRepo{db: db, tx: NewTxManager(db)}
}

func (r CatalogRepo) Load(ctx context.Context) (idle.Catalog, error) {
	var cat idle.Catalog
	err := r.tx.RunInReadTx(ctx, func(ctx context.Context) error {
		var err error
		cat, err = r.load(ctx)
		return err
	})
	return cat, err
}

func (r CatalogRepo) load(ctx context.Context) (idle.Catalog, error) {
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)

	var meta model.CatalogMetum
	if err := db.Where(&model.CatalogMetum{ID: catalogMetaID}).First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return idle.Catalog{}, ports.ErrNotFound
		}
		return idle.Catalog{}, err
	}
	cat := idle.Catalog{CurrencyID: meta.CurrencyID, ExperienceID: meta.ExperienceID}

	var resources []model.CatalogResource
	if err := db.Order("position").Find(&resources).Error; err != nil {
		return idle.Catalog{}, err
	}
	for _, m := range resources {
		cat.Resources = append(cat.Resources, idle.ResourceDef{
			ID:                  m.ResourceID,
			Name:                m.Name,
			Decimals:            int(m.Decimals),
			DiscoveredByDefault: m.DiscoveredByDefault,
		})
	}

	var fish []model.CatalogFishEntry
	if err := db.Order("node_id, position").Find(&fish).Error; err != nil {
		return idle.Catalog{}, err
	}
	fishByNode := map[string][]idle.FishEntry{}
	for _, m := range fish {
		fishByNode[m.NodeID] = append(fishByNode[m.NodeID], idle.FishEntry{ResourceID: m.ResourceID, Chance: m.Chance, Label: m.Label})
	}

	var nodes []model.CatalogNode
	if err := db.Order("position").Find(&nodes).Error; err != nil {
		return idle.Catalog{}, err
	}
	for _, m := range nodes {
		n, err := toDomainNode(m, fishByNode[m.NodeID])
		if err != nil {
			return idle.Catalog{}, err
		}
		cat.Nodes = append(cat.Nodes, n)
	}

	var upgrades []model.CatalogUpgrade
	if err := db.Order("position").Find(&upgrades).Error; err != nil {
		return idle.Catalog{}, err
	}
	for _, m := range upgrades {
		u := idle.UpgradeDef{
			ID:          m.UpgradeID,
			Name:        m.Name,
			Description: m.Description,
			Category:    m.Category,
			Material:    m.Material,
			AutoNodeID:  m.AutoNodeID,
		}
		if err := decodeJSONColumn(m.Cost, &u.Cost); err != nil {
			return idle.Catalog{}, fmt.Errorf("upgrade %s cost: %w", m.UpgradeID, err)
		}
		if err := decodeJSONColumn(m.Effects, &u.Effects); err != nil {
			return idle.Catalog{}, fmt.Errorf("upgrade %s effects: %w", m.UpgradeID, err)
		}
		if len(u.Effects) == 0 {
			u.Effects = nil
		}
		cat.Upgrades = append(cat.Upgrades, u)
	}

	var recipes []model.CatalogRecipe
	if err := db.Order("position").Find(&recipes).Error; err != nil {
		return idle.Catalog{}, err
	}
	for _, m := range recipes {
		rec := idle.Recipe{
			ID:     m.RecipeID,
			Skill:  m.Skill,
			Label:  m.Label,
			Output: idle.RecipeOutput{ResourceID: m.OutputResourceID, Amount: m.OutputAmount},
		}
		if err := decodeJSONColumn(m.Costs, &rec.Costs); err != nil {
			return idle.Catalog{}, fmt.Errorf("recipe %s costs: %w", m.RecipeID, err)
		}
		cat.Recipes = append(cat.Recipes, rec)
	}

	var prices []model.CatalogSellPrice
	if err := db.Find(&prices).Error; err != nil {
		return idle.Catalog{}, err
	}
	if len(prices) > 0 {
		cat.SellPrices = make(map[string]float64, len(prices))
		for _, m := range prices {
			cat.SellPrices[m.ResourceID] = m.Price
		}
	}

	var stats []model.CatalogBaseStat
	if err := db.Find(&stats).Error; err != nil {
		return idle.Catalog{}, err
	}
	if len(stats) > 0 {
		cat.BaseStats = make(map[idle.StatKey]float64, len(stats))
		for _, m := range stats {
			k, err := idle.ParseStatKey(m.StatKey)
			if err != nil {
				return idle.Catalog{}, fmt.Errorf("base stat row: %w", err)
			}
			cat.BaseStats[k] = m.Value
		}
	}

	if err := cat.Validate(); err != nil {
		return idle.Catalog{}, err
	}
	return cat, nil
}

func (r CatalogRepo) Save(ctx context.Context, cat idle.Catalog) error {
	if err := cat.Validate(); err != nil {
		return err
	}
	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		db := getDBFromCtx(ctx, r.db).WithContext(ctx)
		// children first so the fish entry foreign key never dangles
		for _, table := range []string{
			model.TableNameCatalogFishEntry,
			model.TableNameCatalogNode,
			model.TableNameCatalogResource,
			model.TableNameCatalogUpgrade,
			model.TableNameCatalogRecipe,
			model.TableNameCatalogSellPrice,
			model.TableNameCatalogBaseStat,
			model.TableNameCatalogMetum,
		} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		meta := model.CatalogMetum{
			ID:           catalogMetaID,
			CurrencyID:   orDefault(cat.CurrencyID, idle.DefaultCurrencyID),
			ExperienceID: orDefault(cat.ExperienceID, idle.DefaultExperienceID),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := db.Create(&meta).Error; err != nil {
			return err
		}

		for i, res := range cat.Resources {
			m := model.CatalogResource{
				ResourceID:          res.ID,
				Position:            int32(i),
				Name:                res.Name,
				Decimals:            int32(res.Decimals),
				DiscoveredByDefault: res.DiscoveredByDefault,
			}
			if err := db.Create(&m).Error; err != nil {
				return err
			}
		}

		for i, n := range cat.Nodes {
			m, fish := fromDomainNode(n, i)
			if err := db.Create(&m).Error; err != nil {
				return err
			}
			for j := range fish {
				if err := db.Create(&fish[j]).Error; err != nil {
					return err
				}
			}
		}

		for i, u := range cat.Upgrades {
			cost, err := json.Marshal(u.Cost)
			if err != nil {
				return err
			}
			effects, err := json.Marshal(u.Effects)
			if err != nil {
				return err
			}
			m := model.CatalogUpgrade{
				UpgradeID:   u.ID,
				Position:    int32(i),
				Name:        u.Name,
				Description: u.Description,
				Category:    u.Category,
				Material:    u.Material,
				AutoNodeID:  u.AutoNodeID,
				Cost:        string(cost),
				Effects:     string(effects),
			}
			if err := db.Create(&m).Error; err != nil {
				return err
			}
		}

		for i, rec := range cat.Recipes {
			costs, err := json.Marshal(rec.Costs)
			if err != nil {
				return err
			}
			m := model.CatalogRecipe{
				RecipeID:         rec.ID,
				Position:         int32(i),
				Skill:            rec.Skill,
				Label:            rec.Label,
				OutputResourceID: rec.Output.ResourceID,
				OutputAmount:     rec.Output.Amount,
				Costs:            string(costs),
			}
			if err := db.Create(&m).Error; err != nil {
				return err
			}
		}

		for id, price := range cat.SellPrices {
			if err := db.Create(&model.CatalogSellPrice{ResourceID: id, Price: price}).Error; err != nil {
				return err
			}
		}
		for k, v := range cat.BaseStats {
			if err := db.Create(&model.CatalogBaseStat{StatKey: k.String(), Value: v}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func toDomainNode(m model.CatalogNode, fish []idle.FishEntry) (idle.Node, error) {
	base := idle.NodeBase{
		ID:            m.NodeID,
		Category:      idle.NodeCategory(m.Category),
		Label:         m.Label,
		ActionVerb:    m.ActionVerb,
		Requirement:   idle.Requirement{ResourceID: m.RequirementResourceID, Amount: m.RequirementAmount},
		Duration:      time.Duration(m.DurationMs) * time.Millisecond,
		XP:            m.Xp,
		StatNamespace: m.StatNamespace,
	}
	switch idle.NodeKind(m.Kind) {
	case idle.NodeStandard:
		return idle.StandardNode{NodeBase: base, ResourceID: m.ResourceID, RewardAmount: m.RewardAmount}, nil
	case idle.NodeFishing:
		return idle.FishingNode{NodeBase: base, FishTable: fish}, nil
	default:
		return nil, fmt.Errorf("%w: node %q has unknown kind %q", idle.ErrInvalidCatalog, m.NodeID, m.Kind)
	}
}

func fromDomainNode(n idle.Node, position int) (model.CatalogNode, []model.CatalogFishEntry) {
	b := n.Base()
	m := model.CatalogNode{
		NodeID:                b.ID,
		Position:              int32(position),
		Kind:                  string(n.Kind()),
		Category:              string(b.Category),
		Label:                 b.Label,
		ActionVerb:            b.ActionVerb,
		RequirementResourceID: b.Requirement.ResourceID,
		RequirementAmount:     b.Requirement.Amount,
		DurationMs:            b.Duration.Milliseconds(),
		Xp:                    b.XP,
		StatNamespace:         b.StatNamespace,
	}
	var fish []model.CatalogFishEntry
	switch node := n.(type) {
	case idle.StandardNode:
		m.ResourceID = node.ResourceID
		m.RewardAmount = node.RewardAmount
	case idle.FishingNode:
		for j, f := range node.FishTable {
			fish = append(fish, model.CatalogFishEntry{
				NodeID:     b.ID,
				Position:   int32(j),
				ResourceID: f.ResourceID,
				Chance:     f.Chance,
				Label:      f.Label,
			})
		}
	}
	return m, fish
}

func decodeJSONColumn(raw string, out any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func orDefault(id, fallback string) string {
	if id == "" {
		return fallback
	}
	return id
}
