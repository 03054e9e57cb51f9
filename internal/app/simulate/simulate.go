// Package simulate runs the engine offline on a manual clock, for balance work
// and regression checks of catalog tuning.
package simulate

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"idleodyssey/internal/domain/idle"
)

var ErrInvalidConfig = errors.New("invalid simulation config")

type Config struct {
	NodeID   string
	Duration time.Duration
	Frame    time.Duration
	// AutoBuy purchases every affordable upgrade, in catalog order, after
	// each frame.
	AutoBuy bool
	// AutoSell converts everything sellable to gold after each frame, except
	// what a pending upgrade or the node requirement still needs.
	AutoSell bool
	Seed     uint64
	Start    map[string]float64
	Logger   *slog.Logger
}

type Purchase struct {
	At        time.Duration `json:"at"`
	UpgradeID string        `json:"upgrade_id"`
}

type Result struct {
	NodeID        string         `json:"node_id"`
	Elapsed       time.Duration  `json:"elapsed"`
	Frames        int            `json:"frames"`
	Completions   int64          `json:"completions"`
	GoldFromSales float64        `json:"gold_from_sales"`
	Purchases     []Purchase     `json:"purchases"`
	Level         idle.LevelInfo `json:"level"`
	Final         idle.State     `json:"final"`
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func Run(cat idle.Catalog, cfg Config) (Result, error) {
	if cfg.Duration <= 0 {
		return Result{}, fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	}
	if cfg.Frame <= 0 {
		return Result{}, fmt.Errorf("%w: frame must be positive", ErrInvalidConfig)
	}

	clock := idle.NewManualClock(epoch)
	opts := []idle.Option{
		idle.WithClock(clock),
		idle.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))),
	}
	if cfg.Logger != nil {
		opts = append(opts, idle.WithLogger(cfg.Logger))
	}
	e, err := idle.New(cat, opts...)
	if err != nil {
		return Result{}, err
	}
	for id, amount := range cfg.Start {
		if !e.SetResource(id, amount) {
			return Result{}, fmt.Errorf("%w: unknown start resource %q%s", ErrInvalidConfig, id, suggestion(id, resourceIDs(cat)))
		}
	}
	if !e.SetActiveNode(cfg.NodeID) {
		return Result{}, fmt.Errorf("%w: unknown node %q%s", ErrInvalidConfig, cfg.NodeID, suggestion(cfg.NodeID, nodeIDs(cat)))
	}

	res := Result{NodeID: cfg.NodeID}
	for res.Elapsed < cfg.Duration {
		step := cfg.Frame
		if remaining := cfg.Duration - res.Elapsed; step > remaining {
			step = remaining
		}
		clock.Advance(step)
		res.Elapsed += step
		res.Frames++

		report := e.Tick(step.Seconds())
		res.Completions += report.Completions

		if cfg.AutoSell {
			res.GoldFromSales += sellSurplus(e, cfg.NodeID)
		}
		if cfg.AutoBuy {
			for _, u := range cat.Upgrades {
				if e.BuyUpgrade(u.ID) {
					res.Purchases = append(res.Purchases, Purchase{At: res.Elapsed, UpgradeID: u.ID})
				}
			}
		}
	}

	res.Level = e.Level()
	res.Final = e.Snapshot()
	return res, nil
}

// sellSurplus keeps enough of each resource to cover unowned upgrade costs and
// the active node's unlock requirement.
func sellSurplus(e *idle.Engine, nodeID string) float64 {
	reserve := map[string]float64{}
	for _, u := range e.Catalog().Upgrades {
		if e.Owned(u.ID) {
			continue
		}
		for id, amount := range u.Cost {
			reserve[id] = max(reserve[id], amount)
		}
	}
	if n, ok := e.Node(nodeID); ok {
		if req := n.Base().Requirement; !req.None() {
			reserve[req.ResourceID] = max(reserve[req.ResourceID], req.Amount)
		}
	}

	var gold float64
	for id, have := range e.Resources() {
		if _, ok := e.SellPrice(id); !ok {
			continue
		}
		surplus := have - reserve[id]
		if surplus < 1 {
			continue
		}
		gold += e.SellResource(id, &surplus)
	}
	return gold
}

func suggestion(input string, candidates []string) string {
	if s := idle.Suggest(input, candidates); s != "" {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}

func nodeIDs(cat idle.Catalog) []string {
	out := make([]string, 0, len(cat.Nodes))
	for _, n := range cat.Nodes {
		out = append(out, n.Base().ID)
	}
	return out
}

func resourceIDs(cat idle.Catalog) []string {
	out := make([]string, 0, len(cat.Resources))
	for _, r := range cat.Resources {
		out = append(out, r.ID)
	}
	return out
}
