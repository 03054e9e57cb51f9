package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"idleodyssey/internal/adapter/catalog/yamlfile"
	"idleodyssey/internal/app/simulate"
	"idleodyssey/internal/domain/idle"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var catalogPath string
	root := &cobra.Command{
		Use:           "simulate",
		Short:         "Offline balance simulator for the idle engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: built-in catalog)")

	root.AddCommand(newRunCmd(&catalogPath), newCatalogCmd(&catalogPath))
	return root
}

func loadCatalog(path string) (idle.Catalog, error) {
	if path == "" {
		return idle.DefaultCatalog(), nil
	}
	return yamlfile.Source{Path: path}.Load(context.Background())
}

func newRunCmd(catalogPath *string) *cobra.Command {
	var (
		cfg   simulate.Config
		start string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Gather on one node for a stretch of simulated time",
		Example: `  simulate run --node tree.oak --for 1h --auto-sell --auto-buy
  simulate run --node fish.pond --for 30m --start oak=30 --seed 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(*catalogPath)
			if err != nil {
				return err
			}
			cfg.Start, err = parseStart(start)
			if err != nil {
				return err
			}
			res, err := simulate.Run(cat, cfg)
			if err != nil {
				return err
			}
			printResult(cat, res)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.NodeID, "node", "tree.oak", "node to gather on")
	f.DurationVar(&cfg.Duration, "for", time.Hour, "simulated duration")
	f.DurationVar(&cfg.Frame, "frame", 250*time.Millisecond, "frame size")
	f.BoolVar(&cfg.AutoBuy, "auto-buy", false, "buy upgrades as soon as they are affordable")
	f.BoolVar(&cfg.AutoSell, "auto-sell", false, "sell surplus resources after every frame")
	f.Uint64Var(&cfg.Seed, "seed", 1, "fishing RNG seed")
	f.StringVar(&start, "start", "", "starting resources, e.g. gold=100,oak=5")
	return cmd
}

func newCatalogCmd(catalogPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and export catalogs",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Validate the catalog and list its nodes",
			RunE: func(*cobra.Command, []string) error {
				cat, err := loadCatalog(*catalogPath)
				if err != nil {
					return err
				}
				printNodes(cat)
				color.New(color.FgGreen, color.Bold).Printf("\n✓ catalog ok: %d resources, %d nodes, %d upgrades, %d recipes\n",
					len(cat.Resources), len(cat.Nodes), len(cat.Upgrades), len(cat.Recipes))
				return nil
			},
		},
		&cobra.Command{
			Use:   "dump <file>",
			Short: "Write the catalog as YAML",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				cat, err := loadCatalog(*catalogPath)
				if err != nil {
					return err
				}
				if err := yamlfile.Write(args[0], cat); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

// parseStart reads "gold=100,oak=5". Unlike the server's env parsing, a bad
// pair is an error here.
func parseStart(raw string) (map[string]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	out := map[string]float64{}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, fmt.Errorf("bad --start pair %q", pair)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("bad --start amount in %q: %w", pair, err)
		}
		out[strings.TrimSpace(kv[0])] = n
	}
	return out, nil
}

func printResult(cat idle.Catalog, res simulate.Result) {
	title := color.New(color.FgCyan, color.Bold)
	title.Printf("\n%s for %s (%d frames)\n\n", res.NodeID, res.Elapsed, res.Frames)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Resource", "Amount", "Per hour"}),
	)
	hours := res.Elapsed.Hours()
	for _, r := range cat.Resources {
		amount := res.Final.Resources[r.ID]
		if !res.Final.Discovered[r.ID] && amount == 0 {
			continue
		}
		perHour := "-"
		if hours > 0 {
			perHour = fmt.Sprintf("%.1f", amount/hours)
		}
		table.Append([]string{r.Name, fmt.Sprintf("%.2f", amount), perHour})
	}
	table.Render()

	if len(res.Purchases) > 0 {
		fmt.Println("\nPurchases:")
		purchases := tablewriter.NewTable(os.Stdout,
			tablewriter.WithHeader([]string{"At", "Upgrade"}),
		)
		for _, p := range res.Purchases {
			purchases.Append([]string{p.At.String(), p.UpgradeID})
		}
		purchases.Render()
	}

	fmt.Printf("\nCompletions: %d\n", res.Completions)
	if res.GoldFromSales > 0 {
		fmt.Printf("Gold from sales: %.0f\n", res.GoldFromSales)
	}
	color.New(color.FgGreen, color.Bold).Printf("Level %d (%.0f%% to next)\n", res.Level.Level, res.Level.Progress*100)
}

func printNodes(cat idle.Catalog) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Node", "Category", "Cycle", "XP", "Yields", "Requires"}),
	)
	for _, n := range cat.Nodes {
		b := n.Base()
		req := "-"
		if !b.Requirement.None() {
			req = fmt.Sprintf("%g %s", b.Requirement.Amount, b.Requirement.ResourceID)
		}
		table.Append([]string{b.ID, string(b.Category), b.Duration.String(), fmt.Sprintf("%g", b.XP), yields(n), req})
	}
	table.Render()
}

func yields(n idle.Node) string {
	switch node := n.(type) {
	case idle.StandardNode:
		return fmt.Sprintf("%g %s", node.RewardAmount, node.ResourceID)
	case idle.FishingNode:
		ids := make([]string, 0, len(node.FishTable))
		for _, f := range node.FishTable {
			ids = append(ids, f.ResourceID)
		}
		sort.Strings(ids)
		return strings.Join(ids, "|")
	default:
		return "?"
	}
}
