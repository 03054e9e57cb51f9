package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var catalogTables = []string{
	"catalog_meta",
	"catalog_resources",
	"catalog_nodes",
	"catalog_fish_entries",
	"catalog_upgrades",
	"catalog_recipes",
	"catalog_sell_prices",
	"catalog_base_stats",
}

func main() {
	var dsn, out, tables string
	flag.StringVar(&dsn, "dsn", os.Getenv("IDLE_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&tables, "tables", strings.Join(catalogTables, ","), "comma separated tables to generate")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or IDLE_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	// models only; the repo writes its own queries
	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	n := 0
	for _, table := range strings.Split(tables, ",") {
		if table = strings.TrimSpace(table); table == "" {
			continue
		}
		g.GenerateModel(table)
		n++
	}
	g.Execute()

	fmt.Printf("generated %d gorm models at %s\n", n, out)
}
