// Command seeder writes the product catalog into the SQLite database the
// gateway and the agent read with the sqlite catalog driver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

func main() {
	dbPath := flag.String("db", "inventory.db", "SQLite database to write")
	catalogPath := flag.String("catalog", "", "YAML catalog file; the built-in seed products are used when empty")
	logLevel := flag.String("log-level", logging.LevelInfo, "log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Infof("🚀 Starting seeder | Database: %s", *dbPath)
	n, err := seed(context.Background(), *dbPath, *catalogPath)
	if err != nil {
		logger.Fatalf("❌ Seeding failed: %v", err)
	}
	logger.Infof("✅ Wrote %d products to %s.", n, *dbPath)
}

// seed upserts the products from catalogPath, or the seed products, into the
// database at dbPath and returns how many were written.
func seed(ctx context.Context, dbPath, catalogPath string) (int, error) {
	products := catalog.SeedProducts()
	if catalogPath != "" {
		loaded, err := catalog.LoadFile(catalogPath)
		if err != nil {
			return 0, err
		}
		products = loaded
	}

	store, err := catalog.OpenSQLite(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.Upsert(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
