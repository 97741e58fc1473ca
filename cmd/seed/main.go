// Command seed inserts the default racquet brand catalog. Brands whose slug
// already exists are left untouched, so it is safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	brandapp "github.com/raqueto/backend/internal/application/brand"
	"github.com/raqueto/backend/internal/infrastructure/config"
	"github.com/raqueto/backend/internal/infrastructure/logger"
	"github.com/raqueto/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	brands := brandapp.NewBrandService(persistence.NewGormBrandRepository(db.DB), nil, log)
	created, err := brands.Seed(ctx, brandapp.DefaultCatalog())
	if err != nil {
		log.Fatal("Brand seed failed", zap.Int("created", created), zap.Error(err))
	}
	log.Info("Brand seed finished",
		zap.Int("created", created),
		zap.Int("skipped", len(brandapp.DefaultCatalog())-created),
	)
}
