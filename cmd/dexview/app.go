package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/config"
	"github.com/joestump/dexview/internal/db"
	"github.com/joestump/dexview/internal/listing"
	"github.com/joestump/dexview/internal/logging"
	"github.com/joestump/dexview/internal/store"
)

// app is the wiring shared by every command that touches the remote or the
// favorites database.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	level     zap.AtomicLevel
	db        *sqlx.DB
	client    *catalog.Client
	favorites *store.FavoritesStore
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, level, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database, cfg.DB.Driver); err != nil {
		_ = database.Close()
		return nil, err
	}

	client := catalog.New(catalog.Options{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.Timeout,
		Retries: cfg.Remote.Retries,
		Backoff: cfg.Remote.Backoff,
		Logger:  log.Named("remote"),
	})

	favs := store.NewFavoritesStore(store.NewKVStore(database), log.Named("favorites"))
	favs.Load(ctx)

	return &app{cfg: cfg, log: log, level: level, db: database, client: client, favorites: favs}, nil
}

// newCatalog builds an empty catalog from the listing settings.
func (a *app) newCatalog() *listing.Catalog {
	agg := listing.NewAggregator(a.client, a.cfg.Listing.Concurrency, a.log.Named("aggregator"))
	return listing.NewCatalog(a.client, agg, listing.CatalogOptions{
		IndexLimit: a.cfg.Remote.IndexLimit,
		Tolerant:   a.cfg.Listing.Hydration == config.HydrationTolerant,
	}, a.log.Named("catalog"))
}

func (a *app) Close() {
	_ = a.db.Close()
	_ = a.log.Sync()
}
