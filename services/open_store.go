package services

import (
	"context"
	"fmt"

	"github.com/panyam/ramtool/config"
)

// OpenStore builds the backend selected in cfg.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ScenarioStore, error) {
	switch cfg.Kind {
	case config.StoreFile, "":
		return NewFileStore(cfg.DataDir)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN)
	case config.StoreDatastore:
		return NewDatastoreStore(ctx, cfg.DatastoreProject)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Kind)
	}
}
