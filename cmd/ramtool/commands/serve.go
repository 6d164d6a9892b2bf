package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/panyam/ramtool/config"
	"github.com/panyam/ramtool/logging"
	"github.com/panyam/ramtool/services"
	"github.com/panyam/ramtool/web/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveStore     string
	serveEphemeral bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ramtool HTTP API",
	Long: `Start the HTTP API that solves scenarios, stores them and streams live
results over a websocket.

Example:
  # Terminal 1: Start server
  ramtool serve --addr :9090

  # Terminal 2: Solve against it
  ramtool solve rbd -f plant.json --server http://localhost:9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveStore != "" {
			cfg.Store.Kind = serveStore
		}
		if serveEphemeral {
			cfg.Store.Kind = config.StoreMemory
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := services.OpenStore(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.Store.Kind, err)
		}
		defer store.Close()

		cache, err := services.NewResultCache(cfg.CacheSize)
		if err != nil {
			return err
		}
		svc := services.NewRamService(store, cache)
		srv := server.NewServer(cfg.Addr, svc)

		logging.Start("ramtool server %s listening on %s", Version, cfg.Addr)
		logging.Info("📦 Store:     %s", cfg.Store.Kind)
		logging.Info("🛠️  REST API:  http://localhost%s/api", cfg.Addr)
		logging.Info("📡 WebSocket: ws://localhost%s/api/live", cfg.Addr)

		if err := srv.Start(ctx); err != nil {
			logging.Failure("Server failed: %v", err)
			return err
		}
		logging.Stop("Server stopped gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: RAMTOOL_ADDR env var or :8080)")
	serveCmd.Flags().StringVar(&serveStore, "store", "", "Scenario store: file, memory, postgres or datastore (default: RAMTOOL_STORE)")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "Keep scenarios in memory only")
	AddCommand(serveCmd)
}
