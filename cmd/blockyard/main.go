// ABOUTME: Entry point for the blockyard block definition server.
// ABOUTME: Wires store, loader, API and admin handlers behind cobra commands.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/2389/blockyard/internal/admin"
	"github.com/2389/blockyard/internal/api"
	"github.com/2389/blockyard/internal/auth"
	"github.com/2389/blockyard/internal/blocks"
	"github.com/2389/blockyard/internal/config"
	"github.com/2389/blockyard/internal/logging"
	"github.com/2389/blockyard/internal/seed"
	"github.com/2389/blockyard/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blockyard",
		Short: "Blockyard - user-defined content blocks for a block editor",
		Long: `Blockyard stores block definitions authored in its admin UI and turns every
published one into a registered block type the content editor can insert.

Features:
  • Admin UI for creating and editing block definitions
  • JSON API for block types, categories, allow-list and rendering
  • SQLite persistence; edits apply on the next request
  • Optional AI-generated seed catalog

Quick Start:
  blockyard seed          # Add the example block catalog
  blockyard serve         # Start server on port 9100
  blockyard blocks list   # Show registered block types`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfg.DBPath, "db", "d", cfg.DBPath, "Database path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the blockyard HTTP server on the specified port.

The server provides:
  • Block API at http://localhost:PORT/api
  • Admin UI at http://localhost:PORT/admin
  • Uploaded icon and preview assets at http://localhost:PORT/uploads
  • Health check at http://localhost:PORT/healthz

Authentication:
  Use Bearer tokens in the format: Bearer user:USERNAME
  Example: curl -H "Authorization: Bearer user:me" http://localhost:9100/api/blocks

Environment Variables:
  BLOCKYARD_PORT             Server port (default: 9100)
  BLOCKYARD_NAMESPACE        Block type name prefix (default: acf)
  BLOCKYARD_UPLOAD_URL       Public URL of the upload directory
  BLOCKYARD_UPLOAD_DIR       Local upload directory (default: uploads)
  BLOCKYARD_CATEGORIES_FILE  YAML file with the host category list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg)
		},
	}
	serveCmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")

	var count int
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with example block definitions",
		Long: `Add a catalog of example block definitions to the database.

AI-Powered Generation:
  Set OPENAI_API_KEY to have the catalog generated by OPENAI_MODEL (default: gpt-5-mini).
  Falls back to the built-in catalog if no API key is provided or generation fails.

Note: Seed is not idempotent. Use 'blockyard reset' to clear definitions before reseeding.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cfg, func(s *store.Store) error {
				return seedData(cmd.Context(), cfg, s, count)
			})
		},
	}
	seedCmd.Flags().IntVarP(&count, "count", "n", 0, "Number of definitions (0 = whole catalog)")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database (wipe and reseed)",
		Long: `Delete the database file and create a fresh one with the example catalog.

Warning: This permanently deletes all block definitions and request logs!`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd.Context(), cfg, count)
		},
	}
	resetCmd.Flags().IntVarP(&count, "count", "n", 0, "Number of definitions (0 = whole catalog)")

	rootCmd.AddCommand(serveCmd, seedCmd, resetCmd, newBlocksCmd(cfg))
	return rootCmd
}

// withStore validates the configured database path and opens the store for fn.
func withStore(cfg *config.Config, fn func(*store.Store) error) error {
	path, err := config.ValidateDBPath(cfg.DBPath)
	if err != nil {
		return err
	}
	cfg.DBPath = path

	s, err := store.New(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func runServe(cfg *config.Config) error {
	return withStore(cfg, func(s *store.Store) error {
		addr := ":" + cfg.Port
		log.Printf("blockyard server listening on %s", addr)
		log.Printf("Database: %s", cfg.DBPath)
		log.Printf("Block namespace: %s", cfg.Namespace)
		return http.ListenAndServe(addr, newServer(cfg, s))
	})
}

func newLoader(cfg *config.Config, s *store.Store) *blocks.Loader {
	return blocks.NewLoader(s, blocks.NewIconResolver(cfg.Uploads), cfg.Namespace)
}

func newServer(cfg *config.Config, s *store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(auth.Middleware)
	r.Use(logging.Middleware(s))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	// Favicon
	r.Get("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if cfg.Uploads.BaseDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.BaseDir))))
	}

	loader := newLoader(cfg, s)
	api.NewHandlers(loader, cfg.HostCategories).RegisterRoutes(r)
	admin.NewHandlers(s, loader).RegisterRoutes(r)

	return r
}

func runReset(ctx context.Context, cfg *config.Config, count int) error {
	path, err := config.ValidateDBPath(cfg.DBPath)
	if err != nil {
		return err
	}

	// Remove existing database - ignore if file doesn't exist
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	return withStore(cfg, func(s *store.Store) error {
		return seedData(ctx, cfg, s, count)
	})
}

func seedData(ctx context.Context, cfg *config.Config, s *store.Store, count int) error {
	log.Println("Seeding database with example block definitions...")

	gen := seed.NewGenerator(seed.Options{APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel})
	defs, err := gen.Generate(ctx, count)
	if err != nil {
		return err
	}

	created, err := seed.Seed(ctx, s, defs)
	if err != nil {
		return fmt.Errorf("seed definitions: %w", err)
	}

	log.Printf("Seeding complete! Created %d block definitions", created)
	return nil
}
