package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/config"
	"github.com/watchlist-screener/internal/matcher"
	"github.com/watchlist-screener/internal/metrics"
	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/registry"
	"github.com/watchlist-screener/internal/schema"
	"github.com/watchlist-screener/internal/scoring"
	"github.com/watchlist-screener/internal/source"
	"github.com/watchlist-screener/internal/web"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "screener",
		Short: "Watchlist screening match engine",
		Long:  `Screens query entities against an indexed sanctions/watchlist registry, returning ranked candidates with calibrated match confidence.`,
	}

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// createServeCmd runs the HTTP screening service backed by Postgres.
func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the screening HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			schemas := schema.Builtin()
			pg, err := source.OpenPostgres(cfg.DatabaseURL, schemas, log)
			if err != nil {
				return err
			}
			defer pg.Close()

			var src source.CandidateSource = pg
			if cfg.RedisAddr != "" {
				rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
				src = source.NewCached(src, rdb, cfg.CacheTTL, log)
				log.Info("candidate cache enabled", zap.String("redis", cfg.RedisAddr))
			}

			m := buildMatcher(schemas, cfg.Scoring)
			screener := matcher.NewScreener(src, m, cfg.MatchLimit, log, metrics.New())
			return web.NewServer(cfg, schemas, screener, log).Run()
		},
	}
}

// createMatchCmd scores a query entity against a candidate file, for
// offline tuning and spot checks.
func createMatchCmd() *cobra.Command {
	var queryPath, candidatesPath string
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a query entity against a candidate file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := zap.NewNop()
			schemas := schema.Builtin()

			query, err := readEntity(schemas, queryPath)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}
			candidates, err := readEntities(schemas, candidatesPath)
			if err != nil {
				return fmt.Errorf("candidates: %w", err)
			}

			m := buildMatcher(schemas, cfg.Scoring)
			screener := matcher.NewScreener(&source.Static{Entities: candidates}, m, len(candidates), log, nil)
			results, err := screener.Screen(context.Background(), query, cfg.Scoring)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	cmd.Flags().StringVar(&queryPath, "query", "", "JSON file with the query entity")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "JSON file with an array of candidate entities")
	cmd.MarkFlagRequired("query")
	cmd.MarkFlagRequired("candidates")
	return cmd
}

// createPingCmd tests registry database connectivity.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test registry database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := zap.NewNop()
			pg, err := source.OpenPostgres(cfg.DatabaseURL, schema.Builtin(), log)
			if err != nil {
				return err
			}
			defer pg.Close()
			fmt.Println("Database connection successful!")
			return nil
		},
	}
}

func buildMatcher(schemas *schema.Registry, sc scoring.Config) *matcher.Matcher {
	return matcher.New(registry.New(schemas, registry.Options{YearDecay: sc.YearDecay}))
}

type entityFile struct {
	ID         string              `json:"id"`
	Schema     string              `json:"schema"`
	Properties map[string][]string `json:"properties"`
}

func readEntity(schemas *schema.Registry, path string) (*model.Entity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var e entityFile
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return model.NewEntity(schemas, e.ID, e.Schema, e.Properties)
}

func readEntities(schemas *schema.Registry, path string) ([]*model.Entity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []entityFile
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	out := make([]*model.Entity, 0, len(list))
	for _, e := range list {
		entity, err := model.NewEntity(schemas, e.ID, e.Schema, e.Properties)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
