package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"pitchboard/pkg/cms"
	"pitchboard/pkg/config"
	"pitchboard/pkg/db"
	"pitchboard/pkg/startups"
)

// openDatabase connects when a database is configured; it returns a nil pool otherwise.
func (c *cli) openDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	if c.cfg.Database.URL == "" {
		return nil, nil
	}
	return db.Connect(ctx, c.cfg.Database)
}

// startupRepository builds the configured content backend. pool is only used by the postgres backend.
func (c *cli) startupRepository(pool *pgxpool.Pool) (startups.StartupRepository, error) {
	switch c.cfg.Content.Backend {
	case config.BackendPostgres:
		if pool == nil {
			return nil, errors.New("postgres content backend needs a database connection")
		}
		return startups.NewPostgresStartupRepository(pool), nil
	default:
		client, err := cms.NewClient(cms.Options{
			ProjectID:  c.cfg.Content.ProjectID,
			Dataset:    c.cfg.Content.Dataset,
			APIVersion: c.cfg.Content.APIVersion,
			Token:      c.cfg.Content.Token,
			UseCDN:     c.cfg.Content.UseCDN,
			Host:       c.cfg.Content.APIHost,
		})
		if err != nil {
			return nil, fmt.Errorf("content client: %w", err)
		}
		return startups.NewSanityStartupRepository(client), nil
	}
}

func newStartupsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "startups",
		Short: "Query the startup directory",
	}

	var timeout time.Duration
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Query timeout")

	withService := func(parent context.Context, fn func(context.Context, startups.StartupService) (any, error)) error {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		var pool *pgxpool.Pool
		if c.cfg.Content.Backend == config.BackendPostgres {
			var err error
			if pool, err = c.openDatabase(ctx); err != nil {
				return err
			}
			defer pool.Close()
		}

		repo, err := c.startupRepository(pool)
		if err != nil {
			return err
		}

		out, err := fn(ctx, startups.NewStartupService(repo))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every startup, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s startups.StartupService) (any, error) {
				items, err := s.ListStartups(ctx)
				if err != nil {
					return nil, err
				}
				return startups.StartupList{Items: items, Total: int64(len(items))}, nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one startup with its pitch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s startups.StartupService) (any, error) {
				startup, err := s.GetStartupByID(ctx, args[0])
				if err != nil {
					return nil, err
				}
				if startup == nil {
					return nil, fmt.Errorf("startup %q not found", args[0])
				}
				return startup, nil
			})
		},
	})

	return cmd
}
