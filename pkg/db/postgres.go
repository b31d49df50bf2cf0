package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"pitchboard/pkg/config"
)

//go:embed schema.sql
var defaultSchema string

// Connect opens a pool, waits for the database to answer and applies the schema unless disabled.
func Connect(ctx context.Context, settings config.DatabaseSettings) (*pgxpool.Pool, error) {
	if settings.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable not set")
	}

	cfg, err := pgxpool.ParseConfig(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	if settings.MaxConns > 0 {
		cfg.MaxConns = int32(settings.MaxConns)
	}
	if settings.MinConns > 0 {
		cfg.MinConns = int32(settings.MinConns)
	}
	if settings.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = settings.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pingWithBackoff(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Info().Msg("connected to PostgreSQL")

	if settings.ApplySchema {
		schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := ApplySchema(schemaCtx, pool, settings.SchemaPath); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return pool, nil
}

// pingWithBackoff covers the window where the database container is still starting.
func pingWithBackoff(ctx context.Context, pool *pgxpool.Pool) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 15 * time.Second

	return backoff.RetryNotify(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pool.Ping(pingCtx)
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("database not ready")
	})
}

// ApplySchema executes the schema against the pool. An empty path uses the embedded schema.sql.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool, schemaPath string) error {
	sql := defaultSchema
	source := "embedded schema"
	if schemaPath != "" {
		b, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("read schema file: %w", err)
		}
		sql = string(b)
		source = schemaPath
	}

	sql = strings.TrimSpace(sql)
	if sql == "" {
		return fmt.Errorf("schema is empty: %s", source)
	}

	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	log.Info().Str("source", source).Msg("schema applied")
	return nil
}
