package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wuwenbin0122/persona-studio/internal/models"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
)

type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, cfg utils.PostgresConfig) (*Postgres, error) {
	dsn := cfg.BuildDSN()
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns >= 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(cfg.ConnectTimeout))
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return &Postgres{Pool: pool}, nil
}

func (p *Postgres) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.Pool.Ping(ctx)
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	statements := []string{
		strings.Join([]string{
			"CREATE TABLE IF NOT EXISTS generation_events (",
			"    id TEXT PRIMARY KEY,",
			"    request_id BIGINT NOT NULL,",
			"    persona_id BIGINT NOT NULL DEFAULT 0,",
			"    provider TEXT NOT NULL,",
			"    model TEXT NOT NULL DEFAULT '',",
			"    outcome TEXT NOT NULL,",
			"    error TEXT NOT NULL DEFAULT '',",
			"    defaulted_fields TEXT[] NOT NULL DEFAULT '{}',",
			"    duration_ms BIGINT NOT NULL DEFAULT 0,",
			"    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()",
			")",
		}, "\n"),
		"CREATE INDEX IF NOT EXISTS generation_events_request_id_idx ON generation_events (request_id)",
		"CREATE INDEX IF NOT EXISTS generation_events_created_at_idx ON generation_events (created_at DESC)",
	}

	for _, stmt := range statements {
		if _, err := p.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}

	return nil
}

const insertGenerationEventSQL = `INSERT INTO generation_events
    (id, request_id, persona_id, provider, model, outcome, error, defaulted_fields, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// RecordGeneration inserts one generation event.
func (p *Postgres) RecordGeneration(ctx context.Context, event models.GenerationEvent) error {
	if p == nil || p.Pool == nil {
		return fmt.Errorf("postgres: pool not initialised")
	}

	defaulted := event.DefaultedFields
	if defaulted == nil {
		defaulted = []string{}
	}

	_, err := p.Pool.Exec(ctx, insertGenerationEventSQL,
		event.ID,
		event.RequestID,
		event.PersonaID,
		event.Provider,
		event.Model,
		event.Outcome,
		event.Error,
		defaulted,
		event.DurationMS,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: record generation: %w", err)
	}

	return nil
}
