package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"sqlbench/internal/models"
)

// Postgres drives a single database connection. The workbench owns exactly
// one logical connection, so every call holds the mutex for its whole
// round trip; concurrent HTTP handlers queue up here instead of racing the
// wire protocol.
type Postgres struct {
	mu   sync.Mutex
	conn *pgx.Conn
	log  zerolog.Logger
}

func Connect(ctx context.Context, databaseURL string, log zerolog.Logger) (*Postgres, error) {
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Ping(pingCtx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("component", "engine").Msg("database connection established")
	return &Postgres{conn: conn, log: log}, nil
}

func (p *Postgres) Query(ctx context.Context, sql string) (*Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rows, err := p.conn.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	fields := make([]models.Field, len(descs))
	for i, d := range descs {
		fields[i] = models.Field{Name: d.Name, TypeOID: d.DataTypeOID}
	}

	result := &Result{Fields: fields}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result.RowsAffected = rows.CommandTag().RowsAffected()

	return result, nil
}

func (p *Postgres) Execute(ctx context.Context, sql string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tag, err := p.conn.Exec(ctx, sql)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Ping(ctx)
}

func (p *Postgres) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.conn.Close(ctx); err != nil {
		return err
	}
	p.log.Info().Str("component", "engine").Msg("database connection closed")
	return nil
}
