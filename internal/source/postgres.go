package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/schema"
)

// Postgres retrieves candidates from an indexed registry snapshot using
// pg_trgm name similarity. Tables:
//
//	entities(id text primary key, schema text not null)
//	entity_properties(entity_id text, prop text, value text, ord int)
//
// ord preserves the source ordering of multi-valued properties across the
// round trip.
type Postgres struct {
	db      *sql.DB
	schemas *schema.Registry
	log     *zap.Logger

	// MinSimilarity is the pg_trgm cutoff for the retrieval pool. Loose on
	// purpose; the scorer provides precision.
	MinSimilarity float64
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sql.DB, schemas *schema.Registry, log *zap.Logger) *Postgres {
	return &Postgres{db: db, schemas: schemas, log: log, MinSimilarity: 0.3}
}

// OpenPostgres connects and verifies the database is reachable.
func OpenPostgres(dsn string, schemas *schema.Registry, log *zap.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	return NewPostgres(db, schemas, log), nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Retrieve finds the entities whose recorded names are trigram-similar to
// any name or alias of the query, hinted by the best similarity found. No
// schema filtering happens here.
func (p *Postgres) Retrieve(ctx context.Context, query *model.Entity, limit int) ([]Candidate, error) {
	names := query.Gather("name", "alias")
	if len(names) == 0 {
		return []Candidate{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	hints := make(map[string]float64)
	for _, name := range names {
		rows, err := p.db.QueryContext(ctx, `
			SELECT entity_id, MAX(similarity(value, $1)) AS sim
			FROM entity_properties
			WHERE prop IN ('name', 'alias') AND similarity(value, $1) >= $2
			GROUP BY entity_id
			ORDER BY sim DESC
			LIMIT $3`,
			name, p.MinSimilarity, limit)
		if err != nil {
			return nil, fmt.Errorf("candidate retrieval failed: %w", err)
		}
		if err := scanHints(rows, hints); err != nil {
			return nil, err
		}
	}

	candidates := make([]Candidate, 0, len(hints))
	for id, hint := range hints {
		entity, err := p.loadEntity(ctx, id)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Entity: entity, Hint: hint})
	}
	p.log.Debug("retrieved candidates",
		zap.String("query_schema", query.Schema),
		zap.Int("count", len(candidates)))
	return candidates, nil
}

func scanHints(rows *sql.Rows, hints map[string]float64) error {
	defer rows.Close()
	for rows.Next() {
		var id string
		var sim float64
		if err := rows.Scan(&id, &sim); err != nil {
			return fmt.Errorf("candidate row scan failed: %w", err)
		}
		if sim > hints[id] {
			hints[id] = sim
		}
	}
	return rows.Err()
}

// loadEntity materialises one entity with all its properties, preserving
// multi-value ordering. Validation against the schema registry happens on
// construction, so corrupt rows fail fast with a schema error.
func (p *Postgres) loadEntity(ctx context.Context, id string) (*model.Entity, error) {
	var schemaName string
	err := p.db.QueryRowContext(ctx,
		`SELECT schema FROM entities WHERE id = $1`, id).Scan(&schemaName)
	if err != nil {
		return nil, fmt.Errorf("entity %s lookup failed: %w", id, err)
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT prop, value
		FROM entity_properties
		WHERE entity_id = $1
		ORDER BY prop, ord`, id)
	if err != nil {
		return nil, fmt.Errorf("entity %s properties failed: %w", id, err)
	}
	defer rows.Close()

	props := make(map[string][]string)
	for rows.Next() {
		var prop, value string
		if err := rows.Scan(&prop, &value); err != nil {
			return nil, fmt.Errorf("property row scan failed: %w", err)
		}
		props[prop] = append(props[prop], value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return model.NewEntity(p.schemas, id, schemaName, props)
}
