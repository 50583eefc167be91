// internal/store/postgres.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/senso-analysis/internal/config"
	"github.com/AI-Template-SDK/senso-analysis/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store persists analysis runs and their per-brand metrics. The analysis
// core never requires it; entry points attach it only when a database is
// configured.
type Store struct {
	db *sqlx.DB
}

// New connects using our config structure.
func New(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id          UUID PRIMARY KEY,
	owner_brand     TEXT NOT NULL,
	total_responses INT  NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS brand_metrics (
	run_id           UUID NOT NULL REFERENCES analysis_runs(run_id),
	brand_name       TEXT NOT NULL,
	is_owner         BOOLEAN NOT NULL,
	total_mentions   INT NOT NULL,
	total_responses  INT NOT NULL,
	visibility_score DOUBLE PRECISION NOT NULL,
	average_position DOUBLE PRECISION NOT NULL,
	depth_of_mention DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, brand_name)
);
`

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveRun stores the run record and its metrics in one transaction.
func (s *Store) SaveRun(ctx context.Context, run models.AnalysisRun, metrics []models.MetricsRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO analysis_runs (run_id, owner_brand, total_responses, created_at)
		 VALUES ($1, $2, $3, $4)`,
		run.RunID, run.OwnerBrand, run.TotalResponses, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store analysis run %s: %w", run.RunID, err)
	}

	for _, record := range metrics {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO brand_metrics (run_id, brand_name, is_owner, total_mentions,
			 total_responses, visibility_score, average_position, depth_of_mention)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			run.RunID, record.BrandName, record.IsOwner, record.TotalMentions,
			record.TotalResponses, record.VisibilityScore, record.AveragePosition, record.DepthOfMention)
		if err != nil {
			return fmt.Errorf("failed to store metrics for brand %s: %w", record.BrandName, err)
		}
	}

	return tx.Commit()
}

// GetRunMetrics loads the stored per-brand metrics for a run.
func (s *Store) GetRunMetrics(ctx context.Context, run models.AnalysisRun) ([]models.MetricsRecord, error) {
	var records []models.MetricsRecord
	err := s.db.SelectContext(ctx, &records,
		`SELECT brand_name AS brandname, is_owner AS isowner, total_mentions AS totalmentions,
		 total_responses AS totalresponses, visibility_score AS visibilityscore,
		 average_position AS averageposition, depth_of_mention AS depthofmention
		 FROM brand_metrics WHERE run_id = $1 ORDER BY brand_name`,
		run.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics for run %s: %w", run.RunID, err)
	}
	return records, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
