package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kapu/number-lookup-go/internal/domain"
	"go.uber.org/zap"
)

// HistoryEntry is one persisted lookup.
type HistoryEntry struct {
	ID         int64                 `json:"id"`
	Queried    string                `json:"queried"`
	Normalized string                `json:"normalized"`
	Results    []domain.LookupResult `json:"results"`
	CreatedAt  time.Time             `json:"created_at"`
}

// HistoryRepository stores completed lookup reports. Writes are best-effort;
// the lookup pass never fails because of a history error.
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewHistoryRepository(postgres *PostgresService, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// EnsureSchema creates the history table when it does not exist yet.
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS lookup_history (
			id BIGSERIAL PRIMARY KEY,
			queried TEXT NOT NULL,
			normalized TEXT NOT NULL,
			results JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure lookup_history schema: %w", err)
	}
	return nil
}

// Record inserts one report.
func (r *HistoryRepository) Record(ctx context.Context, report *domain.Report) error {
	resultsJSON, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	query := `
		INSERT INTO lookup_history (queried, normalized, results)
		VALUES ($1, $2, $3)
	`

	if _, err := r.db.ExecContext(ctx, query, report.Queried, report.Normalized, resultsJSON); err != nil {
		return fmt.Errorf("failed to insert lookup history: %w", err)
	}

	r.logger.Debug("Lookup recorded",
		zap.String("normalized", report.Normalized),
		zap.Int("results", len(report.Results)))

	return nil
}

// Recent returns the newest entries, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, queried, normalized, results, created_at
		FROM lookup_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry       HistoryEntry
			resultsJSON []byte
		)
		if err := rows.Scan(&entry.ID, &entry.Queried, &entry.Normalized, &resultsJSON, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(resultsJSON, &entry.Results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history results: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}

	return entries, nil
}
