package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recipekit/internal/domain"
	"recipekit/internal/port"
)

type importLogRepo struct {
	db *sqlx.DB
}

// NewImportLogRepo creates a new PostgreSQL-backed ImportLogRepository.
func NewImportLogRepo(db *sqlx.DB) port.ImportLogRepository {
	return &importLogRepo{db: db}
}

func (r *importLogRepo) Create(ctx context.Context, entry *domain.ImportLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO import_log (id, source_url, recipe_name, success, final_state,
		error_count, warning_count, duration_ms, archive_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.SourceURL, entry.RecipeName, entry.Success, string(entry.FinalState),
		entry.ErrorCount, entry.WarningCount, entry.DurationMs, entry.ArchiveKey, entry.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "importLogRepo.Create")
	}
	return nil
}

func (r *importLogRepo) ListRecent(ctx context.Context, limit int) ([]domain.ImportLogEntry, error) {
	entries := []domain.ImportLogEntry{}
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, source_url, recipe_name, success, final_state, error_count,
			warning_count, duration_ms, archive_key, created_at
		FROM import_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "importLogRepo.ListRecent")
	}
	return entries, nil
}
