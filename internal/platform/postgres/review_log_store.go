package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/store"
)

const reviewColumns = `id, card_id, rating, interval, ease_factor, created_at`

// PostgresReviewLogStore implements the store.ReviewLogStore interface using
// a PostgreSQL database as the storage backend. The review_log table is
// append-only; no update or delete statements exist in this store.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface. If logger is nil, the default logger is used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// WithTx implements store.ReviewLogStore.WithTx
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// Append implements store.ReviewLogStore.Append
func (s *PostgresReviewLogStore) Append(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_log (card_id, rating, interval, ease_factor, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		record.CardID,
		record.Rating,
		record.Interval,
		record.EaseFactor,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrCardNotFound
		}
		return fmt.Errorf("failed to append review record: %w", err)
	}

	return nil
}

// ListByCard implements store.ReviewLogStore.ListByCard
func (s *PostgresReviewLogStore) ListByCard(ctx context.Context, cardID int64) ([]*domain.ReviewRecord, error) {
	query := `SELECT ` + reviewColumns + ` FROM review_log
		WHERE card_id = $1 ORDER BY created_at, id`
	return s.queryRecords(ctx, query, cardID)
}

// ListAll implements store.ReviewLogStore.ListAll
func (s *PostgresReviewLogStore) ListAll(ctx context.Context) ([]*domain.ReviewRecord, error) {
	query := `SELECT ` + reviewColumns + ` FROM review_log ORDER BY created_at, id`
	return s.queryRecords(ctx, query)
}

// CountSince implements store.ReviewLogStore.CountSince
func (s *PostgresReviewLogStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_log WHERE created_at >= $1`,
		since.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count review records: %w", err)
	}
	return count, nil
}

// queryRecords runs a multi-row history query and scans the results.
func (s *PostgresReviewLogStore) queryRecords(ctx context.Context, query string, args ...any) ([]*domain.ReviewRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query review records: %w", err)
	}
	defer closeRows(rows, s.logger)

	var records []*domain.ReviewRecord
	for rows.Next() {
		var rec domain.ReviewRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CardID,
			&rec.Rating,
			&rec.Interval,
			&rec.EaseFactor,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review record: %w", err)
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		records = append(records, &rec)
	}

	return records, rows.Err()
}
