package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/store"
)

// cardColumns is the column list shared by every card select in this store.
const cardColumns = `id, question, answer, category, interval, ease_factor,
	review_count, successful_reps, next_review_at, last_reviewed_at,
	last_rating, created_at, updated_at`

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, the
// default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cards (question, answer, category, interval, ease_factor,
			review_count, successful_reps, next_review_at, last_reviewed_at,
			last_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		card.Question,
		card.Answer,
		card.Category,
		card.Interval,
		card.EaseFactor,
		card.ReviewCount,
		card.SuccessfulReps,
		nullableTime(card.NextReviewAt),
		nullableTime(card.LastReviewedAt),
		nullableRating(card),
		card.CreatedAt,
		card.UpdatedAt,
	).Scan(&card.ID)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return s.scanCard(s.db.QueryRowContext(ctx, query, id))
}

// GetForUpdate implements store.CardStore.GetForUpdate. It acquires a
// row-level lock so concurrent reviews of the same card are serialized;
// it must run inside a transaction for the lock to mean anything.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, id int64) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return s.scanCard(s.db.QueryRowContext(ctx, query, id))
}

// Update implements store.CardStore.Update
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET question = $1, answer = $2, category = $3, interval = $4,
			ease_factor = $5, review_count = $6, successful_reps = $7,
			next_review_at = $8, last_reviewed_at = $9, last_rating = $10,
			updated_at = $11
		WHERE id = $12`

	result, err := s.db.ExecContext(ctx, query,
		card.Question,
		card.Answer,
		card.Category,
		card.Interval,
		card.EaseFactor,
		card.ReviewCount,
		card.SuccessfulReps,
		nullableTime(card.NextReviewAt),
		nullableTime(card.LastReviewedAt),
		nullableRating(card),
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// Delete implements store.CardStore.Delete. Review history rows are removed
// by the schema's ON DELETE CASCADE constraint.
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	s.logger.Debug("deleted card", slog.Int64("card_id", id))
	return nil
}

// List implements store.CardStore.List
func (s *PostgresCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY id`
	return s.queryCards(ctx, query)
}

// ListDue implements store.CardStore.ListDue
func (s *PostgresCardStore) ListDue(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE next_review_at IS NOT NULL AND next_review_at <= $1
		ORDER BY next_review_at, id`
	return s.queryCards(ctx, query, now.UTC())
}

// ListByCategory implements store.CardStore.ListByCategory
func (s *PostgresCardStore) ListByCategory(ctx context.Context, category string) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE category = $1 ORDER BY id`
	return s.queryCards(ctx, query, category)
}

// CategoryCounts implements store.CardStore.CategoryCounts
func (s *PostgresCardStore) CategoryCounts(ctx context.Context) ([]store.CategoryCount, error) {
	query := `
		SELECT category, COUNT(*)
		FROM cards
		WHERE category <> ''
		GROUP BY category
		ORDER BY category`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer closeRows(rows, s.logger)

	var counts []store.CategoryCount
	for rows.Next() {
		var cc store.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, cc)
	}

	return counts, rows.Err()
}

// ReassignCategory implements store.CardStore.ReassignCategory
func (s *PostgresCardStore) ReassignCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE cards SET category = $1, updated_at = $2 WHERE category = $3`,
		newCategory, time.Now().UTC(), oldCategory)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check reassign result: %w", err)
	}

	s.logger.Debug("reassigned category",
		slog.String("old", oldCategory),
		slog.String("new", newCategory),
		slog.Int64("cards", rows))
	return rows, nil
}

// queryCards runs a multi-row card query and scans the results.
func (s *PostgresCardStore) queryCards(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer closeRows(rows, s.logger)

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCardRow(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for card scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard scans a single-row result, mapping sql.ErrNoRows to
// store.ErrCardNotFound.
func (s *PostgresCardStore) scanCard(row *sql.Row) (*domain.Card, error) {
	card, err := scanCardRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// scanCardRow scans one card from the shared column list, translating the
// nullable columns back into the domain's zero-value conventions.
func scanCardRow(row rowScanner) (*domain.Card, error) {
	var (
		card           domain.Card
		nextReviewAt   sql.NullTime
		lastReviewedAt sql.NullTime
		lastRating     sql.NullInt64
	)

	err := row.Scan(
		&card.ID,
		&card.Question,
		&card.Answer,
		&card.Category,
		&card.Interval,
		&card.EaseFactor,
		&card.ReviewCount,
		&card.SuccessfulReps,
		&nextReviewAt,
		&lastReviewedAt,
		&lastRating,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	if nextReviewAt.Valid {
		card.NextReviewAt = nextReviewAt.Time.UTC()
	}
	if lastReviewedAt.Valid {
		card.LastReviewedAt = lastReviewedAt.Time.UTC()
	}
	if lastRating.Valid {
		card.LastRating = int(lastRating.Int64)
	}

	return &card, nil
}

// nullableTime maps the domain's zero-time convention to a SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

// nullableRating stores NULL for cards that have never been reviewed, since
// rating zero is a valid value on the 0-5 scale.
func nullableRating(card *domain.Card) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(card.LastRating), Valid: card.ReviewCount > 0}
}

// closeRows closes a result set, logging close failures instead of masking
// the caller's error.
func closeRows(rows *sql.Rows, logger *slog.Logger) {
	if err := rows.Close(); err != nil {
		logger.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
