package card_review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/domain/srs"
	"github.com/salescoach/srs-api/internal/platform/logger"
	"github.com/salescoach/srs-api/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	cards      store.CardStore
	reviewLog  store.ReviewLogStore
	srsService srs.Service
	logger     *slog.Logger

	// now and run are injectable for tests; defaults use the wall clock
	// and a real database transaction.
	now func() time.Time
	run func(ctx context.Context, fn store.TxFn) error
}

// NewCardReviewService creates a new CardReviewService implementation.
// The db handle is used to open the transaction that spans the card update
// and the history append.
func NewCardReviewService(
	db *sql.DB,
	cards store.CardStore,
	reviewLog store.ReviewLogStore,
	srsService srs.Service,
	log *slog.Logger,
) CardReviewService {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards store cannot be nil")
	}
	if reviewLog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("review log store cannot be nil")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srs service cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &cardReviewServiceImpl{
		cards:      cards,
		reviewLog:  reviewLog,
		srsService: srsService,
		logger:     log.With(slog.String("component", "card_review_service")),
		now:        func() time.Time { return time.Now().UTC() },
		run: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// SubmitReview implements CardReviewService.SubmitReview.
func (s *cardReviewServiceImpl) SubmitReview(
	ctx context.Context,
	cardID int64,
	uiRating int,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if uiRating < srs.UIRatingMin || uiRating > srs.UIRatingMax {
		log.Warn("rating out of range",
			slog.Int64("card_id", cardID),
			slog.Int("rating", uiRating))
		return nil, ErrInvalidRating
	}

	now := s.now()

	var result *ReviewResult
	err := s.run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)
		reviewLog := s.reviewLog.WithTx(tx)

		// The row lock serializes concurrent reviews of the same card;
		// the interval and ease calculations are read-modify-write.
		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		update, err := s.srsService.ScheduleReview(card, uiRating, now)
		if err != nil {
			return fmt.Errorf("failed to schedule review: %w", err)
		}

		updated := update.Apply(card)
		if err := cards.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		record, err := domain.NewReviewRecord(
			card.ID,
			uiRating,
			update.Interval,
			update.EaseFactor,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to build review record: %w", err)
		}

		if err := reviewLog.Append(ctx, record); err != nil {
			return fmt.Errorf("failed to append review record: %w", err)
		}

		result = &ReviewResult{Card: updated, Record: record}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	log.Debug("review submitted",
		slog.Int64("card_id", cardID),
		slog.Int("rating", uiRating),
		slog.Float64("interval", result.Card.Interval),
		slog.Float64("ease_factor", result.Card.EaseFactor),
		slog.Time("next_review_at", result.Card.NextReviewAt))

	return result, nil
}

// PreviewRatings implements CardReviewService.PreviewRatings.
func (s *cardReviewServiceImpl) PreviewRatings(
	ctx context.Context,
	cardID int64,
) (map[int]float64, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	preview, err := s.srsService.PreviewRatings(card)
	if err != nil {
		return nil, fmt.Errorf("failed to preview ratings: %w", err)
	}

	return preview, nil
}

// PostponeCard implements CardReviewService.PostponeCard.
func (s *cardReviewServiceImpl) PostponeCard(
	ctx context.Context,
	cardID int64,
	days int,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var postponed *domain.Card
	err := s.run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cards.WithTx(tx)

		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		next, err := s.srsService.PostponeReview(card, days, s.now())
		if err != nil {
			if errors.Is(err, srs.ErrInvalidDays) {
				return ErrInvalidDays
			}
			return fmt.Errorf("failed to postpone review: %w", err)
		}

		if err := cards.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		postponed = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, ErrInvalidDays) {
			return nil, err
		}
		log.Error("failed to postpone card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		return nil, fmt.Errorf("failed to postpone card: %w", err)
	}

	return postponed, nil
}
