package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/service/card_review"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReviewRouter(svc card_review.CardReviewService) http.Handler {
	handler := NewCardHandler(nil, svc, nil, testLogger())
	r := chi.NewRouter()
	r.Post("/api/srs/cards/{id}/review", handler.SubmitReview)
	r.Get("/api/srs/cards/{id}/preview", handler.PreviewRatings)
	r.Post("/api/srs/cards/{id}/postpone", handler.PostponeCard)
	return r
}

func TestSubmitReviewHandler(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("successful review", func(t *testing.T) {
		t.Parallel()
		mockService := &card_review.MockCardReviewService{
			SubmitReviewFn: func(ctx context.Context, cardID int64, uiRating int) (*card_review.ReviewResult, error) {
				assert.Equal(t, int64(42), cardID)
				assert.Equal(t, 4, uiRating)
				return &card_review.ReviewResult{
					Card: &domain.Card{
						ID: 42, Question: "q", Answer: "a",
						Interval: 3.0, EaseFactor: 2.1,
						ReviewCount: 1, SuccessfulReps: 1, LastRating: 4,
						LastReviewedAt: now, NextReviewAt: now.Add(72 * time.Hour),
					},
					Record: &domain.ReviewRecord{
						ID: 1, CardID: 42, Rating: 4,
						Interval: 3.0, EaseFactor: 2.1, CreatedAt: now,
					},
				}, nil
			},
		}

		body := bytes.NewBufferString(`{"rating": 4}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/42/review", body)
		rec := httptest.NewRecorder()
		newReviewRouter(mockService).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp ReviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.Card.ID)
		assert.InDelta(t, 3.0, resp.Card.Interval, 1e-9)
		assert.InDelta(t, 2.1, resp.Card.EaseFactor, 1e-9)
		assert.Equal(t, 4, resp.Record.Rating)
	})

	t.Run("missing rating fails validation", func(t *testing.T) {
		t.Parallel()
		mockService := &card_review.MockCardReviewService{
			SubmitReviewFn: func(ctx context.Context, cardID int64, uiRating int) (*card_review.ReviewResult, error) {
				t.Fatal("service must not be called on validation failure")
				return nil, nil
			},
		}

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/42/review", body)
		rec := httptest.NewRecorder()
		newReviewRouter(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rating above the scale fails validation", func(t *testing.T) {
		t.Parallel()
		mockService := &card_review.MockCardReviewService{}

		body := bytes.NewBufferString(`{"rating": 6}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/42/review", body)
		rec := httptest.NewRecorder()
		newReviewRouter(mockService).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown card maps to 404", func(t *testing.T) {
		t.Parallel()
		mockService := &card_review.MockCardReviewService{
			SubmitReviewFn: func(ctx context.Context, cardID int64, uiRating int) (*card_review.ReviewResult, error) {
				return nil, card_review.ErrCardNotFound
			},
		}

		body := bytes.NewBufferString(`{"rating": 3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/99/review", body)
		rec := httptest.NewRecorder()
		newReviewRouter(mockService).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Card not found", resp["error"])
	})

	t.Run("malformed card id", func(t *testing.T) {
		t.Parallel()
		body := bytes.NewBufferString(`{"rating": 3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/abc/review", body)
		rec := httptest.NewRecorder()
		newReviewRouter(&card_review.MockCardReviewService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreviewRatingsHandler(t *testing.T) {
	t.Parallel()

	mockService := &card_review.MockCardReviewService{
		PreviewRatingsFn: func(ctx context.Context, cardID int64) (map[int]float64, error) {
			return map[int]float64{0: 1.0 / 144, 3: 15.0, 4: 20.0}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/srs/cards/7/preview", nil)
	rec := httptest.NewRecorder()
	newReviewRouter(mockService).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CardID    int64              `json:"card_id"`
		Intervals map[string]float64 `json:"intervals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.CardID)
	assert.InDelta(t, 15.0, resp.Intervals["3"], 1e-9)
	assert.InDelta(t, 20.0, resp.Intervals["4"], 1e-9)
}

func TestPostponeCardHandler(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("postpones the card", func(t *testing.T) {
		t.Parallel()
		mockService := &card_review.MockCardReviewService{
			PostponeCardFn: func(ctx context.Context, cardID int64, days int) (*domain.Card, error) {
				assert.Equal(t, 3, days)
				return &domain.Card{
					ID: 7, Question: "q", Answer: "a",
					Interval: 5, EaseFactor: 2.0, ReviewCount: 1, SuccessfulReps: 1,
					NextReviewAt: now.AddDate(0, 0, 3),
				}, nil
			},
		}

		body := bytes.NewBufferString(`{"days": 3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/7/postpone", body)
		rec := httptest.NewRecorder()
		newReviewRouter(mockService).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp CardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.NextReviewAt)
		assert.Equal(t, now.AddDate(0, 0, 3), resp.NextReviewAt.UTC())
	})

	t.Run("zero days fails validation", func(t *testing.T) {
		t.Parallel()
		body := bytes.NewBufferString(`{"days": 0}`)
		req := httptest.NewRequest(http.MethodPost, "/api/srs/cards/7/postpone", body)
		rec := httptest.NewRecorder()
		newReviewRouter(&card_review.MockCardReviewService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
