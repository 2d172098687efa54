// Package api provides HTTP handlers for the API.
package api

import (
	"time"

	"github.com/salescoach/srs-api/internal/domain"
)

// CardResponse represents the response data for a card
type CardResponse struct {
	ID             int64      `json:"id"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	Category       string     `json:"category,omitempty"`
	Interval       float64    `json:"interval"`
	EaseFactor     float64    `json:"ease_factor"`
	ReviewCount    int        `json:"review_count"`
	SuccessfulReps int        `json:"successful_reps"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	LastRating     *int       `json:"last_rating,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ReviewResponse represents the response data for a completed review
type ReviewResponse struct {
	Card   CardResponse         `json:"card"`
	Record ReviewRecordResponse `json:"record"`
}

// ReviewRecordResponse represents one entry of a card's review history
type ReviewRecordResponse struct {
	ID         int64     `json:"id"`
	CardID     int64     `json:"card_id"`
	Rating     int       `json:"rating"`
	Interval   float64   `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
	CreatedAt  time.Time `json:"created_at"`
}

// cardToResponse converts a domain.Card to a CardResponse
func cardToResponse(card *domain.Card) CardResponse {
	resp := CardResponse{
		ID:             card.ID,
		Question:       card.Question,
		Answer:         card.Answer,
		Category:       card.Category,
		Interval:       card.Interval,
		EaseFactor:     card.EaseFactor,
		ReviewCount:    card.ReviewCount,
		SuccessfulReps: card.SuccessfulReps,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}

	if !card.NextReviewAt.IsZero() {
		next := card.NextReviewAt
		resp.NextReviewAt = &next
	}
	if !card.LastReviewedAt.IsZero() {
		last := card.LastReviewedAt
		resp.LastReviewedAt = &last
	}
	if card.ReviewCount > 0 {
		rating := card.LastRating
		resp.LastRating = &rating
	}

	return resp
}

// cardsToResponse converts a slice of cards
func cardsToResponse(cards []*domain.Card) []CardResponse {
	responses := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, cardToResponse(card))
	}
	return responses
}

// recordToResponse converts a domain.ReviewRecord to a ReviewRecordResponse
func recordToResponse(record *domain.ReviewRecord) ReviewRecordResponse {
	return ReviewRecordResponse{
		ID:         record.ID,
		CardID:     record.CardID,
		Rating:     record.Rating,
		Interval:   record.Interval,
		EaseFactor: record.EaseFactor,
		CreatedAt:  record.CreatedAt,
	}
}
