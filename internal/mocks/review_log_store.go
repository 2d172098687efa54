package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/store"
)

// MemoryReviewLogStore is an in-memory implementation of store.ReviewLogStore.
type MemoryReviewLogStore struct {
	mu      sync.Mutex
	nextID  int64
	records []*domain.ReviewRecord

	// AppendErr, when set, is returned from Append to simulate a
	// persistence failure.
	AppendErr error
}

// NewMemoryReviewLogStore creates an empty in-memory review log.
func NewMemoryReviewLogStore() *MemoryReviewLogStore {
	return &MemoryReviewLogStore{nextID: 1}
}

// Ensure MemoryReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*MemoryReviewLogStore)(nil)

// WithTx returns the store itself; the in-memory store has no transactions.
func (s *MemoryReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return s
}

// Seed inserts history records directly, assigning IDs where missing.
func (s *MemoryReviewLogStore) Seed(records ...*domain.ReviewRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if rec.ID == 0 {
			rec.ID = s.nextID
		}
		if rec.ID >= s.nextID {
			s.nextID = rec.ID + 1
		}
		copied := *rec
		s.records = append(s.records, &copied)
	}
}

// Append implements store.ReviewLogStore.Append
func (s *MemoryReviewLogStore) Append(ctx context.Context, record *domain.ReviewRecord) error {
	if s.AppendErr != nil {
		return s.AppendErr
	}

	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++
	copied := *record
	s.records = append(s.records, &copied)
	return nil
}

// ListByCard implements store.ReviewLogStore.ListByCard
func (s *MemoryReviewLogStore) ListByCard(ctx context.Context, cardID int64) ([]*domain.ReviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []*domain.ReviewRecord
	for _, rec := range s.records {
		if rec.CardID == cardID {
			copied := *rec
			records = append(records, &copied)
		}
	}
	sortRecords(records)
	return records, nil
}

// ListAll implements store.ReviewLogStore.ListAll
func (s *MemoryReviewLogStore) ListAll(ctx context.Context) ([]*domain.ReviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*domain.ReviewRecord, 0, len(s.records))
	for _, rec := range s.records {
		copied := *rec
		records = append(records, &copied)
	}
	sortRecords(records)
	return records, nil
}

// CountSince implements store.ReviewLogStore.CountSince
func (s *MemoryReviewLogStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, rec := range s.records {
		if !rec.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func sortRecords(records []*domain.ReviewRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
}
