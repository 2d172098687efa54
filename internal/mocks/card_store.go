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

// MemoryCardStore is an in-memory implementation of store.CardStore.
// Error hooks let tests force failures on specific operations.
type MemoryCardStore struct {
	mu     sync.Mutex
	nextID int64
	cards  map[int64]*domain.Card

	// UpdateErr, when set, is returned from Update to simulate a
	// persistence failure.
	UpdateErr error
}

// NewMemoryCardStore creates an empty in-memory card store.
func NewMemoryCardStore() *MemoryCardStore {
	return &MemoryCardStore{
		nextID: 1,
		cards:  make(map[int64]*domain.Card),
	}
}

// Ensure MemoryCardStore implements store.CardStore interface
var _ store.CardStore = (*MemoryCardStore)(nil)

// WithTx returns the store itself; the in-memory store has no transactions.
func (s *MemoryCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return s
}

// Seed inserts cards directly, assigning IDs only where missing.
// It is a test convenience and panics on duplicate IDs.
func (s *MemoryCardStore) Seed(cards ...*domain.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, card := range cards {
		if card.ID == 0 {
			card.ID = s.nextID
		}
		if _, exists := s.cards[card.ID]; exists {
			panic(fmt.Sprintf("duplicate card ID %d in seed", card.ID))
		}
		if card.ID >= s.nextID {
			s.nextID = card.ID + 1
		}
		s.cards[card.ID] = clone(card)
	}
}

// Create implements store.CardStore.Create
func (s *MemoryCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card.ID = s.nextID
	s.nextID++
	s.cards[card.ID] = clone(card)
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *MemoryCardStore) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return clone(card), nil
}

// GetForUpdate implements store.CardStore.GetForUpdate. The in-memory store
// has no row locks; it behaves like GetByID.
func (s *MemoryCardStore) GetForUpdate(ctx context.Context, id int64) (*domain.Card, error) {
	return s.GetByID(ctx, id)
}

// Update implements store.CardStore.Update
func (s *MemoryCardStore) Update(ctx context.Context, card *domain.Card) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	s.cards[card.ID] = clone(card)
	return nil
}

// Delete implements store.CardStore.Delete
func (s *MemoryCardStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

// List implements store.CardStore.List
func (s *MemoryCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]*domain.Card, 0, len(s.cards))
	for _, card := range s.cards {
		cards = append(cards, clone(card))
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// ListDue implements store.CardStore.ListDue
func (s *MemoryCardStore) ListDue(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*domain.Card
	for _, card := range s.cards {
		if card.IsDue(now) {
			due = append(due, clone(card))
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].ID < due[j].ID
	})
	return due, nil
}

// ListByCategory implements store.CardStore.ListByCategory
func (s *MemoryCardStore) ListByCategory(ctx context.Context, category string) ([]*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cards []*domain.Card
	for _, card := range s.cards {
		if card.Category == category {
			cards = append(cards, clone(card))
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	return cards, nil
}

// CategoryCounts implements store.CardStore.CategoryCounts
func (s *MemoryCardStore) CategoryCounts(ctx context.Context) ([]store.CategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byLabel := make(map[string]int)
	for _, card := range s.cards {
		if card.Category != "" {
			byLabel[card.Category]++
		}
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	counts := make([]store.CategoryCount, 0, len(labels))
	for _, label := range labels {
		counts = append(counts, store.CategoryCount{Category: label, Count: byLabel[label]})
	}
	return counts, nil
}

// ReassignCategory implements store.CardStore.ReassignCategory
func (s *MemoryCardStore) ReassignCategory(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for _, card := range s.cards {
		if card.Category == oldCategory {
			card.Category = newCategory
			card.UpdatedAt = time.Now().UTC()
			updated++
		}
	}
	return updated, nil
}

func clone(card *domain.Card) *domain.Card {
	c := *card
	return &c
}
