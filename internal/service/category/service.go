// Package category manages the category labels carried by cards. Categories
// are not rows of their own: they are derived from the distinct labels in the
// card store, merged with a small predefined set that carries fixed display
// metadata.
package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/salescoach/srs-api/internal/store"
)

// ErrEmptyName is returned when a category name is blank after trimming.
var ErrEmptyName = errors.New("category name cannot be empty")

// Category is a label with display metadata and the number of cards
// carrying it.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// The predefined CRM categories and the metadata used for any label outside
// that set.
var (
	predefined = []Category{
		{ID: "company", Name: "Company", Color: "#2563eb", Icon: "building"},
		{ID: "contact", Name: "Contact", Color: "#16a34a", Icon: "user"},
		{ID: "opportunity", Name: "Opportunity", Color: "#d97706", Icon: "target"},
	}

	genericColor = "#6b7280"
	genericIcon  = "tag"
)

// CategoryService defines the category management surface.
type CategoryService interface {
	// List returns the union of the predefined categories and every
	// distinct label present on cards, with card counts.
	List(ctx context.Context) ([]Category, error)

	// Create normalizes a display name into a category. Nothing is
	// persisted: a category exists once a card carries its label.
	Create(ctx context.Context, name, color, icon string) (*Category, error)

	// Reassign moves every card labeled oldCategory to newCategory and
	// returns the number of cards updated. An empty newCategory clears
	// the label.
	Reassign(ctx context.Context, oldCategory, newCategory string) (int64, error)
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	cards  store.CardStore
	logger *slog.Logger
}

// NewCategoryService creates a new CategoryService implementation.
func NewCategoryService(cards store.CardStore, log *slog.Logger) CategoryService {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cards store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &categoryServiceImpl{
		cards:  cards,
		logger: log.With(slog.String("component", "category_service")),
	}
}

// Verify interface compliance at compile time
var _ CategoryService = (*categoryServiceImpl)(nil)

// List implements CategoryService.List.
func (s *categoryServiceImpl) List(ctx context.Context) ([]Category, error) {
	counts, err := s.cards.CategoryCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	byLabel := make(map[string]int, len(counts))
	for _, c := range counts {
		byLabel[c.Category] = c.Count
	}

	categories := make([]Category, 0, len(predefined)+len(byLabel))
	seen := make(map[string]bool, len(predefined))
	for _, c := range predefined {
		c.Count = byLabel[c.ID]
		categories = append(categories, c)
		seen[c.ID] = true
	}

	// Ad-hoc labels found on cards, in stable order after the predefined
	// block.
	extras := make([]string, 0, len(byLabel))
	for label := range byLabel {
		if !seen[label] {
			extras = append(extras, label)
		}
	}
	sort.Strings(extras)
	for _, label := range extras {
		categories = append(categories, Category{
			ID:    label,
			Name:  displayName(label),
			Color: genericColor,
			Icon:  genericIcon,
			Count: byLabel[label],
		})
	}

	return categories, nil
}

// Create implements CategoryService.Create.
func (s *categoryServiceImpl) Create(ctx context.Context, name, color, icon string) (*Category, error) {
	id := NormalizeName(name)
	if id == "" {
		return nil, ErrEmptyName
	}

	if color == "" {
		color = genericColor
	}
	if icon == "" {
		icon = genericIcon
	}

	s.logger.Debug("category created",
		slog.String("category_id", id),
		slog.String("name", name))

	return &Category{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Color: color,
		Icon:  icon,
	}, nil
}

// Reassign implements CategoryService.Reassign.
func (s *categoryServiceImpl) Reassign(ctx context.Context, oldCategory, newCategory string) (int64, error) {
	updated, err := s.cards.ReassignCategory(ctx, oldCategory, newCategory)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign category: %w", err)
	}

	s.logger.Info("category reassigned",
		slog.String("old_category", oldCategory),
		slog.String("new_category", newCategory),
		slog.Int64("cards_updated", updated))

	return updated, nil
}

// NormalizeName converts a display name into a category id: lowercase with
// spaces collapsed to underscores.
func NormalizeName(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(id), "_")
}

// displayName renders a category id for display: underscores back to spaces,
// words capitalized.
func displayName(id string) string {
	words := strings.Split(id, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
