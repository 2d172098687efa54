package card_query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/salescoach/srs-api/internal/domain"
)

// Review strategy names accepted by Strategy.
const (
	StrategyDueMix          = "due_mix"
	StrategyPriorityFirst   = "priority_first"
	StrategyHardCardsFirst  = "hard_cards_first"
	StrategyMasteryBoost    = "mastery_boost"
	StrategyStrugglingFocus = "struggling_focus"
	StrategyNewMix          = "new_mix"
)

// Strategy tuning thresholds.
const (
	hardCardMaxEaseFactor  = 1.7
	masteryBoostMinDays    = 15.0
	masteryBoostMaxDays    = 21.0
	strugglingMaxRate      = 70.0
	strugglingMinReviews   = 2
	newMixMaxNewCards      = 5
	newMixMaxReviewedCards = 10
)

// Strategy implements CardQueryService.Strategy.
func (s *cardQueryServiceImpl) Strategy(
	ctx context.Context,
	name string,
	limit int,
	now time.Time,
) ([]*domain.Card, error) {
	var selected []*domain.Card
	var err error

	switch name {
	case StrategyDueMix:
		selected, err = s.dueMix(ctx, now)
	case StrategyPriorityFirst:
		selected, err = s.priorityFirst(ctx, now)
	case StrategyHardCardsFirst:
		selected, err = s.hardCardsFirst(ctx, now)
	case StrategyMasteryBoost:
		selected, err = s.masteryBoost(ctx, now)
	case StrategyStrugglingFocus:
		selected, err = s.strugglingFocus(ctx, now)
	case StrategyNewMix:
		selected, err = s.newMix(ctx, now)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", name, err)
	}

	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}
	return selected, nil
}

// dueMix interleaves due cards across their categories so a session does not
// drain one category before touching the next. Categories take turns in the
// order their first due card appears; within a category the due order is kept.
func (s *cardQueryServiceImpl) dueMix(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	var order []string
	groups := make(map[string][]*domain.Card)
	for _, card := range due {
		if _, seen := groups[card.Category]; !seen {
			order = append(order, card.Category)
		}
		groups[card.Category] = append(groups[card.Category], card)
	}

	mixed := make([]*domain.Card, 0, len(due))
	for len(mixed) < len(due) {
		for _, category := range order {
			if queue := groups[category]; len(queue) > 0 {
				mixed = append(mixed, queue[0])
				groups[category] = queue[1:]
			}
		}
	}
	return mixed, nil
}

// priorityFirst returns due cards most-overdue first. ListDue already orders
// by (next_review_at, id), which is exactly that.
func (s *cardQueryServiceImpl) priorityFirst(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	return s.cards.ListDue(ctx, now)
}

// hardCardsFirst returns due cards with a low ease factor, hardest first.
func (s *cardQueryServiceImpl) hardCardsFirst(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	hard := filterCards(due, func(c *domain.Card) bool {
		return c.EaseFactor <= hardCardMaxEaseFactor
	})
	sort.SliceStable(hard, func(i, j int) bool {
		return hard[i].EaseFactor < hard[j].EaseFactor
	})
	return hard, nil
}

// masteryBoost returns due cards on the cusp of mastery, longest interval
// first, so one more good review graduates them.
func (s *cardQueryServiceImpl) masteryBoost(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	cusp := filterCards(due, func(c *domain.Card) bool {
		return c.Interval >= masteryBoostMinDays && c.Interval <= masteryBoostMaxDays
	})
	sort.SliceStable(cusp, func(i, j int) bool {
		return cusp[i].Interval > cusp[j].Interval
	})
	return cusp, nil
}

// strugglingFocus returns due cards with an established record of failure,
// worst success rate first.
func (s *cardQueryServiceImpl) strugglingFocus(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}

	struggling := filterCards(due, func(c *domain.Card) bool {
		rate, ok := c.SuccessRate()
		return ok && c.ReviewCount > strugglingMinReviews && rate < strugglingMaxRate
	})
	sort.SliceStable(struggling, func(i, j int) bool {
		ri, _ := struggling[i].SuccessRate()
		rj, _ := struggling[j].SuccessRate()
		return ri < rj
	})
	return struggling, nil
}

// newMix builds a session of up to 5 never-reviewed cards followed by up to
// 10 due, already-reviewed cards.
func (s *cardQueryServiceImpl) newMix(ctx context.Context, now time.Time) ([]*domain.Card, error) {
	all, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}

	fresh := filterCards(all, func(c *domain.Card) bool {
		return c.ReviewCount == 0
	})
	if len(fresh) > newMixMaxNewCards {
		fresh = fresh[:newMixMaxNewCards]
	}

	due, err := s.cards.ListDue(ctx, now)
	if err != nil {
		return nil, err
	}
	reviewed := filterCards(due, func(c *domain.Card) bool {
		return c.ReviewCount > 0
	})
	if len(reviewed) > newMixMaxReviewedCards {
		reviewed = reviewed[:newMixMaxReviewedCards]
	}

	return append(fresh, reviewed...), nil
}
