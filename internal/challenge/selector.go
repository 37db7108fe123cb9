package challenge

import (
	"math/rand"

	"concurseiro-challenge-service/internal/domain"
)

// IncorrectScope controls what FilterIncorrect means. The two delivery paths
// of the original product disagreed here, so it is an explicit knob rather
// than a silent choice: ScopeEver keeps any question ever missed, ScopeStill
// keeps only questions never since answered correctly.
type IncorrectScope string

const (
	ScopeEver  IncorrectScope = "ever"
	ScopeStill IncorrectScope = "still"
)

// Selector draws daily-challenge question sets from a candidate pool. The
// zero value is not usable; construct with NewSelector.
type Selector struct {
	rnd            *rand.Rand
	incorrectScope IncorrectScope
}

// NewSelector builds a selector with its own rand source. Pass ScopeStill to
// treat "incorrect" as "still unresolved".
func NewSelector(rnd *rand.Rand, scope IncorrectScope) *Selector {
	if scope == "" {
		scope = ScopeStill
	}
	return &Selector{rnd: rnd, incorrectScope: scope}
}

// Select filters the pool by filter type, pads a shortfall from the shuffled
// remainder, shuffles, and truncates. The result always has
// min(targetCount, len(pool)) items and never a duplicate question id.
// An empty pool yields an empty result.
func (s *Selector) Select(pool []domain.Question, history History, filter domain.FilterType, targetCount int) []domain.Question {
	if targetCount <= 0 || len(pool) == 0 {
		return []domain.Question{}
	}

	selected, rest := s.partition(pool, history, filter)

	// Pad a shortfall from the rest of the pool. Dilutes the filter's intent
	// but guarantees a full challenge when history is thin.
	if len(selected) < targetCount && len(rest) > 0 {
		s.shuffle(rest)
		need := targetCount - len(selected)
		if need > len(rest) {
			need = len(rest)
		}
		selected = append(selected, rest[:need]...)
	}

	s.shuffle(selected)
	if len(selected) > targetCount {
		selected = selected[:targetCount]
	}
	return selected
}

// partition splits the pool into questions matching the filter and the rest.
// Pool entries sharing a question id follow the first occurrence, so the two
// halves never overlap on id.
func (s *Selector) partition(pool []domain.Question, history History, filter domain.FilterType) (match, rest []domain.Question) {
	var keep func(id string) bool
	switch filter {
	case domain.FilterIncorrect:
		incorrect := history.EverIncorrect
		if s.incorrectScope == ScopeStill {
			incorrect = history.StillIncorrect()
		}
		keep = func(id string) bool { _, ok := incorrect[id]; return ok }
	case domain.FilterCorrect:
		keep = func(id string) bool { _, ok := history.EverCorrect[id]; return ok }
	case domain.FilterUnanswered:
		keep = func(id string) bool { return !history.Answered(id) }
	default: // FilterMixed and anything unrecognized
		keep = func(string) bool { return true }
	}

	seen := make(map[string]struct{}, len(pool))
	for _, q := range pool {
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}
		if keep(q.ID) {
			match = append(match, q)
		} else {
			rest = append(rest, q)
		}
	}
	return match, rest
}

func (s *Selector) shuffle(questions []domain.Question) {
	s.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
}
