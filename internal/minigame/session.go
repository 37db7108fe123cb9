package minigame

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Status is the lifecycle of a running game session.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusComplete Status = "complete"
)

// MoveResult is what a single player action produced.
type MoveResult struct {
	Correct  bool   `json:"correct"`
	Status   Status `json:"status"`
	Errors   int    `json:"errors"`
	WasReset bool   `json:"wasReset"`
	Message  string `json:"message,omitempty"`
}

// Session drives one of the five mini-games: shuffled prompt set on load, an
// error counter with a max-errors reset threshold, and a full reset on
// completion or threshold.
type Session struct {
	game      MiniGame
	rnd       *rand.Rand
	maxErrors int

	status  Status
	errors  int
	prompts []string            // shuffled presentation order
	solved  map[string]struct{} // game-specific progress marks
}

// NewSession starts a session for the given game. maxErrors <= 0 disables the
// reset threshold.
func NewSession(game MiniGame, maxErrors int, rnd *rand.Rand) (*Session, error) {
	if game.Data == nil {
		return nil, fmt.Errorf("mini-game %q has no data", game.ID)
	}
	s := &Session{game: game, rnd: rnd, maxErrors: maxErrors}
	s.Reset()
	return s, nil
}

// Reset restores the session to its initial state with a fresh shuffle.
func (s *Session) Reset() {
	s.status = StatusPlaying
	s.errors = 0
	s.solved = make(map[string]struct{})
	s.prompts = s.promptSet()
	s.rnd.Shuffle(len(s.prompts), func(i, j int) {
		s.prompts[i], s.prompts[j] = s.prompts[j], s.prompts[i]
	})
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Errors returns the current error count.
func (s *Session) Errors() int { return s.errors }

// Prompts returns the shuffled presentation order for the client.
func (s *Session) Prompts() []string {
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// promptSet lists what the client has to work with, per game type.
func (s *Session) promptSet() []string {
	switch data := s.game.Data.(type) {
	case MemoryGameData:
		// every card appears once; pairs are matched left<->right
		cards := make([]string, 0, len(data.Pairs)*2)
		for _, p := range data.Pairs {
			cards = append(cards, p.Left, p.Right)
		}
		return cards
	case AssociationGameData:
		cards := make([]string, 0, len(data.Pairs)*2)
		for _, p := range data.Pairs {
			cards = append(cards, p.Left, p.Right)
		}
		return cards
	case OrderGameData:
		items := make([]string, len(data.Items))
		copy(items, data.Items)
		return items
	case IntruderGameData:
		items := make([]string, 0, len(data.Items)+1)
		items = append(items, data.Items...)
		items = append(items, data.Intruder)
		return items
	case CategorizeGameData:
		var items []string
		for _, members := range data.Categories {
			items = append(items, members...)
		}
		return items
	}
	return nil
}

// MatchPair handles memory and association moves: the player claims left and
// right belong together.
func (s *Session) MatchPair(left, right string) (MoveResult, error) {
	var pairs []Pair
	switch data := s.game.Data.(type) {
	case MemoryGameData:
		pairs = data.Pairs
	case AssociationGameData:
		pairs = data.Pairs
	default:
		return MoveResult{}, fmt.Errorf("game type %s does not accept pair moves", s.game.Type)
	}
	if s.status != StatusPlaying {
		return s.result(false, ""), nil
	}

	for i, p := range pairs {
		if (p.Left == left && p.Right == right) || (p.Left == right && p.Right == left) {
			// Keyed by index: distinct pairs may share a Left string.
			s.solved[strconv.Itoa(i)] = struct{}{}
			if len(s.solved) == len(pairs) {
				s.status = StatusComplete
			}
			return s.result(true, ""), nil
		}
	}
	return s.miss(), nil
}

// SubmitOrder handles the ordering game: the whole arrangement is judged at once.
func (s *Session) SubmitOrder(order []string) (MoveResult, error) {
	data, ok := s.game.Data.(OrderGameData)
	if !ok {
		return MoveResult{}, fmt.Errorf("game type %s does not accept order moves", s.game.Type)
	}
	if s.status != StatusPlaying {
		return s.result(false, ""), nil
	}

	if len(order) == len(data.Items) {
		match := true
		for i := range order {
			if order[i] != data.Items[i] {
				match = false
				break
			}
		}
		if match {
			s.status = StatusComplete
			return s.result(true, ""), nil
		}
	}
	return s.miss(), nil
}

// PickIntruder handles the odd-one-out game.
func (s *Session) PickIntruder(item string) (MoveResult, error) {
	data, ok := s.game.Data.(IntruderGameData)
	if !ok {
		return MoveResult{}, fmt.Errorf("game type %s does not accept intruder moves", s.game.Type)
	}
	if s.status != StatusPlaying {
		return s.result(false, ""), nil
	}

	if item == data.Intruder {
		s.status = StatusComplete
		return s.result(true, ""), nil
	}
	return s.miss(), nil
}

// PlaceItem handles the categorization game, one item at a time.
func (s *Session) PlaceItem(item, category string) (MoveResult, error) {
	data, ok := s.game.Data.(CategorizeGameData)
	if !ok {
		return MoveResult{}, fmt.Errorf("game type %s does not accept categorize moves", s.game.Type)
	}
	if s.status != StatusPlaying {
		return s.result(false, ""), nil
	}

	for _, member := range data.Categories[category] {
		if member == item {
			s.solved[item] = struct{}{}
			if len(s.solved) == s.totalItems(data) {
				s.status = StatusComplete
			}
			return s.result(true, ""), nil
		}
	}
	return s.miss(), nil
}

func (s *Session) totalItems(data CategorizeGameData) int {
	total := 0
	for _, members := range data.Categories {
		total += len(members)
	}
	return total
}

// miss counts an error and resets the whole session once the threshold is hit.
func (s *Session) miss() MoveResult {
	s.errors++
	if s.maxErrors > 0 && s.errors >= s.maxErrors {
		errs := s.errors
		s.Reset()
		return MoveResult{Correct: false, Status: s.status, Errors: errs, WasReset: true, Message: "too many errors, game reset"}
	}
	return s.result(false, "")
}

func (s *Session) result(correct bool, msg string) MoveResult {
	return MoveResult{Correct: correct, Status: s.status, Errors: s.errors, Message: msg}
}
