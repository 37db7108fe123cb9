package challenge

import "concurseiro-challenge-service/internal/domain"

// History classifies every question a student has ever answered. The sets are
// cumulative: a question answered correctly once and incorrectly another time
// appears in both EverCorrect and EverIncorrect. Callers wanting "never since
// gotten right" semantics use StillIncorrect.
type History struct {
	EverCorrect   map[string]struct{}
	EverIncorrect map[string]struct{}
	AllAnswered   map[string]struct{}
}

// AggregateHistory scans every attempt list reachable from a progress
// document: per-topic lastAttempt arrays, review sessions, custom quizzes and
// simulados. Attempts without a question id are skipped.
func AggregateHistory(progress *domain.StudentProgress) History {
	h := History{
		EverCorrect:   make(map[string]struct{}),
		EverIncorrect: make(map[string]struct{}),
		AllAnswered:   make(map[string]struct{}),
	}
	if progress == nil {
		return h
	}

	for _, topics := range progress.ProgressByTopic {
		for _, tp := range topics {
			h.record(tp.LastAttempt)
		}
	}
	for _, session := range progress.ReviewSessions {
		h.record(session.Attempts)
	}
	for _, quiz := range progress.CustomQuizzes {
		h.record(quiz.Attempts)
	}
	for _, sim := range progress.Simulados {
		h.record(sim.Attempts)
	}
	return h
}

func (h *History) record(attempts []domain.QuestionAttempt) {
	for _, attempt := range attempts {
		if attempt.QuestionID == "" {
			continue
		}
		h.AllAnswered[attempt.QuestionID] = struct{}{}
		if attempt.IsCorrect {
			h.EverCorrect[attempt.QuestionID] = struct{}{}
		} else {
			h.EverIncorrect[attempt.QuestionID] = struct{}{}
		}
	}
}

// Answered reports whether the question was ever attempted.
func (h History) Answered(questionID string) bool {
	_, ok := h.AllAnswered[questionID]
	return ok
}

// StillIncorrect returns the ids the student has missed and never since
// answered correctly (EverIncorrect minus EverCorrect).
func (h History) StillIncorrect() map[string]struct{} {
	out := make(map[string]struct{}, len(h.EverIncorrect))
	for id := range h.EverIncorrect {
		if _, ok := h.EverCorrect[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}
