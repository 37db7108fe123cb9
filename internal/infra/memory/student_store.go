package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"concurseiro-challenge-service/internal/domain"
)

// StudentStore is an in-memory implementation of app.StudentRepository,
// used by tests and the demo mode of the server. Like the document database
// it stands in for, it hands out an independent copy of the progress document
// on every read and write, so callers can mutate their copy without a lock.
type StudentStore struct {
	mu       sync.RWMutex
	students map[string]*domain.StudentProgress
}

func NewStudentStore() *StudentStore {
	return &StudentStore{students: make(map[string]*domain.StudentProgress)}
}

// Seed registers a progress document, keyed by its student id.
func (s *StudentStore) Seed(progress *domain.StudentProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[progress.StudentID] = cloneProgress(progress)
}

func (s *StudentStore) GetProgress(_ context.Context, studentID string) (*domain.StudentProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	progress, ok := s.students[studentID]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return cloneProgress(progress), nil
}

func (s *StudentStore) SaveProgress(_ context.Context, progress *domain.StudentProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[progress.StudentID] = cloneProgress(progress)
	return nil
}

// cloneProgress deep-copies through the document's JSON form, the same round
// trip the real store performs.
func cloneProgress(progress *domain.StudentProgress) *domain.StudentProgress {
	raw, err := json.Marshal(progress)
	if err != nil {
		panic(fmt.Sprintf("marshal student progress: %v", err))
	}
	var out domain.StudentProgress
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("unmarshal student progress: %v", err))
	}
	return &out
}
