package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"concurseiro-challenge-service/internal/challenge"
	"concurseiro-challenge-service/internal/domain"
)

// StudentRepository stores per-student progress documents.
type StudentRepository interface {
	GetProgress(ctx context.Context, studentID string) (*domain.StudentProgress, error)
	SaveProgress(ctx context.Context, progress *domain.StudentProgress) error
}

// SubjectRepository resolves a student's enrollment to populated subject trees.
type SubjectRepository interface {
	GetEnrolledSubjects(ctx context.Context, studentID string) ([]domain.Subject, error)
}

// ChallengeCache short-circuits generation for a (student, type, day) triple.
type ChallengeCache interface {
	Get(ctx context.Context, studentID string, challengeType domain.ChallengeType, day string) (*domain.DailyChallenge, bool)
	Put(ctx context.Context, studentID string, challengeType domain.ChallengeType, challenge *domain.DailyChallenge)
}

// TextCompleter generates the portuguese challenge content. Nil when the AI
// endpoint is not configured.
type TextCompleter interface {
	GeneratePortugueseQuestions(ctx context.Context, count int) ([]domain.Question, error)
}

// Defaults are the service-wide target counts applied when a student has no
// per-type configuration stored.
type Defaults struct {
	ReviewCount     int
	GlossaryCount   int
	PortugueseCount int
	IncorrectScope  challenge.IncorrectScope
}

// ChallengeService owns the daily-challenge use cases.
type ChallengeService struct {
	students  StudentRepository
	subjects  SubjectRepository
	cache     ChallengeCache
	completer TextCompleter
	defaults  Defaults
	now       func() time.Time
}

func NewChallengeService(students StudentRepository, subjects SubjectRepository, cache ChallengeCache, completer TextCompleter, defaults Defaults) *ChallengeService {
	return &ChallengeService{
		students:  students,
		subjects:  subjects,
		cache:     cache,
		completer: completer,
		defaults:  defaults,
		now:       time.Now,
	}
}

// newRand builds a per-request source; *rand.Rand is not goroutine-safe, so
// handler goroutines never share one.
func (s *ChallengeService) newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// WithClock overrides the clock for deterministic day keys in tests.
func (s *ChallengeService) WithClock(now func() time.Time) *ChallengeService {
	s.now = now
	return s
}

// today is the calendar-day cache key.
func (s *ChallengeService) today() string {
	return s.now().Format("2006-01-02")
}

// GetDailyChallenge returns today's challenge for the student, generating and
// persisting it on first request of the day. Two racing first requests may
// both generate; the second write wins, which only wastes work.
func (s *ChallengeService) GetDailyChallenge(ctx context.Context, studentID string, challengeType domain.ChallengeType) (*domain.DailyChallenge, error) {
	if !challengeType.Valid() {
		return nil, domain.ErrUnknownChallengeType
	}

	day := s.today()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, studentID, challengeType, day); ok {
			return cached, nil
		}
	}

	progress, err := s.students.GetProgress(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if existing := progress.Challenge(challengeType); existing.GeneratedOn(day) {
		if s.cache != nil {
			s.cache.Put(ctx, studentID, challengeType, existing)
		}
		return existing, nil
	}

	items, err := s.generate(ctx, studentID, progress, challengeType)
	if err != nil {
		return nil, err
	}

	generated := &domain.DailyChallenge{Date: day, Items: items}
	progress.SetChallenge(challengeType, generated)
	if err := s.students.SaveProgress(ctx, progress); err != nil {
		return nil, fmt.Errorf("persist daily challenge: %w", err)
	}
	if s.cache != nil {
		s.cache.Put(ctx, studentID, challengeType, generated)
	}
	log.Printf("generated %s challenge for student %s: %d items", challengeType, studentID, len(items))
	return generated, nil
}

func (s *ChallengeService) generate(ctx context.Context, studentID string, progress *domain.StudentProgress, challengeType domain.ChallengeType) ([]domain.Question, error) {
	cfg := progress.Config(challengeType)

	switch challengeType {
	case domain.ChallengeReview:
		subjects, err := s.subjects.GetEnrolledSubjects(ctx, studentID)
		if err != nil {
			return nil, err
		}
		pool := challenge.BuildPool(subjects, cfg.SubjectIDs, cfg.TopicIDs)
		history := challenge.AggregateHistory(progress)
		filter := cfg.Filter
		if filter == "" {
			filter = domain.FilterMixed
		}
		selector := challenge.NewSelector(s.newRand(), s.defaults.IncorrectScope)
		return selector.Select(pool, history, filter, s.targetCount(cfg, s.defaults.ReviewCount)), nil

	case domain.ChallengeGlossary:
		subjects, err := s.subjects.GetEnrolledSubjects(ctx, studentID)
		if err != nil {
			return nil, err
		}
		terms := challenge.BuildGlossaryPool(subjects, cfg.SubjectIDs, cfg.TopicIDs)
		return challenge.SelectGlossary(s.newRand(), terms, s.targetCount(cfg, s.defaults.GlossaryCount)), nil

	case domain.ChallengePortuguese:
		if s.completer == nil {
			return nil, domain.ErrAINotConfigured
		}
		return s.completer.GeneratePortugueseQuestions(ctx, s.targetCount(cfg, s.defaults.PortugueseCount))
	}
	return nil, domain.ErrUnknownChallengeType
}

func (s *ChallengeService) targetCount(cfg domain.ChallengeConfig, fallback int) int {
	if cfg.TargetCount > 0 {
		return cfg.TargetCount
	}
	return fallback
}

// SubmitAttempt appends an attempt to today's challenge and marks it complete
// once every item has been answered at least once. Attempt lists only grow.
func (s *ChallengeService) SubmitAttempt(ctx context.Context, studentID string, challengeType domain.ChallengeType, attempt domain.QuestionAttempt) (*domain.DailyChallenge, error) {
	if !challengeType.Valid() {
		return nil, domain.ErrUnknownChallengeType
	}
	if attempt.QuestionID == "" {
		return nil, fmt.Errorf("attempt has no question id")
	}

	progress, err := s.students.GetProgress(ctx, studentID)
	if err != nil {
		return nil, err
	}
	current := progress.Challenge(challengeType)
	if !current.GeneratedOn(s.today()) {
		return nil, domain.ErrChallengeNotFound
	}

	current.SessionAttempts = append(current.SessionAttempts, attempt)
	current.AttemptsMade++

	answered := make(map[string]struct{}, len(current.SessionAttempts))
	for _, a := range current.SessionAttempts {
		answered[a.QuestionID] = struct{}{}
	}
	done := len(current.Items) > 0
	for _, item := range current.Items {
		if _, ok := answered[item.ID]; !ok {
			done = false
			break
		}
	}
	if done {
		current.IsCompleted = true
	}

	if err := s.students.SaveProgress(ctx, progress); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}
	if s.cache != nil {
		s.cache.Put(ctx, studentID, challengeType, current)
	}
	return current, nil
}
