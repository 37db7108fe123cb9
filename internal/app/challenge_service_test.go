package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"concurseiro-challenge-service/internal/app"
	"concurseiro-challenge-service/internal/challenge"
	"concurseiro-challenge-service/internal/domain"
	"concurseiro-challenge-service/internal/infra/memory"
)

func fixedClock(day string) func() time.Time {
	parsed, _ := time.Parse("2006-01-02", day)
	return func() time.Time { return parsed }
}

func testSubjects() []domain.Subject {
	return []domain.Subject{
		{
			ID:   "dir-const",
			Name: "Direito Constitucional",
			Topics: []domain.Topic{
				{
					ID:   "top1",
					Name: "Direitos Fundamentais",
					Questions: []domain.Question{
						{ID: "q1", Statement: "Q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
						{ID: "q2", Statement: "Q2", Options: []string{"a", "b"}, CorrectAnswer: "b"},
						{ID: "q3", Statement: "Q3", Options: []string{"a", "b"}, CorrectAnswer: "a"},
					},
					Glossary: []domain.GlossaryTerm{
						{Term: "Habeas Corpus", Definition: "Remédio contra prisão ilegal."},
					},
				},
			},
		},
	}
}

func newTestService(t *testing.T) (*app.ChallengeService, *memory.StudentStore) {
	t.Helper()
	students := memory.NewStudentStore()
	students.Seed(domain.NewStudentProgress("s1"))
	subjects := memory.NewStaticSubjectRepository(map[string][]domain.Subject{"s1": testSubjects()})

	service := app.NewChallengeService(students, subjects, memory.NewChallengeCache(time.Hour), nil, app.Defaults{
		ReviewCount:     2,
		GlossaryCount:   1,
		PortugueseCount: 5,
		IncorrectScope:  challenge.ScopeStill,
	}).WithClock(fixedClock("2026-08-31"))
	return service, students
}

func TestGetDailyChallengeGeneratesOncePerDay(t *testing.T) {
	ctx := context.Background()
	service, students := newTestService(t)

	first, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if first.Date != "2026-08-31" {
		t.Fatalf("expected today's date key, got %s", first.Date)
	}
	if len(first.Items) != 2 {
		t.Fatalf("expected 2 items (pool 3, target 2), got %d", len(first.Items))
	}

	// Second request same day returns the frozen set, not a regeneration.
	second, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("get challenge again: %v", err)
	}
	if second.Items[0].ID != first.Items[0].ID || second.Items[1].ID != first.Items[1].ID {
		t.Fatalf("expected same-day challenge to be frozen, got %+v vs %+v", first.Items, second.Items)
	}

	progress, err := students.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.ReviewChallenge == nil || progress.ReviewChallenge.Date != "2026-08-31" {
		t.Fatalf("expected challenge persisted on progress, got %+v", progress.ReviewChallenge)
	}
}

func TestGetDailyChallengeRegeneratesNextDay(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	first, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("day one: %v", err)
	}

	service.WithClock(fixedClock("2026-09-01"))
	second, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("day two: %v", err)
	}
	if second.Date == first.Date {
		t.Fatalf("expected a fresh challenge on the next day")
	}
}

func TestGetDailyChallengeGlossary(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	got, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeGlossary)
	if err != nil {
		t.Fatalf("glossary: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 glossary item, got %d", len(got.Items))
	}
	if len(got.Items[0].Options) != 5 {
		t.Fatalf("expected 5 options, got %d", len(got.Items[0].Options))
	}
}

func TestGetDailyChallengePortugueseUnconfigured(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	if _, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengePortuguese); err != domain.ErrAINotConfigured {
		t.Fatalf("expected ErrAINotConfigured, got %v", err)
	}
}

func TestGetDailyChallengeUnknownStudent(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	if _, err := service.GetDailyChallenge(ctx, "ghost", domain.ChallengeReview); err != domain.ErrStudentNotFound {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestGetDailyChallengeEmptyEnrollment(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStudentStore()
	students.Seed(domain.NewStudentProgress("lonely"))
	subjects := memory.NewStaticSubjectRepository(nil)

	service := app.NewChallengeService(students, subjects, nil, nil, app.Defaults{ReviewCount: 5}).
		WithClock(fixedClock("2026-08-31"))

	got, err := service.GetDailyChallenge(ctx, "lonely", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("expected empty challenge, not error: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected 0 items for empty enrollment, got %d", len(got.Items))
	}
}

func TestSubmitAttemptCompletesChallenge(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	generated, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var updated *domain.DailyChallenge
	for _, item := range generated.Items {
		updated, err = service.SubmitAttempt(ctx, "s1", domain.ChallengeReview, domain.QuestionAttempt{
			QuestionID:     item.ID,
			SelectedAnswer: item.CorrectAnswer,
			IsCorrect:      true,
		})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if !updated.IsCompleted {
		t.Fatalf("expected challenge completed after answering every item")
	}
	if updated.AttemptsMade != len(generated.Items) {
		t.Fatalf("expected %d attempts made, got %d", len(generated.Items), updated.AttemptsMade)
	}
}

func TestSubmitAttemptConcurrent(t *testing.T) {
	ctx := context.Background()
	service, students := newTestService(t)

	generated, err := service.GetDailyChallenge(ctx, "s1", domain.ChallengeReview)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Racing submissions may overwrite each other (last write wins, per the
	// double-generation trade-off), but must never corrupt the document.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.SubmitAttempt(ctx, "s1", domain.ChallengeReview, domain.QuestionAttempt{
				QuestionID:     generated.Items[0].ID,
				SelectedAnswer: generated.Items[0].CorrectAnswer,
				IsCorrect:      true,
			})
			if err != nil {
				t.Errorf("submit: %v", err)
			}
		}()
	}
	wg.Wait()

	progress, err := students.GetProgress(ctx, "s1")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	stored := progress.ReviewChallenge
	if stored == nil || stored.AttemptsMade < 1 || stored.AttemptsMade > 50 {
		t.Fatalf("expected between 1 and 50 recorded attempts, got %+v", stored)
	}
	if stored.AttemptsMade != len(stored.SessionAttempts) {
		t.Fatalf("attempt counter and list out of sync: %d vs %d", stored.AttemptsMade, len(stored.SessionAttempts))
	}
}

func TestSubmitAttemptWithoutChallenge(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, err := service.SubmitAttempt(ctx, "s1", domain.ChallengeReview, domain.QuestionAttempt{QuestionID: "q1"})
	if err != domain.ErrChallengeNotFound {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}
