package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"concurseiro-challenge-service/internal/app"
	"concurseiro-challenge-service/internal/domain"
	"concurseiro-challenge-service/internal/infra/memory"
)

const testAPIKey = "secret-key"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	students := memory.NewStudentStore()
	students.Seed(domain.NewStudentProgress("s1"))
	subjects := memory.NewStaticSubjectRepository(map[string][]domain.Subject{
		"s1": {
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
						},
						Glossary: []domain.GlossaryTerm{
							{Term: "Habeas Corpus", Definition: "Remédio contra prisão ilegal."},
						},
					},
				},
			},
		},
	})
	service := app.NewChallengeService(students, subjects, memory.NewChallengeCache(time.Hour), nil, app.Defaults{
		ReviewCount:   2,
		GlossaryCount: 1,
	})

	mux := http.NewServeMux()
	NewHandler(service, testAPIKey).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func challengeURL(server *httptest.Server, apiKey, studentID, challengeType string) string {
	return fmt.Sprintf("%s/api/daily-challenge?apiKey=%s&studentId=%s&challengeType=%s", server.URL, apiKey, studentID, challengeType)
}

func TestDailyChallengeEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(challengeURL(server, testAPIKey, "s1", "review"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var items []domain.Question
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(items))
	}
}

func TestDailyChallengeBadKey(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(challengeURL(server, "wrong", "s1", "review"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestKeyMatches(t *testing.T) {
	if !keyMatches("secret-key", "secret-key") {
		t.Fatalf("matching keys rejected")
	}
	if keyMatches("wrong", "secret-key") {
		t.Fatalf("mismatched key accepted")
	}
	// A blank configured key must reject every request, including blank ones.
	if keyMatches("", "") {
		t.Fatalf("empty configured key accepted a request")
	}
}

func TestDailyChallengeUnknownStudent(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(challengeURL(server, testAPIKey, "ghost", "review"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error == "" {
		t.Fatalf("expected error message in body")
	}
}

func TestDailyChallengeUnknownType(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(challengeURL(server, testAPIKey, "s1", "calculus"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDailyChallengePortugueseUnconfigured(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(challengeURL(server, testAPIKey, "s1", "portuguese"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing AI config, got %d", resp.StatusCode)
	}
}

func TestSubmitAttemptEndpoint(t *testing.T) {
	server := newTestServer(t)

	// Generate first so there is a challenge to attempt.
	resp, err := http.Get(challengeURL(server, testAPIKey, "s1", "review"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var items []domain.Question
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp.Body.Close()

	payload, _ := json.Marshal(map[string]any{
		"questionId":     items[0].ID,
		"selectedAnswer": items[0].CorrectAnswer,
		"isCorrect":      true,
	})
	attemptURL := fmt.Sprintf("%s/api/daily-challenge/attempt?apiKey=%s&studentId=s1&challengeType=review", server.URL, testAPIKey)
	resp, err = http.Post(attemptURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("post attempt: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var challenge domain.DailyChallenge
	if err := json.NewDecoder(resp.Body).Decode(&challenge); err != nil {
		t.Fatalf("decode challenge: %v", err)
	}
	if challenge.AttemptsMade != 1 {
		t.Fatalf("expected 1 attempt recorded, got %d", challenge.AttemptsMade)
	}
}
