package domain

import "time"

// QuestionAttempt is an append-only record of a single answered question.
// Attempt lists are only ever appended to; history is cumulative.
type QuestionAttempt struct {
	QuestionID     string     `json:"questionId"`
	SelectedAnswer string     `json:"selectedAnswer,omitempty"`
	IsCorrect      bool       `json:"isCorrect"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

// TopicProgress tracks a student's state for one topic of one subject.
type TopicProgress struct {
	Completed   bool              `json:"completed"`
	Score       float64           `json:"score"`
	LastAttempt []QuestionAttempt `json:"lastAttempt,omitempty"`
}

// ReviewSession is a past spaced-review run with its attempts.
type ReviewSession struct {
	ID        string            `json:"id"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
	Attempts  []QuestionAttempt `json:"attempts,omitempty"`
}

// CustomQuiz is a student-assembled quiz with its attempts.
type CustomQuiz struct {
	ID       string            `json:"id"`
	Name     string            `json:"name,omitempty"`
	Attempts []QuestionAttempt `json:"attempts,omitempty"`
}

// Simulado is a timed multi-subject mock exam configured by the student.
type Simulado struct {
	ID       string            `json:"id"`
	Name     string            `json:"name,omitempty"`
	Subjects []string          `json:"subjects,omitempty"`
	Attempts []QuestionAttempt `json:"attempts,omitempty"`
}

// ChallengeType identifies which daily challenge pipeline to run.
type ChallengeType string

const (
	ChallengeReview     ChallengeType = "review"
	ChallengeGlossary   ChallengeType = "glossary"
	ChallengePortuguese ChallengeType = "portuguese"
)

// Valid reports whether t is one of the known challenge types.
func (t ChallengeType) Valid() bool {
	switch t {
	case ChallengeReview, ChallengeGlossary, ChallengePortuguese:
		return true
	}
	return false
}

// FilterType is the history-based predicate used to narrow a question pool.
type FilterType string

const (
	FilterIncorrect  FilterType = "incorrect"
	FilterCorrect    FilterType = "correct"
	FilterUnanswered FilterType = "unanswered"
	FilterMixed      FilterType = "mixed"
)

// ChallengeConfig is the per-student, per-type generation settings.
type ChallengeConfig struct {
	Filter      FilterType `json:"filter,omitempty"`
	TargetCount int        `json:"targetCount,omitempty"`
	SubjectIDs  []string   `json:"subjectIds,omitempty"`
	TopicIDs    []string   `json:"topicIds,omitempty"`
}

// DailyChallenge is a practice set generated at most once per calendar day.
// Date is the cache key: a new challenge is generated only when no record
// exists for today. Items are frozen at generation time.
type DailyChallenge struct {
	Date            string            `json:"date"` // YYYY-MM-DD
	Items           []Question        `json:"items"`
	IsCompleted     bool              `json:"isCompleted"`
	AttemptsMade    int               `json:"attemptsMade"`
	SessionAttempts []QuestionAttempt `json:"sessionAttempts,omitempty"`
}

// GeneratedOn reports whether the challenge was generated on the given day.
func (c *DailyChallenge) GeneratedOn(day string) bool {
	return c != nil && c.Date == day
}

// StudentProgress is the per-student aggregate root. One document per student,
// created at account creation and updated incrementally, never replaced
// wholesale.
type StudentProgress struct {
	StudentID string `json:"studentId"`

	// subject id → topic id → progress
	ProgressByTopic map[string]map[string]TopicProgress `json:"progressByTopic,omitempty"`

	ReviewSessions []ReviewSession `json:"reviewSessions,omitempty"`
	CustomQuizzes  []CustomQuiz    `json:"customQuizzes,omitempty"`
	Simulados      []Simulado      `json:"simulados,omitempty"`

	ReviewChallengeConfig     ChallengeConfig `json:"reviewChallengeConfig,omitempty"`
	GlossaryChallengeConfig   ChallengeConfig `json:"glossaryChallengeConfig,omitempty"`
	PortugueseChallengeConfig ChallengeConfig `json:"portugueseChallengeConfig,omitempty"`

	ReviewChallenge     *DailyChallenge `json:"reviewChallenge,omitempty"`
	GlossaryChallenge   *DailyChallenge `json:"glossaryChallenge,omitempty"`
	PortugueseChallenge *DailyChallenge `json:"portugueseChallenge,omitempty"`
}

// NewStudentProgress creates the default progress document for a new account.
func NewStudentProgress(studentID string) *StudentProgress {
	return &StudentProgress{
		StudentID:       studentID,
		ProgressByTopic: make(map[string]map[string]TopicProgress),
	}
}

// Challenge returns the stored daily challenge for the given type, nil when
// none has been generated yet.
func (p *StudentProgress) Challenge(t ChallengeType) *DailyChallenge {
	switch t {
	case ChallengeReview:
		return p.ReviewChallenge
	case ChallengeGlossary:
		return p.GlossaryChallenge
	case ChallengePortuguese:
		return p.PortugueseChallenge
	}
	return nil
}

// SetChallenge stores the daily challenge for the given type.
func (p *StudentProgress) SetChallenge(t ChallengeType, c *DailyChallenge) {
	switch t {
	case ChallengeReview:
		p.ReviewChallenge = c
	case ChallengeGlossary:
		p.GlossaryChallenge = c
	case ChallengePortuguese:
		p.PortugueseChallenge = c
	}
}

// Config returns the per-type challenge settings.
func (p *StudentProgress) Config(t ChallengeType) ChallengeConfig {
	switch t {
	case ChallengeReview:
		return p.ReviewChallengeConfig
	case ChallengeGlossary:
		return p.GlossaryChallengeConfig
	case ChallengePortuguese:
		return p.PortugueseChallengeConfig
	}
	return ChallengeConfig{}
}
