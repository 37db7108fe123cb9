package domain

import "errors"

var (
	// ErrUnauthorized is returned when the shared API key does not match.
	ErrUnauthorized = errors.New("invalid api key")
	// ErrStudentNotFound is returned when no progress document exists for a student.
	ErrStudentNotFound = errors.New("student progress not found")
	// ErrUnknownChallengeType indicates an unsupported challengeType parameter.
	ErrUnknownChallengeType = errors.New("unknown challenge type")
	// ErrAINotConfigured is returned when portuguese generation is requested
	// without AI credentials configured.
	ErrAINotConfigured = errors.New("ai completion endpoint not configured")
	// ErrChallengeNotFound indicates an attempt was submitted before today's
	// challenge was generated.
	ErrChallengeNotFound = errors.New("daily challenge not found")
	// ErrSubjectNotFound indicates a course references a subject that no
	// longer exists.
	ErrSubjectNotFound = errors.New("subject not found")
)
