package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"concurseiro-challenge-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ContentLoader reads professor-authored courses and subjects, stored as
// JSONB documents. It backs app.EnrollmentRepository.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

// ListCoursesForStudent filters on the enrolledStudentIds array inside the
// course document.
func (l *ContentLoader) ListCoursesForStudent(ctx context.Context, studentID string) ([]domain.Course, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT data FROM courses
		WHERE data->'enrolledStudentIds' ? $1
		ORDER BY id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		var course domain.Course
		if err := json.Unmarshal(raw, &course); err != nil {
			return nil, fmt.Errorf("unmarshal course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (l *ContentLoader) LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM subjects WHERE id=$1`, subjectID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	if err != nil {
		return domain.Subject{}, fmt.Errorf("load subject: %w", err)
	}
	var subject domain.Subject
	if err := json.Unmarshal(raw, &subject); err != nil {
		return domain.Subject{}, fmt.Errorf("unmarshal subject: %w", err)
	}
	return subject, nil
}
