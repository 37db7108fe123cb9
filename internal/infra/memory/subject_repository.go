package memory

import (
	"context"

	"concurseiro-challenge-service/internal/domain"
)

// StaticSubjectRepository serves pre-resolved enrollments from a map
// (tests and demo mode).
type StaticSubjectRepository struct {
	byStudent map[string][]domain.Subject
}

func NewStaticSubjectRepository(byStudent map[string][]domain.Subject) *StaticSubjectRepository {
	return &StaticSubjectRepository{byStudent: byStudent}
}

func (r *StaticSubjectRepository) GetEnrolledSubjects(_ context.Context, studentID string) ([]domain.Subject, error) {
	return r.byStudent[studentID], nil
}

// StaticCourseLoader backs app.EnrollmentRepository with fixed courses.
type StaticCourseLoader struct {
	courses []domain.Course
}

func NewStaticCourseLoader(courses []domain.Course) *StaticCourseLoader {
	return &StaticCourseLoader{courses: courses}
}

func (l *StaticCourseLoader) ListCoursesForStudent(_ context.Context, studentID string) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range l.courses {
		for _, id := range course.EnrolledStudentIDs {
			if id == studentID {
				out = append(out, course)
				break
			}
		}
	}
	return out, nil
}

// StaticSubjectLoader backs app.EnrollmentRepository with fixed subjects.
type StaticSubjectLoader struct {
	subjects map[string]domain.Subject
}

func NewStaticSubjectLoader(subjects map[string]domain.Subject) *StaticSubjectLoader {
	return &StaticSubjectLoader{subjects: subjects}
}

func (l *StaticSubjectLoader) LoadSubject(_ context.Context, subjectID string) (domain.Subject, error) {
	subject, ok := l.subjects[subjectID]
	if !ok {
		return domain.Subject{}, domain.ErrSubjectNotFound
	}
	return subject, nil
}
