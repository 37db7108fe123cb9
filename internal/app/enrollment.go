package app

import (
	"context"

	"concurseiro-challenge-service/internal/domain"
)

// CourseLoader lists the courses a student is enrolled in.
type CourseLoader interface {
	ListCoursesForStudent(ctx context.Context, studentID string) ([]domain.Course, error)
}

// SubjectLoader fetches one populated subject tree.
type SubjectLoader interface {
	LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error)
}

// EnrollmentRepository resolves a student's enrolled subjects by walking their
// courses' disciplines, honoring per-discipline topic/subtopic exclusions.
// It implements SubjectRepository.
type EnrollmentRepository struct {
	courses  CourseLoader
	subjects SubjectLoader
}

func NewEnrollmentRepository(courses CourseLoader, subjects SubjectLoader) *EnrollmentRepository {
	return &EnrollmentRepository{courses: courses, subjects: subjects}
}

// GetEnrolledSubjects returns one copy of every subject reachable from the
// student's courses. When the same subject appears in several courses, the
// exclusion sets are merged: a topic stays enrolled if any course includes it.
func (r *EnrollmentRepository) GetEnrolledSubjects(ctx context.Context, studentID string) ([]domain.Subject, error) {
	courses, err := r.courses.ListCoursesForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var order []string
	excluded := make(map[string]map[string]bool) // subject id → topic/subtopic id → excluded everywhere so far
	for _, course := range courses {
		for _, disc := range course.Disciplines {
			if disc.SubjectID == "" {
				continue
			}
			if _, seen := excluded[disc.SubjectID]; !seen {
				order = append(order, disc.SubjectID)
				excluded[disc.SubjectID] = make(map[string]bool)
				for _, id := range disc.ExcludedTopicIDs {
					excluded[disc.SubjectID][id] = true
				}
				continue
			}
			// Intersect: only ids excluded by every referencing discipline stay out.
			current := excluded[disc.SubjectID]
			next := make(map[string]bool)
			for _, id := range disc.ExcludedTopicIDs {
				if current[id] {
					next[id] = true
				}
			}
			excluded[disc.SubjectID] = next
		}
	}

	subjects := make([]domain.Subject, 0, len(order))
	for _, subjectID := range order {
		subject, err := r.subjects.LoadSubject(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, pruneSubject(subject, excluded[subjectID]))
	}
	return subjects, nil
}

// pruneSubject drops excluded topics and subtopics from the tree.
func pruneSubject(subject domain.Subject, excluded map[string]bool) domain.Subject {
	if len(excluded) == 0 {
		return subject
	}
	topics := make([]domain.Topic, 0, len(subject.Topics))
	for _, topic := range subject.Topics {
		if excluded[topic.ID] {
			continue
		}
		subTopics := make([]domain.SubTopic, 0, len(topic.SubTopics))
		for _, sub := range topic.SubTopics {
			if excluded[sub.ID] {
				continue
			}
			subTopics = append(subTopics, sub)
		}
		topic.SubTopics = subTopics
		topics = append(topics, topic)
	}
	subject.Topics = topics
	return subject
}
