package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"concurseiro-challenge-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// EnrollmentResolver resolves a student's enrollment from the backing store.
type EnrollmentResolver interface {
	GetEnrolledSubjects(ctx context.Context, studentID string) ([]domain.Subject, error)
}

// SubjectRepository caches resolved enrollments in Redis as JSON under
// student:{studentID}:subjects and collapses concurrent misses with
// singleflight. Subject trees change rarely next to how often challenges are
// requested, so a short TTL keeps content edits visible.
type SubjectRepository struct {
	client   *redis.Client
	resolver EnrollmentResolver
	ttl      time.Duration
	sf       singleflight.Group
	rnd      *rand.Rand
}

func NewSubjectRepository(client *redis.Client, resolver EnrollmentResolver, ttl time.Duration) *SubjectRepository {
	return &SubjectRepository{
		client:   client,
		resolver: resolver,
		ttl:      ttl,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SubjectRepository) GetEnrolledSubjects(ctx context.Context, studentID string) ([]domain.Subject, error) {
	key := r.key(studentID)

	if subjects, ok := r.fromCache(ctx, key); ok {
		return subjects, nil
	}

	result, err, _ := r.sf.Do(studentID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if subjects, ok := r.fromCache(ctx, key); ok {
			return subjects, nil
		}

		subjects, err := r.resolver.GetEnrolledSubjects(ctx, studentID)
		if err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(subjects); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return subjects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Subject), nil
}

func (r *SubjectRepository) fromCache(ctx context.Context, key string) ([]domain.Subject, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var subjects []domain.Subject
	if err := json.Unmarshal(raw, &subjects); err != nil {
		return nil, false
	}
	return subjects, true
}

func (r *SubjectRepository) key(studentID string) string {
	return "student:" + studentID + ":subjects"
}

func (r *SubjectRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
