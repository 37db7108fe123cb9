package redis

import (
	"context"
	"encoding/json"
	"time"

	"concurseiro-challenge-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ChallengeCache stores generated daily challenges as JSON under
// challenge:{studentID}:{type}:{day}. Entries expire on their own; the day in
// the key already makes stale reads impossible, the TTL just bounds memory.
type ChallengeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChallengeCache(client *redis.Client, ttl time.Duration) *ChallengeCache {
	return &ChallengeCache{client: client, ttl: ttl}
}

func (c *ChallengeCache) Get(ctx context.Context, studentID string, challengeType domain.ChallengeType, day string) (*domain.DailyChallenge, bool) {
	raw, err := c.client.Get(ctx, c.key(studentID, challengeType, day)).Bytes()
	if err != nil {
		return nil, false
	}
	var challenge domain.DailyChallenge
	if err := json.Unmarshal(raw, &challenge); err != nil {
		return nil, false
	}
	return &challenge, true
}

// Put is best-effort: a write failure only costs a regeneration later.
func (c *ChallengeCache) Put(ctx context.Context, studentID string, challengeType domain.ChallengeType, challenge *domain.DailyChallenge) {
	if challenge == nil {
		return
	}
	raw, err := json.Marshal(challenge)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(studentID, challengeType, challenge.Date), raw, c.ttl).Err()
}

func (c *ChallengeCache) key(studentID string, challengeType domain.ChallengeType, day string) string {
	return "challenge:" + studentID + ":" + string(challengeType) + ":" + day
}
