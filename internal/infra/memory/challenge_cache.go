package memory

import (
	"context"
	"sync"
	"time"

	"concurseiro-challenge-service/internal/domain"
)

// ChallengeCache keeps generated daily challenges in-process with a TTL, so
// repeat requests within the day skip the progress-document load.
type ChallengeCache struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedChallenge
}

type cachedChallenge struct {
	challenge *domain.DailyChallenge
	expiresAt time.Time
}

func NewChallengeCache(ttl time.Duration) *ChallengeCache {
	return &ChallengeCache{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]cachedChallenge),
	}
}

func (c *ChallengeCache) Get(_ context.Context, studentID string, challengeType domain.ChallengeType, day string) (*domain.DailyChallenge, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[cacheKey(studentID, challengeType, day)]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false
	}
	return entry.challenge, true
}

func (c *ChallengeCache) Put(_ context.Context, studentID string, challengeType domain.ChallengeType, challenge *domain.DailyChallenge) {
	if challenge == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(studentID, challengeType, challenge.Date)] = cachedChallenge{
		challenge: challenge,
		expiresAt: c.clock().Add(c.ttl),
	}
}

func cacheKey(studentID string, challengeType domain.ChallengeType, day string) string {
	return studentID + ":" + string(challengeType) + ":" + day
}
