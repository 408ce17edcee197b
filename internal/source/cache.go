package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/model"
)

// Cached decorates a CandidateSource with a Redis read-through cache.
// Retrieval pools are stable for the lifetime of a dataset snapshot, so a
// short TTL trades a little staleness for skipping the trigram scan on
// repeated screenings of the same subject.
type Cached struct {
	inner CandidateSource
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewCached wraps inner with a cache on rdb.
func NewCached(inner CandidateSource, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cached {
	return &Cached{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// Retrieve serves from cache when possible. Cache failures degrade to the
// inner source; retrieval must keep working when Redis is down.
func (c *Cached) Retrieve(ctx context.Context, query *model.Entity, limit int) ([]Candidate, error) {
	key, err := cacheKey(query, limit)
	if err != nil {
		return c.inner.Retrieve(ctx, query, limit)
	}

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached []Candidate
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.log.Warn("dropping undecodable cache entry", zap.String("key", key))
	}

	candidates, err := c.inner.Retrieve(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(candidates); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn("cache write failed", zap.Error(err))
		}
	}
	return candidates, nil
}

// cacheKey hashes the full query. Property value order is part of the key;
// two queries differing only in alias order hash apart, which costs a
// cache miss but never a wrong answer.
func cacheKey(query *model.Entity, limit int) (string, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("screener:candidates:%s:%d", hex.EncodeToString(sum[:8]), limit), nil
}
