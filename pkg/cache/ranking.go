package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bvggies/recommendersystem/pkg/ranker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const rankingKeyPrefix = "rerank:"

// RankingCache remembers ranker answers for identical requests so repeated
// recommendation calls within the TTL skip the external round trip.
type RankingCache struct {
	next  ranker.Ranker
	cache *RedisCache
	ttl   time.Duration
	log   *zap.Logger
}

func NewRankingCache(next ranker.Ranker, cache *RedisCache, ttl time.Duration, log *zap.Logger) *RankingCache {
	return &RankingCache{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log.With(zap.String("cache", "ranking")),
	}
}

// Rank serves from Redis when possible. Cache faults never fail the call.
func (c *RankingCache) Rank(ctx context.Context, req *ranker.Request) ([]string, error) {
	key := RankingKey(req)

	var ids []string
	err := c.cache.Get(ctx, key, &ids)
	switch {
	case err == nil && len(ids) > 0:
		return ids, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.log.Warn("Ranking cache read failed", zap.Error(err))
	}

	ids, err = c.next.Rank(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, ids, c.ttl); err != nil {
		c.log.Warn("Ranking cache write failed", zap.Error(err))
	}
	return ids, nil
}

// RankingKey hashes everything the ranker sees, in order.
func RankingKey(req *ranker.Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%.2f|%.2f|%s|", req.PassengerID, req.FareMin, req.FareMax, strings.Join(req.PreferredRoutes, ","))
	for _, entry := range req.History {
		fmt.Fprintf(h, "h:%s>%s:%.2f|", entry.Origin, entry.Destination, entry.Fare)
	}
	for _, c := range req.Candidates {
		fmt.Fprintf(h, "c:%s:%.1f|", c.ID, c.Rating)
	}
	return rankingKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
