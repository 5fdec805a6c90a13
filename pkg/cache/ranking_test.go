package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bvggies/recommendersystem/pkg/ranker"
	"github.com/bvggies/recommendersystem/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRanker struct {
	calls int
	ids   []string
	err   error
}

func (r *countingRanker) Rank(ctx context.Context, req *ranker.Request) ([]string, error) {
	r.calls++
	return r.ids, r.err
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := NewRedisCache(utils.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })
	return mr, rc
}

func request() *ranker.Request {
	return &ranker.Request{
		PassengerID: "p-1",
		FareMax:     100,
		Candidates:  []ranker.Candidate{{ID: "a"}, {ID: "b"}},
	}
}

func TestRankingCache_HitSkipsRanker(t *testing.T) {
	mr, rc := newRedis(t)
	next := &countingRanker{ids: []string{"b", "a"}}
	cached := NewRankingCache(next, rc, time.Minute, zap.NewNop())

	first, err := cached.Rank(context.Background(), request())
	require.NoError(t, err)
	second, err := cached.Rank(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists(RankingKey(request())))
}

func TestRankingCache_ExpiredEntryCallsRanker(t *testing.T) {
	mr, rc := newRedis(t)
	next := &countingRanker{ids: []string{"a"}}
	cached := NewRankingCache(next, rc, time.Minute, zap.NewNop())

	_, err := cached.Rank(context.Background(), request())
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cached.Rank(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestRankingCache_ErrorsAreNotCached(t *testing.T) {
	mr, rc := newRedis(t)
	next := &countingRanker{err: errors.New("timeout")}
	cached := NewRankingCache(next, rc, time.Minute, zap.NewNop())

	_, err := cached.Rank(context.Background(), request())
	assert.Error(t, err)
	assert.False(t, mr.Exists(RankingKey(request())))
}

func TestRankingCache_RedisDownFallsThrough(t *testing.T) {
	mr, rc := newRedis(t)
	next := &countingRanker{ids: []string{"a", "b"}}
	cached := NewRankingCache(next, rc, time.Minute, zap.NewNop())
	mr.Close()

	ids, err := cached.Rank(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestRankingKey_DependsOnCandidates(t *testing.T) {
	a := request()
	b := request()
	b.Candidates = []ranker.Candidate{{ID: "b"}, {ID: "a"}}

	assert.NotEqual(t, RankingKey(a), RankingKey(b))
	assert.Equal(t, RankingKey(a), RankingKey(request()))
}
