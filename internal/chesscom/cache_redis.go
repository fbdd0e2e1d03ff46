package chesscom

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/chess-coach-go/internal/obslog"
)

const (
	archiveKeyPrefix = "coach:archive:"
	ttlArchive       = 30 * 24 * time.Hour
)

// RedisCache shares fetched archives across processes. Failures are treated
// as misses; the client falls back to the network.
type RedisCache struct{ rdb *redis.Client }

func NewRedisCache(rdb *redis.Client) *RedisCache { return &RedisCache{rdb: rdb} }

// NewRedisCacheURL dials the redis instance described by a redis:// URL.
func NewRedisCacheURL(rawURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(redis.NewClient(opts)), nil
}

func (r *RedisCache) key(url string) string { return archiveKeyPrefix + url }

func (r *RedisCache) Get(ctx context.Context, url string) ([]Game, bool) {
	raw, err := r.rdb.Get(ctx, r.key(url)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		obslog.L().Debug("archive cache read failed", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	var games []Game
	if err := json.Unmarshal(raw, &games); err != nil {
		obslog.L().Debug("archive cache entry corrupt", zap.String("url", url), zap.Error(err))
		return nil, false
	}
	return games, true
}

func (r *RedisCache) Put(ctx context.Context, url string, games []Game) {
	raw, err := json.Marshal(games)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, r.key(url), raw, ttlArchive).Err(); err != nil {
		obslog.L().Debug("archive cache write failed", zap.String("url", url), zap.Error(err))
	}
}
