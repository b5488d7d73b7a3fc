package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"chaining-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// PoolLoader fetches a language's quiz items from a backing store (file, Postgres, ...).
type PoolLoader interface {
	LoadPool(ctx context.Context, language string) ([]domain.QuizItem, error)
}

// PoolRepository caches item pools in Redis and falls back to a loader on cache miss.
// Pools are stored as: SET quiz:pool:{language} <json items> EX ttl
type PoolRepository struct {
	client *redis.Client
	loader PoolLoader
	ttl    time.Duration
	log    logrus.FieldLogger
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewPoolRepository(client *redis.Client, loader PoolLoader, ttl time.Duration, log logrus.FieldLogger) *PoolRepository {
	return &PoolRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		log:    log,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, language string) ([]domain.QuizItem, error) {
	if items, ok := r.cached(ctx, language); ok {
		return items, nil
	}

	result, err, _ := r.sf.Do(language, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if items, ok := r.cached(ctx, language); ok {
			return items, nil
		}

		items, err := r.loader.LoadPool(ctx, language)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("encode pool: %w", err)
		}
		// best-effort fill; a failed write only costs another load
		_ = r.client.Set(ctx, r.key(language), raw, r.ttlWithJitter()).Err()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuizItem), nil
}

// Invalidate removes the cached pool for a language.
func (r *PoolRepository) Invalidate(ctx context.Context, language string) error {
	return r.client.Del(ctx, r.key(language)).Err()
}

func (r *PoolRepository) cached(ctx context.Context, language string) ([]domain.QuizItem, bool) {
	raw, err := r.client.Get(ctx, r.key(language)).Bytes()
	if err != nil {
		if !isMiss(err) {
			// Redis is down or unreachable; fall through to the loader.
			r.log.WithError(err).WithField("language", language).Warn("pool cache read failed")
		}
		return nil, false
	}
	var items []domain.QuizItem
	if err := json.Unmarshal(raw, &items); err != nil {
		r.log.WithError(err).WithField("language", language).Warn("discarding undecodable cached pool")
		return nil, false
	}
	return items, true
}

func (r *PoolRepository) key(language string) string {
	return "quiz:pool:" + language
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// isMiss reports whether err is a plain cache miss.
func isMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
