package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"chaining-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// PoolLoader fetches a language's quiz items from a backing store (file, Postgres, ...).
type PoolLoader interface {
	LoadPool(ctx context.Context, language string) ([]domain.QuizItem, error)
}

// PoolRepository caches item pools with TTL to avoid repeated loader hits.
type PoolRepository struct {
	loader PoolLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedPool
}

type cachedPool struct {
	items     []domain.QuizItem
	expiresAt time.Time
}

func NewPoolRepository(loader PoolLoader, ttl time.Duration) *PoolRepository {
	return &PoolRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedPool),
	}
}

func (r *PoolRepository) GetPool(ctx context.Context, language string) ([]domain.QuizItem, error) {
	if items, ok := r.cached(language, r.clock()); ok {
		return items, nil
	}

	result, err, _ := r.sf.Do(language, func() (interface{}, error) {
		now := r.clock()
		if items, ok := r.cached(language, now); ok {
			return items, nil
		}

		items, err := r.loader.LoadPool(ctx, language)
		if err != nil {
			return nil, err
		}

		expiresAt := now.Add(r.ttlWithJitter())
		r.mu.Lock()
		r.cache[language] = cachedPool{items: items, expiresAt: expiresAt}
		r.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuizItem), nil
}

// Invalidate drops the cached pool for a language, e.g. after reseeding.
func (r *PoolRepository) Invalidate(language string) {
	r.mu.Lock()
	delete(r.cache, language)
	r.mu.Unlock()
}

func (r *PoolRepository) cached(language string, now time.Time) ([]domain.QuizItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[language]
	if !ok || !entry.expiresAt.After(now) {
		return nil, false
	}
	return entry.items, true
}

func (r *PoolRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticPoolLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticPoolLoader struct {
	pools map[string][]domain.QuizItem
}

func NewStaticPoolLoader(pools map[string][]domain.QuizItem) *StaticPoolLoader {
	return &StaticPoolLoader{pools: pools}
}

func (l *StaticPoolLoader) LoadPool(_ context.Context, language string) ([]domain.QuizItem, error) {
	if items, ok := l.pools[language]; ok {
		return items, nil
	}
	return nil, domain.ErrPoolNotFound
}
