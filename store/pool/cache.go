package pool

import (
	"context"
	"fmt"
	"time"

	"stakelend/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache read-through pool cache, entries are dropped on update
func Cache(store core.IPoolStore, exp time.Duration) core.IPoolStore {
	return &cachePoolStore{
		IPoolStore: store,
		cache:      gcache.New(256).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cachePoolStore struct {
	core.IPoolStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePoolStore) Find(ctx context.Context, underlying string) (*core.Pool, error) {
	key := s.poolKey(underlying)
	if v, err := s.cache.Get(key); err == nil {
		if pool, ok := v.(*core.Pool); ok {
			cp := *pool
			return &cp, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		pool, err := s.IPoolStore.Find(ctx, underlying)
		if err != nil {
			return nil, err
		}

		s.cachePool(pool)
		return pool, nil
	})
	if err != nil {
		return nil, err
	}

	cp := *(v.(*core.Pool))
	return &cp, nil
}

func (s *cachePoolStore) Create(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	s.cache.Remove(s.poolKey(pool.Underlying))
	return s.IPoolStore.Create(ctx, tx, pool)
}

// Update drops the entry instead of replacing it, tx may still roll back
func (s *cachePoolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	key := s.poolKey(pool.Underlying)
	s.cache.Remove(key)
	defer s.cache.Remove(key)

	return s.IPoolStore.Update(ctx, tx, pool)
}

func (s *cachePoolStore) cachePool(pool *core.Pool) {
	cp := *pool
	_ = s.cache.Set(s.poolKey(pool.Underlying), &cp)
}

func (s *cachePoolStore) poolKey(underlying string) string {
	return fmt.Sprintf("pool:underlying:%s", underlying)
}
