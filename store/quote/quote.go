package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stakelend/core"

	"github.com/go-redis/redis"
)

type quoteStore struct {
	Redis *redis.Client
	ttl   time.Duration
}

// New new redis backed quote store
func New(redis *redis.Client, ttl time.Duration) core.IQuoteStore {
	return &quoteStore{
		Redis: redis,
		ttl:   ttl,
	}
}

func (s *quoteStore) SaveQuote(ctx context.Context, key core.QuoteKey, quote *core.PoolQuote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return err
	}

	return s.Redis.Set(quoteCacheKey(key), data, s.ttl).Err()
}

// FindQuote redis.Nil when missing
func (s *quoteStore) FindQuote(ctx context.Context, key core.QuoteKey) (*core.PoolQuote, error) {
	bs, err := s.Redis.Get(quoteCacheKey(key)).Bytes()
	if err != nil {
		return nil, err
	}

	var quote core.PoolQuote
	if err := json.Unmarshal(bs, &quote); err != nil {
		return nil, err
	}

	return &quote, nil
}

func quoteCacheKey(key core.QuoteKey) string {
	return fmt.Sprintf("stakelend:quote:%s:%d:%d:%s", key.Underlying, key.Epoch, key.PoolVersion, key.Floor.String())
}
