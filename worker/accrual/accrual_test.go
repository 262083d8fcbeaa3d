package accrual

import (
	"context"
	"sort"
	"sync"
	"testing"

	"stakelend/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pools struct {
	core.IPoolStore
	items []*core.Pool
}

func (p pools) All(ctx context.Context) ([]*core.Pool, error) {
	return p.items, nil
}

type poolService struct {
	core.IPoolService
	mu        sync.Mutex
	refreshed []string
}

func (s *poolService) Refresh(ctx context.Context, underlying string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshed = append(s.refreshed, underlying)
	if underlying == "btc" {
		return core.ErrInvalidEpoch
	}

	return nil
}

func TestRefreshAll(t *testing.T) {
	store := pools{items: []*core.Pool{{Underlying: "xrd"}, {Underlying: "btc"}, {Underlying: "eth"}}}
	svc := &poolService{}

	w, err := New("UTC", "@every 5m", store, svc)
	require.Nil(t, err)

	// a failing pool does not stop the others
	require.Nil(t, w.onWork(context.Background()))

	sort.Strings(svc.refreshed)
	assert.Equal(t, []string{"btc", "eth", "xrd"}, svc.refreshed)
}
