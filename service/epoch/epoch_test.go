package epoch

import (
	"context"
	"testing"
	"time"

	"stakelend/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentEpochMonotonic(t *testing.T) {
	genesis := int64(1696118400)
	cfg := &core.Config{App: core.App{Genesis: genesis, SecondsPerEpoch: 300, GenesisEpoch: 100}}

	now := time.Unix(genesis+3000, 0)
	s := &service{config: cfg, now: func() time.Time { return now }}
	ctx := context.Background()

	e, err := s.CurrentEpoch(ctx)
	require.Nil(t, err)
	assert.Equal(t, uint64(110), e)

	// clock stepped back
	now = time.Unix(genesis+600, 0)
	e, err = s.CurrentEpoch(ctx)
	require.Nil(t, err)
	assert.Equal(t, uint64(110), e)

	now = time.Unix(genesis+3300, 0)
	e, err = s.CurrentEpoch(ctx)
	require.Nil(t, err)
	assert.Equal(t, uint64(111), e)
}
