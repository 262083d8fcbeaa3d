package keeper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargets(t *testing.T) {
	assert.Equal(t,
		[]string{"v1", "v3", "v4"},
		targets([]string{"v1", "v2", "v3"}, []string{"v4", "v1"}, []string{"v2"}),
	)

	// removed and added again in one call
	assert.Equal(t,
		[]string{"v1", "v2"},
		targets([]string{"v1", "v2"}, []string{"v2"}, []string{"v2"}),
	)

	assert.Empty(t, targets(nil, nil, []string{"v1"}))
}
