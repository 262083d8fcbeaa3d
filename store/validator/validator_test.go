package validator

import (
	"testing"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotsCodec(t *testing.T) {
	snapshots := []core.StakeSnapshot{
		{LsuSupply: number.Decimal("1000.000000000000000001"), StakedValue: number.Decimal("1010.5"), Epoch: 34745},
		{LsuSupply: number.Decimal("1000"), StakedValue: number.Decimal("1000"), Epoch: 32729},
	}

	data, err := encodeSnapshots(snapshots)
	require.Nil(t, err)

	decoded, err := decodeSnapshots(data)
	require.Nil(t, err)
	require.Len(t, decoded, 2)

	for i := range snapshots {
		assert.True(t, snapshots[i].LsuSupply.Equal(decoded[i].LsuSupply))
		assert.True(t, snapshots[i].StakedValue.Equal(decoded[i].StakedValue))
		assert.Equal(t, snapshots[i].Epoch, decoded[i].Epoch)
	}

	empty, err := decodeSnapshots(nil)
	require.Nil(t, err)
	assert.Empty(t, empty)
}
