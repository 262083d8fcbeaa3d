package epoch

import (
	"testing"
	"time"

	"stakelend/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	genesis := int64(1696118400)

	e, err := Current(time.Unix(genesis+601, 0), genesis, 300, GenesisEpoch)
	require.Nil(t, err)
	assert.Equal(t, GenesisEpoch+2, e)

	_, err = Current(time.Unix(genesis, 0), genesis, 0, GenesisEpoch)
	assert.NotNil(t, err)

	_, err = Current(time.Unix(genesis-1, 0), genesis, 300, GenesisEpoch)
	assert.NotNil(t, err)
}

func TestWeekIndex(t *testing.T) {
	cases := map[uint64]uint64{
		GenesisEpoch - 5:                 0,
		GenesisEpoch:                     0,
		GenesisEpoch + 1:                 1,
		GenesisEpoch + EpochsPerWeek:     1,
		GenesisEpoch + EpochsPerWeek + 1: 2,
		GenesisEpoch + 3*EpochsPerWeek:   3,
	}

	for e, week := range cases {
		assert.Equal(t, week, WeekIndex(e), "epoch %d", e)
	}
}

func TestYearFraction(t *testing.T) {
	var c number.Checked
	assert.True(t, YearFraction(&c, EpochsPerYear).Equal(number.Decimal("1")))
	assert.True(t, YearFraction(&c, EpochsPerYear/2).Equal(number.Decimal("0.5")))
	assert.True(t, YearFraction(&c, 0).IsZero())
	assert.Nil(t, c.Err())
}
