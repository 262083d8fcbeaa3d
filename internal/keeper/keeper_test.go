package keeper

import (
	"errors"
	"testing"

	"stakelend/core"
	"stakelend/internal/epoch"
	"stakelend/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func week(n uint64) uint64 {
	return epoch.GenesisEpoch + (n-1)*epoch.EpochsPerWeek + 10
}

func obs(lsu, staked string) core.Observation {
	return core.Observation{
		LsuSupply:   number.Decimal(lsu),
		StakedValue: number.Decimal(staked),
	}
}

func TestRecordCollapsesWeek(t *testing.T) {
	k := New(nil, nil)

	k.Record("v1", obs("100", "100"), week(1))
	k.Record("v1", obs("100", "100.5"), week(1)+20)

	s := k.Series("v1")
	require.Len(t, s.Snapshots, 1)
	assert.Equal(t, week(1)+20, s.Snapshots[0].Epoch)
	assert.True(t, s.Snapshots[0].StakedValue.Equal(number.Decimal("100.5")))
}

func TestEstimateAPY(t *testing.T) {
	k := New(nil, nil)

	k.Record("v1", obs("100", "100"), week(1))
	apy, err := k.EstimateAPY(week(1))
	require.Nil(t, err)
	assert.True(t, apy.IsZero(), "single snapshot")

	k.Record("v1", obs("100", "101"), week(2))
	require.Len(t, k.Series("v1").Snapshots, 2)

	apy, err = k.EstimateAPY(week(2))
	require.Nil(t, err)
	// 0.01 * 2016 / 2016
	assert.Equal(t, "0.01", apy.String())

	// stale in the following week
	apy, err = k.EstimateAPY(week(3))
	require.Nil(t, err)
	assert.True(t, apy.IsZero())

	// week 3 skipped
	k.Record("v1", obs("100", "102"), week(4))
	apy, err = k.EstimateAPY(week(4))
	require.Nil(t, err)
	assert.True(t, apy.IsZero())

	k.Record("v1", obs("100", "103"), week(5))
	apy, err = k.EstimateAPY(week(5))
	require.Nil(t, err)
	assert.Equal(t, "0.01", apy.String())
}

func TestEstimateAPYMean(t *testing.T) {
	k := New(nil, nil)

	k.Record("v1", obs("100", "100"), week(1))
	k.Record("v1", obs("100", "101"), week(2))
	k.Record("v2", obs("100", "100"), week(1))
	k.Record("v2", obs("100", "103"), week(2))
	// zero supply never contributes
	k.Record("v3", obs("0", "0"), week(1))
	k.Record("v3", obs("0", "10"), week(2))

	apy, err := k.EstimateAPY(week(2))
	require.Nil(t, err)
	// (0.01 + 0.03) / 2
	assert.Equal(t, "0.02", apy.String())
}

func TestRetention(t *testing.T) {
	k := New(nil, nil)

	for n := uint64(1); n <= 60; n++ {
		k.Record("v1", obs("100", "100"), week(n))
	}

	s := k.Series("v1")
	require.Len(t, s.Snapshots, epoch.RetentionWeeks)
	assert.Equal(t, week(60), s.Snapshots[0].Epoch)
	assert.Equal(t, week(9), s.Snapshots[epoch.RetentionWeeks-1].Epoch)
}

func TestLog(t *testing.T) {
	k := New(nil, nil)

	observations := map[string]core.Observation{
		"v1": obs("100", "110"),
		"v2": obs("200", "220"),
	}

	require.Nil(t, k.Log(week(1), observations, []string{"v1", "v2", "v1"}, nil))
	assert.Equal(t, []string{"v1", "v2"}, k.Validators())
	assert.True(t, k.State().LastStaked.Equal(number.Decimal("330")))
	assert.Equal(t, week(1), k.State().LastStakeEpoch)

	observations["v1"] = obs("100", "120")
	require.Nil(t, k.Log(week(2), observations, nil, []string{"v2"}))
	assert.Equal(t, []string{"v1"}, k.Validators())
	assert.Len(t, k.Series("v1").Snapshots, 2)
	assert.True(t, k.State().LastStaked.Equal(number.Decimal("120")))
	assert.Equal(t, []string{"v1"}, []string(k.State().Validators))

	err := k.Log(week(2), map[string]core.Observation{}, []string{"v3"}, nil)
	assert.True(t, errors.Is(err, core.ErrValidatorNotFound))
	assert.Equal(t, []string{"v1"}, k.Validators())
	assert.True(t, k.State().LastStaked.Equal(number.Decimal("120")))
}

func TestLoad(t *testing.T) {
	state := &core.Keeper{LastStaked: number.Decimal("5"), LastStakeEpoch: week(1)}
	series := []*core.ValidatorSeries{
		{Validator: "v1", Snapshots: []core.StakeSnapshot{{LsuSupply: number.Decimal("1"), StakedValue: number.Decimal("1"), Epoch: week(1)}}},
	}

	k := New(state, series)
	assert.True(t, k.Tracked("v1"))
	assert.False(t, k.Tracked("v2"))

	k.Record("v1", obs("1", "1.01"), week(2))
	assert.Len(t, series[0].Snapshots, 2)
}
