package keeper

import (
	"fmt"
	"sort"

	"stakelend/core"
	"stakelend/internal/epoch"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
)

// Keeper newest-first weekly stake snapshots of the tracked validators
type Keeper struct {
	state  *core.Keeper
	series map[string]*core.ValidatorSeries
}

// New keeper over the persisted aggregate and series
func New(state *core.Keeper, series []*core.ValidatorSeries) *Keeper {
	if state == nil {
		state = &core.Keeper{LastStaked: decimal.Zero}
	}

	k := &Keeper{
		state:  state,
		series: make(map[string]*core.ValidatorSeries, len(series)),
	}

	for _, s := range series {
		k.series[s.Validator] = s
	}

	return k
}

// State the keeper aggregate
func (k *Keeper) State() *core.Keeper {
	return k.state
}

// Validators tracked validators in name order
func (k *Keeper) Validators() []string {
	validators := make([]string, 0, len(k.series))
	for v := range k.series {
		validators = append(validators, v)
	}

	sort.Strings(validators)
	return validators
}

// Tracked reports whether the validator is tracked
func (k *Keeper) Tracked(validator string) bool {
	_, ok := k.series[validator]
	return ok
}

// Series snapshots of the validator, nil when untracked
func (k *Keeper) Series(validator string) *core.ValidatorSeries {
	return k.series[validator]
}

// Record stores an observation taken at epoch e.
//
// An observation in a later week than the newest snapshot is prepended and
// the series is trimmed to the retention window; otherwise it replaces the
// newest snapshot.
func (k *Keeper) Record(validator string, obs core.Observation, e uint64) {
	snapshot := core.StakeSnapshot{
		LsuSupply:   obs.LsuSupply,
		StakedValue: obs.StakedValue,
		Epoch:       e,
	}

	s, ok := k.series[validator]
	if !ok {
		k.series[validator] = &core.ValidatorSeries{
			Validator: validator,
			Snapshots: []core.StakeSnapshot{snapshot},
		}
		return
	}

	if len(s.Snapshots) == 0 || epoch.WeekIndex(e) > epoch.WeekIndex(s.Snapshots[0].Epoch) {
		s.Snapshots = append([]core.StakeSnapshot{snapshot}, s.Snapshots...)
		if len(s.Snapshots) > epoch.RetentionWeeks {
			s.Snapshots = s.Snapshots[:epoch.RetentionWeeks]
		}

		return
	}

	s.Snapshots[0] = snapshot
}

// Remove stops tracking the validator
func (k *Keeper) Remove(validator string) {
	delete(k.series, validator)
}

// Log removes the validators in remove, records every validator still
// tracked, then starts tracking the validators in add. LastStaked becomes
// the total staked value observed across the tracked set.
func (k *Keeper) Log(e uint64, observations map[string]core.Observation, add, remove []string) error {
	var tracked, fresh []string
	for _, v := range k.Validators() {
		if !contains(remove, v) {
			tracked = append(tracked, v)
		}
	}

	for _, v := range add {
		if contains(tracked, v) || contains(fresh, v) {
			continue
		}

		if _, ok := observations[v]; !ok {
			return fmt.Errorf("%w: %s", core.ErrValidatorNotFound, v)
		}

		fresh = append(fresh, v)
	}

	var (
		c      number.Checked
		staked = decimal.Zero
	)

	for _, v := range tracked {
		obs, ok := observations[v]
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrValidatorNotFound, v)
		}

		staked = c.Add(staked, obs.StakedValue)
	}

	for _, v := range fresh {
		staked = c.Add(staked, observations[v].StakedValue)
	}

	if err := c.Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
	}

	for _, v := range remove {
		k.Remove(v)
	}

	for _, v := range append(tracked, fresh...) {
		k.Record(v, observations[v], e)
	}

	k.state.LastStaked = staked
	k.state.LastStakeEpoch = e
	k.state.Validators = k.Validators()
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}

	return false
}

// EstimateAPY mean of the one week APY of every validator with a fresh
// weekly baseline, zero when none has one. Implements core.IYieldFloor.
func (k *Keeper) EstimateAPY(e uint64) (decimal.Decimal, error) {
	var (
		c     number.Checked
		sum   = decimal.Zero
		count int64
	)

	week := epoch.WeekIndex(e)
	for _, v := range k.Validators() {
		apy, ok := validatorAPY(k.series[v].Snapshots, week)
		if !ok {
			continue
		}

		sum = c.Add(sum, apy)
		count++
	}

	if err := c.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
	}

	if count == 0 {
		return decimal.Zero, nil
	}

	return c.Div(sum, decimal.NewFromInt(count)), c.Err()
}

// validatorAPY weekly growth of the stake unit exchange rate between the two
// newest snapshots, scaled to one week of epochs. Stale or gapped series do
// not contribute.
func validatorAPY(snapshots []core.StakeSnapshot, week uint64) (decimal.Decimal, bool) {
	if len(snapshots) < 2 {
		return decimal.Zero, false
	}

	latest, previous := snapshots[0], snapshots[1]
	latestWeek := epoch.WeekIndex(latest.Epoch)
	if latestWeek != week || latestWeek == 0 {
		return decimal.Zero, false
	}

	if epoch.WeekIndex(previous.Epoch) != latestWeek-1 {
		return decimal.Zero, false
	}

	if latest.LsuSupply.IsZero() || previous.LsuSupply.IsZero() || latest.Epoch <= previous.Epoch {
		return decimal.Zero, false
	}

	var local number.Checked
	latestIndex := local.Div(latest.StakedValue, latest.LsuSupply)
	previousIndex := local.Div(previous.StakedValue, previous.LsuSupply)
	delta := local.Sub(latestIndex, previousIndex)
	apy := local.Div(
		local.Mul(delta, decimal.NewFromInt(int64(epoch.EpochsPerWeek))),
		decimal.NewFromInt(int64(latest.Epoch-previous.Epoch)),
	)

	if local.Err() != nil {
		return decimal.Zero, false
	}

	return apy, true
}
