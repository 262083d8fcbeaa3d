package epoch

import (
	"errors"
	"time"

	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// EpochsPerYear epochs per year, five minutes per epoch
	EpochsPerYear uint64 = 105120
	// EpochsPerWeek epochs per week
	EpochsPerWeek uint64 = 60 / 5 * 24 * 7
	// GenesisEpoch first epoch of the ledger, week indices count from here
	GenesisEpoch uint64 = 32719
	// RetentionWeeks weekly snapshots kept per validator
	RetentionWeeks = 52
)

// Current current epoch derived from wall clock time
func Current(now time.Time, genesis, secondsPerEpoch int64, genesisEpoch uint64) (uint64, error) {
	if secondsPerEpoch <= 0 {
		return 0, errors.New("secondsPerEpoch should not be less than or equal zero")
	}

	seconds := now.UTC().Unix() - genesis
	if seconds < 0 {
		return 0, errors.New("invalid epochs")
	}

	return genesisEpoch + uint64(seconds/secondsPerEpoch), nil
}

// WeekIndex week number of the epoch counted from GenesisEpoch, rounded up on remainder
func WeekIndex(e uint64) uint64 {
	if e <= GenesisEpoch {
		return 0
	}

	elapsed := e - GenesisEpoch
	week := elapsed / EpochsPerWeek
	if week*EpochsPerWeek < elapsed {
		week++
	}

	return week
}

// YearFraction delta epochs expressed in years
func YearFraction(c *number.Checked, delta uint64) decimal.Decimal {
	return c.Div(decimal.NewFromInt(int64(delta)), decimal.NewFromInt(int64(EpochsPerYear)))
}
