package views

import (
	"stakelend/core"
	"stakelend/internal/epoch"

	"github.com/shopspring/decimal"
)

// Snapshot weekly validator snapshot
type Snapshot struct {
	Week        uint64          `json:"week"`
	Epoch       uint64          `json:"epoch"`
	LsuSupply   decimal.Decimal `json:"lsu_supply"`
	StakedValue decimal.Decimal `json:"staked_value"`
}

// Series validator series view, newest first
type Series struct {
	Validator string     `json:"validator"`
	Snapshots []Snapshot `json:"snapshots"`
}

// SeriesView series view
func SeriesView(series *core.ValidatorSeries) Series {
	view := Series{
		Validator: series.Validator,
		Snapshots: make([]Snapshot, 0, len(series.Snapshots)),
	}

	for _, s := range series.Snapshots {
		view.Snapshots = append(view.Snapshots, Snapshot{
			Week:        epoch.WeekIndex(s.Epoch),
			Epoch:       s.Epoch,
			LsuSupply:   s.LsuSupply,
			StakedValue: s.StakedValue,
		})
	}

	return view
}
