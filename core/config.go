package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config stakelend config
type Config struct {
	App      App       `json:"app"`
	DB       db.Config `json:"db"`
	Gateway  Gateway   `json:"gateway"`
	Interest Interest  `json:"interest"`
	Keeper   KeeperJob `json:"keeper"`
	Staking  Staking   `json:"staking"`
	Accrual  Accrual   `json:"accrual"`
	Redis    Redis     `json:"redis"`
}

// App app config
type App struct {
	// unix seconds of GenesisEpoch
	Genesis         int64  `json:"genesis" valid:"required"`
	SecondsPerEpoch int64  `json:"seconds_per_epoch" valid:"required"`
	GenesisEpoch    uint64 `json:"genesis_epoch"`
	EpochsPerYear   uint64 `json:"epochs_per_year"`
	EpochsPerWeek   uint64 `json:"epochs_per_week"`
	Location        string `json:"location"`
}

// Gateway validator gateway config
type Gateway struct {
	Endpoint string `json:"endpoint" valid:"url,required"`
	// seconds
	CacheTTL int64 `json:"cache_ttl"`
}

// Interest rate curve coefficients, decimal strings
type Interest struct {
	DefPrimary          string `json:"def_primary" valid:"float"`
	DefQuadratic        string `json:"def_quadratic" valid:"float"`
	StableCoinPrimary   string `json:"stable_coin_primary" valid:"float"`
	StableCoinQuadratic string `json:"stable_coin_quadratic" valid:"float"`
}

// KeeperJob validator keeper job config
type KeeperJob struct {
	Validators []string `json:"validators"`
	Spec       string   `json:"spec"`
}

// Staking staking pool config
type Staking struct {
	StakeToken string `json:"stake_token"`
	ShareToken string `json:"share_token"`
}

// Accrual index tick config
type Accrual struct {
	Spec string `json:"spec"`
}

// Redis quote cache config
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
	// seconds, zero disables the cache
	QuoteTTL int64 `json:"quote_ttl"`
}
