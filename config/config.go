package config

import (
	"stakelend/core"
	"stakelend/internal/epoch"
	"stakelend/internal/interest"
	"stakelend/pkg/number"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("STAKELEND")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultConfig(config)

	if _, err := govalidator.ValidateStruct(config); err != nil {
		return err
	}

	apply(config)
	return nil
}

func defaultConfig(cfg *core.Config) {
	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if cfg.App.GenesisEpoch == 0 {
		cfg.App.GenesisEpoch = epoch.GenesisEpoch
	}

	if cfg.App.EpochsPerYear == 0 {
		cfg.App.EpochsPerYear = epoch.EpochsPerYear
	}

	if cfg.App.EpochsPerWeek == 0 {
		cfg.App.EpochsPerWeek = epoch.EpochsPerWeek
	}

	if cfg.Gateway.CacheTTL == 0 {
		cfg.Gateway.CacheTTL = 60
	}

	if cfg.Keeper.Spec == "" {
		cfg.Keeper.Spec = "@every 1h"
	}

	if cfg.Accrual.Spec == "" {
		cfg.Accrual.Spec = "@every 5m"
	}

	if cfg.Interest.DefPrimary == "" {
		cfg.Interest.DefPrimary = interest.DefPrimary.String()
	}

	if cfg.Interest.DefQuadratic == "" {
		cfg.Interest.DefQuadratic = interest.DefQuadratic.String()
	}

	if cfg.Interest.StableCoinPrimary == "" {
		cfg.Interest.StableCoinPrimary = interest.StableCoinPrimary.String()
	}

	if cfg.Interest.StableCoinQuadratic == "" {
		cfg.Interest.StableCoinQuadratic = interest.StableCoinQuadratic.String()
	}
}

// apply epoch constants and curve coefficients are package level
func apply(cfg *core.Config) {
	epoch.GenesisEpoch = cfg.App.GenesisEpoch
	epoch.EpochsPerYear = cfg.App.EpochsPerYear
	epoch.EpochsPerWeek = cfg.App.EpochsPerWeek

	interest.DefPrimary = number.Decimal(cfg.Interest.DefPrimary)
	interest.DefQuadratic = number.Decimal(cfg.Interest.DefQuadratic)
	interest.StableCoinPrimary = number.Decimal(cfg.Interest.StableCoinPrimary)
	interest.StableCoinQuadratic = number.Decimal(cfg.Interest.StableCoinQuadratic)
}
