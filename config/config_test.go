package config

import (
	"testing"

	"stakelend/core"

	"github.com/asaskevich/govalidator"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := core.Config{
		App: core.App{
			Genesis:         1696118400,
			SecondsPerEpoch: 300,
		},
		Gateway: core.Gateway{
			Endpoint: "https://gateway.example.com",
		},
	}

	defaultConfig(&cfg)

	assert.Equal(t, "UTC", cfg.App.Location)
	assert.Equal(t, uint64(32719), cfg.App.GenesisEpoch)
	assert.Equal(t, uint64(105120), cfg.App.EpochsPerYear)
	assert.Equal(t, uint64(2016), cfg.App.EpochsPerWeek)
	assert.Equal(t, "0.2", cfg.Interest.DefPrimary)
	assert.Equal(t, "0.45", cfg.Interest.StableCoinQuadratic)

	ok, err := govalidator.ValidateStruct(cfg)
	assert.True(t, ok)
	assert.Nil(t, err)

	cfg.Gateway.Endpoint = ""
	_, err = govalidator.ValidateStruct(cfg)
	assert.NotNil(t, err)
}
