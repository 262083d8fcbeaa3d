package cmd

import (
	"time"

	"stakelend/core"
	"stakelend/internal/interest"
	epochservice "stakelend/service/epoch"
	keeperservice "stakelend/service/keeper"
	poolservice "stakelend/service/pool"
	stakingservice "stakelend/service/staking"
	validatorservice "stakelend/service/validator"
	"stakelend/store/operation"
	"stakelend/store/pool"
	"stakelend/store/quote"
	"stakelend/store/staking"
	"stakelend/store/validator"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.Cache(pool.New(db), time.Duration(cfg.Gateway.CacheTTL)*time.Second)
}

func provideOperationStore(db *db.DB) core.IOperationStore {
	return operation.New(db)
}

func provideValidatorStore(db *db.DB) core.IValidatorStore {
	return validator.New(db)
}

func provideStakingStore(db *db.DB) core.IStakingStore {
	return staking.New(db)
}

// provideQuoteStore nil without redis
func provideQuoteStore() core.IQuoteStore {
	if cfg.Redis.Addr == "" || cfg.Redis.QuoteTTL <= 0 {
		return nil
	}

	return quote.New(provideRedis(), time.Duration(cfg.Redis.QuoteTTL)*time.Second)
}

// ------------------service------------------------------------

func provideEpochService() core.IEpochService {
	return epochservice.New(&cfg)
}

func provideValidatorService() core.IValidatorService {
	return validatorservice.New(&cfg)
}

func provideKeeperService(db *db.DB, validators core.IValidatorService, epochs core.IEpochService) core.IKeeperService {
	return keeperservice.New(db, provideValidatorStore(db), validators, epochs)
}

func providePoolService(db *db.DB, pools core.IPoolStore, epochs core.IEpochService, keepers core.IKeeperService) core.IPoolService {
	return poolservice.New(db, pools, provideOperationStore(db), provideQuoteStore(), epochs, keepers, interest.New(nil))
}

func provideStakingService(db *db.DB, validators core.IValidatorService, epochs core.IEpochService) core.IStakingService {
	return stakingservice.New(db, provideStakingStore(db), provideOperationStore(db), validators, epochs, cfg.Staking)
}

type services struct {
	db       *db.DB
	pools    core.IPoolStore
	ops      core.IOperationStore
	epochs   core.IEpochService
	keepers  core.IKeeperService
	poolz    core.IPoolService
	stakings core.IStakingService
}

func provideServices() *services {
	database := provideDatabase()
	epochs := provideEpochService()
	validators := provideValidatorService()
	pools := providePoolStore(database)
	keepers := provideKeeperService(database, validators, epochs)

	return &services{
		db:       database,
		pools:    pools,
		ops:      provideOperationStore(database),
		epochs:   epochs,
		keepers:  keepers,
		poolz:    providePoolService(database, pools, epochs, keepers),
		stakings: provideStakingService(database, validators, epochs),
	}
}
