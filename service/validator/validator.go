package validator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stakelend/core"
	"stakelend/pkg/number"
	"stakelend/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type totals struct {
	ShareSupply decimal.Decimal `json:"stake_unit_supply"`
	StakedValue decimal.Decimal `json:"total_staked"`
}

type unstakeResponse struct {
	ClaimEpoch  uint64          `json:"claim_epoch"`
	ClaimAmount decimal.Decimal `json:"claim_amount"`
}

type service struct {
	endpoint string
	cache    gcache.Cache
}

// New validator accessor over the gateway http api
func New(cfg *core.Config) core.IValidatorService {
	ttl := time.Duration(cfg.Gateway.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &service{
		endpoint: strings.TrimSuffix(cfg.Gateway.Endpoint, "/"),
		cache:    gcache.New(512).LRU().Expiration(ttl).Build(),
	}
}

func (s *service) url(validator, action string) string {
	u := fmt.Sprintf("%s/validators/%s", s.endpoint, validator)
	if action != "" {
		u += "/" + action
	}

	return u
}

func (s *service) execute(ctx context.Context, method, url string, body, resp interface{}) error {
	_, err := resthttp.Execute(resthttp.Request(ctx), method, url, body, resp)

	var httpErr *resthttp.Error
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return core.ErrValidatorNotFound
	}

	return err
}

func (s *service) totals(ctx context.Context, validator string) (*totals, error) {
	if v, err := s.cache.Get(validator); err == nil {
		if t, ok := v.(*totals); ok {
			return t, nil
		}
	}

	var t totals
	if err := s.execute(ctx, http.MethodGet, s.url(validator, ""), nil, &t); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("validator", validator).Errorln("fetch validator totals")
		return nil, err
	}

	_ = s.cache.Set(validator, &t)
	return &t, nil
}

func (s *service) TotalShareSupply(ctx context.Context, validator string) (decimal.Decimal, error) {
	t, err := s.totals(ctx, validator)
	if err != nil {
		return decimal.Zero, err
	}

	return t.ShareSupply, nil
}

func (s *service) TotalStakedValue(ctx context.Context, validator string) (decimal.Decimal, error) {
	t, err := s.totals(ctx, validator)
	if err != nil {
		return decimal.Zero, err
	}

	return t.StakedValue, nil
}

// RedemptionValue shares * staked / supply
func (s *service) RedemptionValue(ctx context.Context, validator string, shares decimal.Decimal) (decimal.Decimal, error) {
	t, err := s.totals(ctx, validator)
	if err != nil {
		return decimal.Zero, err
	}

	if t.ShareSupply.IsZero() {
		return decimal.Zero, nil
	}

	var c number.Checked
	value := c.Div(c.Mul(shares, t.StakedValue), t.ShareSupply)
	if err := c.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
	}

	return value, nil
}

func (s *service) Stake(ctx context.Context, validator string, bucket core.Bucket) (core.Bucket, error) {
	defer s.cache.Remove(validator)

	var units core.Bucket
	if err := s.execute(ctx, http.MethodPost, s.url(validator, "stake"), bucket, &units); err != nil {
		return core.Bucket{}, err
	}

	return units, nil
}

func (s *service) Unstake(ctx context.Context, validator string, shares core.Bucket) (*core.UnstakeReceipt, error) {
	defer s.cache.Remove(validator)

	var resp unstakeResponse
	if err := s.execute(ctx, http.MethodPost, s.url(validator, "unstake"), shares, &resp); err != nil {
		return nil, err
	}

	return &core.UnstakeReceipt{
		Validator:   validator,
		ClaimEpoch:  resp.ClaimEpoch,
		ClaimAmount: resp.ClaimAmount,
	}, nil
}
