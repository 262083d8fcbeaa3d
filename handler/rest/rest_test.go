package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type poolStore struct {
	core.IPoolStore
	pools []*core.Pool
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	return s.pools, nil
}

type poolService struct {
	core.IPoolService
	pools map[string]*core.Pool
}

func (s *poolService) Quote(ctx context.Context, underlying string) (*core.PoolQuote, error) {
	pool, ok := s.pools[underlying]
	if !ok {
		return nil, core.ErrPoolNotFound
	}

	return &core.PoolQuote{
		Pool:         pool,
		Epoch:        1200,
		DepositIndex: pool.DepositIndex,
		LoanIndex:    pool.LoanIndex,
		Available:    pool.VaultBalance,
	}, nil
}

func (s *poolService) RedemptionValue(ctx context.Context, underlying string, shares decimal.Decimal) (decimal.Decimal, error) {
	pool, ok := s.pools[underlying]
	if !ok {
		return decimal.Zero, core.ErrPoolNotFound
	}

	return shares.Mul(pool.DepositIndex), nil
}

type operations struct {
	core.IOperationStore
	asset string
	from  int64
	limit int
}

func (o *operations) List(ctx context.Context, asset string, fromID int64, limit int) ([]*core.Operation, error) {
	o.asset, o.from, o.limit = asset, fromID, limit
	return []*core.Operation{{ID: fromID + 1, Action: core.ActionTypeAddLiquidity, Asset: asset}}, nil
}

type keeperService struct {
	core.IKeeperService
}

func (keeperService) EstimateAPY(ctx context.Context) (decimal.Decimal, error) {
	return number.Decimal("0.05"), nil
}

func (keeperService) Series(ctx context.Context, validator string) (*core.ValidatorSeries, error) {
	return nil, core.ErrValidatorNotFound
}

type response struct {
	Data json.RawMessage `json:"data"`
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
}

func get(t *testing.T, h http.Handler, target string) (int, response) {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", target, nil))

	var resp response
	require.Nil(t, json.NewDecoder(w.Body).Decode(&resp))
	return w.Code, resp
}

func newHandler() http.Handler {
	return newHandlerWith(&operations{})
}

func newHandlerWith(ops core.IOperationStore) http.Handler {
	pool := core.NewPool("xrd", "dx-xrd", core.InterestModelDefault, number.Decimal("0.1"))
	pool.DepositIndex = number.Decimal("1.5")
	pool.VaultBalance = number.Decimal("100")

	return Handle(
		&poolStore{pools: []*core.Pool{pool}},
		ops,
		&poolService{pools: map[string]*core.Pool{"xrd": pool}},
		keeperService{},
		nil,
	)
}

func TestPools(t *testing.T) {
	h := newHandler()

	code, resp := get(t, h, "/pools")
	assert.Equal(t, http.StatusOK, code)

	var pools []map[string]interface{}
	require.Nil(t, json.Unmarshal(resp.Data, &pools))
	require.Len(t, pools, 1)
	assert.Equal(t, "xrd", pools[0]["underlying"])
	assert.Equal(t, "1.5", pools[0]["deposit_index"])

	code, resp = get(t, h, "/pools/btc")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, int(core.ErrPoolNotFound), resp.Code)
}

func TestPoolRedemption(t *testing.T) {
	h := newHandler()

	code, resp := get(t, h, "/pools/xrd/redemption?shares=10")
	assert.Equal(t, http.StatusOK, code)

	var body map[string]string
	require.Nil(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, "15", body["value"])

	code, _ = get(t, h, "/pools/xrd/redemption?shares=ten")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestKeeper(t *testing.T) {
	h := newHandler()

	code, resp := get(t, h, "/keeper/apy")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"apy":"0.05"}`, string(resp.Data))

	code, resp = get(t, h, "/keeper/validators/v1")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, int(core.ErrValidatorNotFound), resp.Code)
}

func TestOperations(t *testing.T) {
	ops := &operations{}
	h := newHandlerWith(ops)

	code, resp := get(t, h, "/pools/xrd/operations?from=7")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "xrd", ops.asset)
	assert.Equal(t, int64(7), ops.from)
	assert.Equal(t, 50, ops.limit)

	var items []core.Operation
	require.Nil(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, core.ActionTypeAddLiquidity, items[0].Action)

	code, _ = get(t, h, "/pools/xrd/operations?limit=1000")
	assert.Equal(t, http.StatusBadRequest, code)
}
