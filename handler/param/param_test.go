package param

import (
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type query struct {
	Shares decimal.Decimal `json:"shares"`
	Limit  int             `json:"limit" valid:"range(1|100)"`
}

func TestBinding(t *testing.T) {
	r := httptest.NewRequest("GET", "/?shares=12.5&limit=10&other=1", nil)

	var q query
	require.Nil(t, Binding(r, &q))
	assert.Equal(t, "12.5", q.Shares.String())
	assert.Equal(t, 10, q.Limit)
}

func TestBindingInvalid(t *testing.T) {
	var q query
	assert.NotNil(t, Binding(httptest.NewRequest("GET", "/?shares=abc&limit=1", nil), &q))
	assert.NotNil(t, Binding(httptest.NewRequest("GET", "/?shares=1&limit=1000", nil), &q))
}
