package hc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type epochs uint64

func (e epochs) CurrentEpoch(ctx context.Context) (uint64, error) {
	return uint64(e), nil
}

func TestHandle(t *testing.T) {
	w := httptest.NewRecorder()
	Handle("1.0.0-abc", epochs(1234)).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Epoch   uint64 `json:"epoch"`
			Version string `json:"version"`
		} `json:"data"`
	}
	require.Nil(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, uint64(1234), body.Data.Epoch)
	assert.Equal(t, "1.0.0-abc", body.Data.Version)
}
