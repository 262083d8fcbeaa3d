package id

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDFrom(t *testing.T) {
	a := TraceIDFrom("deposit", "xrd", "100")
	assert.Equal(t, a, TraceIDFrom("deposit", "xrd", "100"))
	assert.NotEqual(t, a, TraceIDFrom("deposit", "xrd", "101"))

	u, err := uuid.FromString(a)
	require.Nil(t, err)
	assert.Equal(t, byte(3), u.Version())
}

func TestGenTraceID(t *testing.T) {
	assert.NotEqual(t, GenTraceID(), GenTraceID())
}
