package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"stakelend/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	for _, tc := range []struct {
		err    error
		code   twirp.ErrorCode
		custom int
	}{
		{core.ErrPoolNotFound, twirp.NotFound, 100100},
		{core.ErrPoolExists, twirp.AlreadyExists, 100102},
		{core.ErrOverRepayment, twirp.InvalidArgument, 100104},
		{core.ErrInsufficientLiquidity, twirp.FailedPrecondition, 100105},
		{fmt.Errorf("%w: divide by zero", core.ErrArithmeticOverflow), twirp.OutOfRange, 100106},
	} {
		twerr := From(tc.err)
		assert.Equal(t, tc.code, twerr.Code(), tc.err.Error())
		assert.Equal(t, tc.custom, Get(twerr))
	}
}

func TestFromUnknown(t *testing.T) {
	twerr := From(errors.New("boom"))
	assert.Equal(t, twirp.Internal, twerr.Code())
	assert.Equal(t, http.StatusInternalServerError, Get(twerr))

	twerr = From(twirp.InvalidArgumentError("shares", "required"))
	assert.Equal(t, InvalidArguments, Get(twerr))
}
