package codes

import (
	"errors"
	"strconv"

	"stakelend/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From maps engine error codes onto twirp errors, unknown errors are internal
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	var twcode twirp.ErrorCode
	switch code {
	case core.ErrPoolNotFound, core.ErrValidatorNotFound:
		twcode = twirp.NotFound
	case core.ErrPoolExists:
		twcode = twirp.AlreadyExists
	case core.ErrInvalidAmount, core.ErrWrongAsset, core.ErrOverRepayment, core.ErrInvalidEpoch:
		twcode = twirp.InvalidArgument
	case core.ErrInsufficientLiquidity, core.ErrInvalidState:
		twcode = twirp.FailedPrecondition
	case core.ErrArithmeticOverflow:
		twcode = twirp.OutOfRange
	case core.ErrOperationForbidden:
		twcode = twirp.PermissionDenied
	default:
		twcode = twirp.Internal
	}

	return twirp.NewError(twcode, code.Message()).WithMeta(CustomCodeKey, code.String())
}

// Get get error code
func Get(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	switch twerr.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
	}
}
