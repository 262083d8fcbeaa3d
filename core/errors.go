package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrPoolNotFound no pool for the asset
	ErrPoolNotFound ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrPoolExists pool already created for the asset
	ErrPoolExists ErrorCode = 100102
	// ErrWrongAsset bucket resource does not match the expected asset
	ErrWrongAsset ErrorCode = 100103
	// ErrOverRepayment repayment larger than the outstanding variable loan shares
	ErrOverRepayment ErrorCode = 100104
	//ErrInsufficientLiquidity insufficient liquidity
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrArithmeticOverflow fixed-point overflow or division by zero
	ErrArithmeticOverflow ErrorCode = 100106
	// ErrInvalidState operation not allowed in the current state
	ErrInvalidState ErrorCode = 100107
	// ErrValidatorNotFound validator not tracked
	ErrValidatorNotFound ErrorCode = 100108
	// ErrInvalidEpoch epoch earlier than a recorded one
	ErrInvalidEpoch ErrorCode = 100109
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:               "unknown",
	ErrOperationForbidden:    "operation forbidden",
	ErrPoolNotFound:          "pool not found",
	ErrInvalidAmount:         "invalid amount",
	ErrPoolExists:            "pool exists",
	ErrWrongAsset:            "wrong asset",
	ErrOverRepayment:         "repay exceeds variable loan shares",
	ErrInsufficientLiquidity: "insufficient liquidity",
	ErrArithmeticOverflow:    "arithmetic overflow",
	ErrInvalidState:          "invalid state",
	ErrValidatorNotFound:     "validator not found",
	ErrInvalidEpoch:          "invalid epoch",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

// Message readable description of the code
func (e ErrorCode) Message() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return errorMessages[ErrUnknown]
}

func (e ErrorCode) Error() string {
	return e.String() + " " + e.Message()
}
