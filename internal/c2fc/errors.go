package c2fc

import "errors"

var (
	ErrSlotNotFound       = errors.New("slot does not exist")
	ErrCommitmentNotFound = errors.New("commitment does not exist")

	ErrNotSlotOwner       = errors.New("account does not own this slot")
	ErrNotCommitmentOwner = errors.New("account does not own this commitment")

	ErrSlotEmpty          = errors.New("slot holds no commitment")
	ErrSelfAttachment     = errors.New("cannot accept own commitment")
	ErrCommitmentAttached = errors.New("commitment is already attached")
	ErrSlotOccupied       = errors.New("slot already holds a commitment")

	ErrZeroPeriod          = errors.New("commitment period must be positive")
	ErrZeroValueCommitment = errors.New("commitment value is zero")
	ErrAlreadyFulfilled    = errors.New("commitment is already fulfilled")
	ErrFillOwnSlot         = errors.New("cannot fill own slot")

	ErrBuyOwnSlot   = errors.New("cannot buy own slot")
	ErrNotForSale   = errors.New("slot is not for sale")
	ErrPriceTooHigh = errors.New("slot costs more than the stated maximum")

	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	ErrLockLookupInconsistent = errors.New("ledger reports inconsistent locks for identifier")
	ErrStillAttached          = errors.New("commitment is attached, stake cannot be withdrawn")
	ErrLockNotMature          = errors.New("lock has not matured, stake cannot be withdrawn")
)
