package ledger

import (
	"errors"

	"github.com/litentry/akropolis-polkadot/internal/chaintime"
)

// AccountID identifies an account on the balance ledger.
type AccountID [32]byte

// Balance is an amount of ledger currency.
type Balance uint64

// LockID is the ledger's fixed-width opaque lock identifier.
type LockID [8]byte

// LockReason records why a balance lock was placed.
type LockReason uint8

const (
	ReasonReserve LockReason = iota
	ReasonFee
)

// BalanceLock is a hold on part of an account's balance until an expiry
// condition. At most one lock per (account, id) pair exists at any time.
type BalanceLock struct {
	ID     LockID
	Amount Balance
	Until  chaintime.Expiry
	Reason LockReason
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBalanceOverflow     = errors.New("balance overflow")
)

// Ledger is the balance service the core consumes. Transfers are atomic and
// unconditional; locks restrict spending without moving funds. The core
// treats this as an external collaborator and never inspects balances
// directly.
type Ledger interface {
	// Transfer moves amount from one account to another, failing with
	// ErrInsufficientBalance when the sender's spendable balance does not
	// cover it. No partial transfer occurs on failure.
	Transfer(from, to AccountID, amount Balance) error

	// SetLock places a new lock on who's balance. A lock with the same id
	// is replaced.
	SetLock(id LockID, who AccountID, amount Balance, until chaintime.Expiry, reason LockReason) error

	// ExtendLock updates the lock with the given id to the new total amount
	// and expiry, creating it if absent.
	ExtendLock(id LockID, who AccountID, newTotal Balance, until chaintime.Expiry, reason LockReason) error

	// RemoveLock drops the lock with the given id. Removing an absent lock
	// is not an error.
	RemoveLock(id LockID, who AccountID) error

	// Locks returns all locks currently held against who's balance.
	Locks(who AccountID) []BalanceLock
}
