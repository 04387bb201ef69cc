package c2fc

import (
	"encoding/binary"
	"fmt"

	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
	"github.com/litentry/akropolis-polkadot/internal/safemath"
)

// lockIDFromCounter encodes the process-wide lock counter into the ledger's
// fixed-width opaque identifier, little-endian. Locks are numbered rather
// than derived from the commitment ID because the ledger identifier is
// narrower than a commitment hash; lockOfCommitment recovers the mapping.
func lockIDFromCounter(n uint64) ledger.LockID {
	var id ledger.LockID
	binary.LittleEndian.PutUint64(id[:], n)
	return id
}

// findLock selects the single lock with the given identifier from who's
// ledger locks. The ledger guarantees at most one lock per identifier per
// account; zero or several matches is a fatal inconsistency.
func (c *Core) findLock(who ledger.AccountID, id ledger.LockID) (ledger.BalanceLock, error) {
	var (
		found ledger.BalanceLock
		n     int
	)
	for _, lock := range c.ledger.Locks(who) {
		if lock.ID == id {
			found = lock
			n++
		}
	}
	if n != 1 {
		return ledger.BalanceLock{}, fmt.Errorf("%w: %d entries for %x", ErrLockLookupInconsistent, n, id)
	}
	return found, nil
}

// Stake locks amount of the caller's balance as collateral behind their
// commitment. The lock's lifetime follows the commitment's end time. The
// first stake creates the lock; later stakes extend the same lock by the
// staked amount, never a second one.
func (c *Core) Stake(caller ledger.AccountID, commitmentID CommitmentID, amount ledger.Balance) error {
	cm, exists := c.commitments[commitmentID]
	if !exists {
		return ErrCommitmentNotFound
	}
	if cm.Owner != caller {
		return ErrNotCommitmentOwner
	}
	until := cm.Until

	if lockID, exists := c.lockOfCommitment[commitmentID]; exists {
		lock, err := c.findLock(caller, lockID)
		if err != nil {
			return err
		}
		newTotal, ok := safemath.Add64(uint64(lock.Amount), uint64(amount))
		if !ok {
			return ErrArithmeticOverflow
		}
		if err := c.ledger.ExtendLock(lockID, caller, ledger.Balance(newTotal), until, ledger.ReasonReserve); err != nil {
			return fmt.Errorf("extend collateral lock: %w", err)
		}
	} else {
		next, ok := safemath.Add64(c.lockCounter, 1)
		if !ok {
			return ErrArithmeticOverflow
		}
		lockID := lockIDFromCounter(next)
		if err := c.ledger.SetLock(lockID, caller, amount, until, ledger.ReasonReserve); err != nil {
			return fmt.Errorf("create collateral lock: %w", err)
		}
		c.lockOfCommitment[commitmentID] = lockID
		c.lockCounter = next
	}

	c.log.Debug().
		Str("commitment", commitmentID.String()).
		Uint64("amount", uint64(amount)).
		Msg("stake locked")
	c.emit(Event{Kind: EventStaked, Commitment: commitmentID, Account: caller, Amount: amount})
	return nil
}

// Withdraw releases the caller's collateral lock once the commitment is no
// longer attached and the lock has matured. Withdrawing with no lock in
// place is a no-op.
func (c *Core) Withdraw(caller ledger.AccountID, commitmentID CommitmentID, now chaintime.Tick) error {
	cm, exists := c.commitments[commitmentID]
	if !exists {
		return ErrCommitmentNotFound
	}
	if cm.Owner != caller {
		return ErrNotCommitmentOwner
	}

	lockID, exists := c.lockOfCommitment[commitmentID]
	if !exists {
		return nil
	}

	var freed ledger.Balance
	for _, lock := range c.ledger.Locks(caller) {
		if lock.ID != lockID {
			continue
		}
		if cm.Status == StatusAttached {
			return ErrStillAttached
		}
		if !lock.Until.Reached(now) {
			return ErrLockNotMature
		}
		freed = lock.Amount
		break
	}

	if err := c.ledger.RemoveLock(lockID, caller); err != nil {
		return fmt.Errorf("remove collateral lock: %w", err)
	}
	delete(c.lockOfCommitment, commitmentID)

	c.log.Debug().
		Str("commitment", commitmentID.String()).
		Uint64("freed", uint64(freed)).
		Msg("stake withdrawn")
	c.emit(Event{Kind: EventWithdrawn, Commitment: commitmentID, Account: caller, Amount: freed})
	return nil
}
