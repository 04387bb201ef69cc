package ledger

import (
	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/internal/safemath"
)

// InMemory is a reference Ledger backed by in-process maps. It implements
// the contract the core depends on: atomic transfers gated on spendable
// balance, and at most one lock per (account, id) pair. The production
// collaborator is the chain's balances module; this implementation backs
// tests and the standalone daemon.
type InMemory struct {
	balances map[AccountID]Balance
	locks    map[AccountID][]BalanceLock
}

func NewInMemory() *InMemory {
	return &InMemory{
		balances: make(map[AccountID]Balance),
		locks:    make(map[AccountID][]BalanceLock),
	}
}

// Credit mints amount into who's balance. Test and bootstrap helper.
func (l *InMemory) Credit(who AccountID, amount Balance) error {
	v, ok := safemath.Add64(uint64(l.balances[who]), uint64(amount))
	if !ok {
		return ErrBalanceOverflow
	}
	l.balances[who] = Balance(v)
	return nil
}

// BalanceOf returns who's total balance, locked amounts included.
func (l *InMemory) BalanceOf(who AccountID) Balance {
	return l.balances[who]
}

// spendable is the balance not covered by any lock. Locks overlap rather
// than stack: the largest lock wins.
func (l *InMemory) spendable(who AccountID) Balance {
	var locked Balance
	for _, lock := range l.locks[who] {
		if lock.Amount > locked {
			locked = lock.Amount
		}
	}
	return Balance(safemath.SaturatingSub64(uint64(l.balances[who]), uint64(locked)))
}

func (l *InMemory) Transfer(from, to AccountID, amount Balance) error {
	if l.spendable(from) < amount {
		return ErrInsufficientBalance
	}
	v, ok := safemath.Add64(uint64(l.balances[to]), uint64(amount))
	if !ok {
		return ErrBalanceOverflow
	}
	l.balances[from] -= amount
	l.balances[to] = Balance(v)
	return nil
}

func (l *InMemory) SetLock(id LockID, who AccountID, amount Balance, until chaintime.Expiry, reason LockReason) error {
	if amount > l.balances[who] {
		return ErrInsufficientBalance
	}
	lock := BalanceLock{ID: id, Amount: amount, Until: until, Reason: reason}
	for i, existing := range l.locks[who] {
		if existing.ID == id {
			l.locks[who][i] = lock
			return nil
		}
	}
	l.locks[who] = append(l.locks[who], lock)
	return nil
}

func (l *InMemory) ExtendLock(id LockID, who AccountID, newTotal Balance, until chaintime.Expiry, reason LockReason) error {
	if newTotal > l.balances[who] {
		return ErrInsufficientBalance
	}
	return l.SetLock(id, who, newTotal, until, reason)
}

func (l *InMemory) RemoveLock(id LockID, who AccountID) error {
	locks := l.locks[who]
	for i, lock := range locks {
		if lock.ID == id {
			l.locks[who] = append(locks[:i], locks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (l *InMemory) Locks(who AccountID) []BalanceLock {
	locks := make([]BalanceLock, len(l.locks[who]))
	copy(locks, l.locks[who])
	return locks
}
