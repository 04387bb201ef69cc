package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litentry/akropolis-polkadot/internal/chaintime"
)

func account(b byte) AccountID {
	var id AccountID
	id[0] = b
	return id
}

func TestTransfer(t *testing.T) {
	l := NewInMemory()
	alice := account(1)
	bob := account(2)
	require.NoError(t, l.Credit(alice, 100))

	require.NoError(t, l.Transfer(alice, bob, 60))
	assert.Equal(t, Balance(40), l.BalanceOf(alice))
	assert.Equal(t, Balance(60), l.BalanceOf(bob))

	err := l.Transfer(alice, bob, 41)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, Balance(40), l.BalanceOf(alice), "failed transfer must not move funds")
	assert.Equal(t, Balance(60), l.BalanceOf(bob))
}

func TestLockBlocksSpending(t *testing.T) {
	l := NewInMemory()
	alice := account(1)
	bob := account(2)
	require.NoError(t, l.Credit(alice, 100))

	id := LockID{1}
	require.NoError(t, l.SetLock(id, alice, 80, chaintime.Never, ReasonReserve))

	err := l.Transfer(alice, bob, 30)
	assert.ErrorIs(t, err, ErrInsufficientBalance, "locked funds are not spendable")
	require.NoError(t, l.Transfer(alice, bob, 20))

	require.NoError(t, l.RemoveLock(id, alice))
	require.NoError(t, l.Transfer(alice, bob, 30))
}

func TestLocksOverlapNotStack(t *testing.T) {
	l := NewInMemory()
	alice := account(1)
	require.NoError(t, l.Credit(alice, 100))

	require.NoError(t, l.SetLock(LockID{1}, alice, 60, chaintime.Never, ReasonReserve))
	require.NoError(t, l.SetLock(LockID{2}, alice, 40, chaintime.Never, ReasonReserve))

	// The larger lock governs: 100 - 60 = 40 spendable
	assert.Equal(t, Balance(40), l.spendable(alice))
}

func TestSetLockReplacesSameID(t *testing.T) {
	l := NewInMemory()
	alice := account(1)
	require.NoError(t, l.Credit(alice, 100))

	id := LockID{7}
	require.NoError(t, l.SetLock(id, alice, 30, chaintime.Never, ReasonReserve))
	require.NoError(t, l.SetLock(id, alice, 50, chaintime.At(10), ReasonReserve))

	locks := l.Locks(alice)
	require.Len(t, locks, 1)
	assert.Equal(t, Balance(50), locks[0].Amount)
	assert.True(t, locks[0].Until.Reached(10))
}

func TestExtendLockCreatesWhenAbsent(t *testing.T) {
	l := NewInMemory()
	alice := account(1)
	require.NoError(t, l.Credit(alice, 100))

	id := LockID{9}
	require.NoError(t, l.ExtendLock(id, alice, 25, chaintime.Never, ReasonReserve))
	require.Len(t, l.Locks(alice), 1)

	err := l.ExtendLock(id, alice, 200, chaintime.Never, ReasonReserve)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestRemoveAbsentLock(t *testing.T) {
	l := NewInMemory()
	assert.NoError(t, l.RemoveLock(LockID{1}, account(1)))
}
