package c2fc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
)

func TestStakeCreatesLock(t *testing.T) {
	core, bank, rec := newTestCore(t)
	id, err := core.CreateCommitment(bob, 100, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, core.Stake(alice, id, 200), ErrNotCommitmentOwner)
	assert.ErrorIs(t, core.Stake(bob, CommitmentID{}, 200), ErrCommitmentNotFound)

	require.NoError(t, core.Stake(bob, id, 200))

	lockID, exists := core.LockOf(id)
	require.True(t, exists)

	locks := bank.Locks(bob)
	require.Len(t, locks, 1)
	assert.Equal(t, lockID, locks[0].ID)
	assert.Equal(t, ledger.Balance(200), locks[0].Amount)
	assert.True(t, locks[0].Until.IsNever(), "unbounded commitment backs an unbounded lock")

	events := rec.OfKind(EventStaked)
	require.Len(t, events, 1)
	assert.Equal(t, ledger.Balance(200), events[0].Amount)
}

func TestStakeExtendsExistingLock(t *testing.T) {
	core, bank, _ := newTestCore(t)
	id, err := core.CreateCommitment(bob, 100, 10)
	require.NoError(t, err)

	require.NoError(t, core.Stake(bob, id, 200))
	first, _ := core.LockOf(id)

	require.NoError(t, core.Stake(bob, id, 100))
	second, _ := core.LockOf(id)

	// One lock per commitment for its whole life
	assert.Equal(t, first, second)
	locks := bank.Locks(bob)
	require.Len(t, locks, 1)
	assert.Equal(t, ledger.Balance(300), locks[0].Amount)
}

func TestStakeLockExpiryFollowsCommitment(t *testing.T) {
	core, bank, _ := newTestCore(t)
	id, err := core.CreateCommitmentUntil(bob, 100, 10, chaintime.At(50))
	require.NoError(t, err)

	require.NoError(t, core.Stake(bob, id, 200))

	locks := bank.Locks(bob)
	require.Len(t, locks, 1)
	deadline, bound := locks[0].Until.Deadline()
	require.True(t, bound)
	assert.Equal(t, uint64(50), uint64(deadline))
}

func TestStakeDistinctCommitmentsDistinctLocks(t *testing.T) {
	core, bank, _ := newTestCore(t)
	first, err := core.CreateCommitment(bob, 100, 10)
	require.NoError(t, err)
	second, err := core.CreateCommitment(bob, 50, 5)
	require.NoError(t, err)

	require.NoError(t, core.Stake(bob, first, 100))
	require.NoError(t, core.Stake(bob, second, 100))

	a, _ := core.LockOf(first)
	b, _ := core.LockOf(second)
	assert.NotEqual(t, a, b)
	assert.Len(t, bank.Locks(bob), 2)
}

func TestStakeLookupInconsistent(t *testing.T) {
	bank := ledger.NewInMemory()
	require.NoError(t, bank.Credit(bob, 10_000))
	core := New(&duplicatingLedger{bank}, nil, crypto.HashData([]byte("seed")))

	id, err := core.CreateCommitment(bob, 100, 10)
	require.NoError(t, err)
	require.NoError(t, core.Stake(bob, id, 100))

	// The second stake looks the lock up and sees two entries for one id
	err = core.Stake(bob, id, 100)
	assert.ErrorIs(t, err, ErrLockLookupInconsistent)
}

// duplicatingLedger misbehaves by reporting every lock twice, violating the
// at-most-one-lock-per-identifier guarantee.
type duplicatingLedger struct {
	*ledger.InMemory
}

func (d *duplicatingLedger) Locks(who ledger.AccountID) []ledger.BalanceLock {
	locks := d.InMemory.Locks(who)
	return append(locks, locks...)
}

func TestWithdrawGuards(t *testing.T) {
	core, _, _ := newTestCore(t)
	slotID, err := core.CreateSlot(alice)
	require.NoError(t, err)
	id, err := core.CreateCommitmentUntil(bob, 100, 10, chaintime.At(50))
	require.NoError(t, err)
	require.NoError(t, core.Stake(bob, id, 200))

	assert.ErrorIs(t, core.Withdraw(alice, id, 100), ErrNotCommitmentOwner)
	assert.ErrorIs(t, core.Withdraw(bob, CommitmentID{}, 100), ErrCommitmentNotFound)

	// Lock not yet matured
	assert.ErrorIs(t, core.Withdraw(bob, id, 49), ErrLockNotMature)

	// Attached commitments refuse withdrawal even after maturity
	require.NoError(t, core.Attach(alice, id, slotID, 10))
	assert.ErrorIs(t, core.Withdraw(bob, id, 100), ErrStillAttached)
}

func TestWithdrawFreesLockedAmount(t *testing.T) {
	core, bank, rec := newTestCore(t)
	id, err := core.CreateCommitmentUntil(bob, 100, 10, chaintime.At(50))
	require.NoError(t, err)
	require.NoError(t, core.Stake(bob, id, 200))

	require.NoError(t, core.Withdraw(bob, id, 50))

	assert.Empty(t, bank.Locks(bob))
	_, exists := core.LockOf(id)
	assert.False(t, exists, "lock bookkeeping cleared on withdrawal")

	events := rec.OfKind(EventWithdrawn)
	require.Len(t, events, 1)
	assert.Equal(t, ledger.Balance(200), events[0].Amount)

	// A later stake starts a fresh lock
	require.NoError(t, core.Stake(bob, id, 70))
	locks := bank.Locks(bob)
	require.Len(t, locks, 1)
	assert.Equal(t, ledger.Balance(70), locks[0].Amount)
}

func TestWithdrawUnboundedLockNeverMatures(t *testing.T) {
	core, _, _ := newTestCore(t)
	id, err := core.CreateCommitment(bob, 100, 10)
	require.NoError(t, err)
	require.NoError(t, core.Stake(bob, id, 200))

	assert.ErrorIs(t, core.Withdraw(bob, id, 1<<40), ErrLockNotMature)
}

func TestWithdrawWithoutLock(t *testing.T) {
	core, _, rec := newTestCore(t)
	id, err := core.CreateCommitment(bob, 100, 10)
	require.NoError(t, err)

	require.NoError(t, core.Withdraw(bob, id, 100))
	assert.Empty(t, rec.OfKind(EventWithdrawn), "nothing to withdraw, nothing to report")
}
