package c2fc

import (
	"fmt"

	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
	"github.com/litentry/akropolis-polkadot/internal/safemath"
)

const commitmentDomain = "c2fc/commitment"

// CreateCommitment mints an unbounded free commitment owned by the caller.
func (c *Core) CreateCommitment(caller ledger.AccountID, value ledger.Balance, period chaintime.Period) (CommitmentID, error) {
	return c.CreateCommitmentUntil(caller, value, period, chaintime.Never)
}

// CreateCommitmentUntil mints a free commitment that expires at until.
func (c *Core) CreateCommitmentUntil(caller ledger.AccountID, value ledger.Balance, period chaintime.Period, until chaintime.Expiry) (CommitmentID, error) {
	if period == 0 {
		return CommitmentID{}, ErrZeroPeriod
	}
	id := crypto.DeriveID(commitmentDomain, c.seed, caller, c.nonce)

	if err := c.freeCommitments.Insert(caller, id); err != nil {
		return CommitmentID{}, fmt.Errorf("mint commitment: %w", err)
	}
	c.commitments[id] = &Commitment{
		ID:     id,
		Owner:  caller,
		Value:  value,
		Period: period,
		Until:  until,
		Status: StatusFree,
	}
	c.nonce++

	c.log.Debug().Str("commitment", id.String()).Msg("commitment created")
	c.emit(Event{Kind: EventCommitmentCreated, Commitment: id, Account: caller})
	return id, nil
}

// EditCommitment changes a free commitment's value and period in place.
// Attached commitments are frozen: their terms were agreed at attachment.
func (c *Core) EditCommitment(caller ledger.AccountID, id CommitmentID, value ledger.Balance, period chaintime.Period) error {
	cm, exists := c.commitments[id]
	if !exists {
		return ErrCommitmentNotFound
	}
	if cm.Owner != caller {
		return ErrNotCommitmentOwner
	}
	if cm.Status == StatusAttached {
		return ErrCommitmentAttached
	}
	if period == 0 {
		return ErrZeroPeriod
	}

	cm.Value = value
	cm.Period = period

	c.emit(Event{Kind: EventCommitmentChanged, Commitment: id})
	return nil
}

// Attach accepts a free commitment into a slot. Only the slot's owner may
// accept, never for a commitment they own themselves. The commitment record
// moves from the free registry to the attached one and starts its first
// period at the current tick.
func (c *Core) Attach(caller ledger.AccountID, commitmentID CommitmentID, slotID SlotID, now chaintime.Tick) error {
	slot, exists := c.slots[slotID]
	if !exists {
		return ErrSlotNotFound
	}
	cm, exists := c.commitments[commitmentID]
	if !exists {
		return ErrCommitmentNotFound
	}
	if cm.Status == StatusAttached {
		return ErrCommitmentAttached
	}
	slotOwner, _ := c.slotOwners.OwnerOf(slotID)
	if slotOwner != caller {
		return ErrNotSlotOwner
	}
	if cm.Owner == caller {
		return ErrSelfAttachment
	}
	if slot.Commitment != nil {
		return ErrSlotOccupied
	}

	if err := c.freeCommitments.Remove(commitmentID); err != nil {
		return fmt.Errorf("retire free commitment: %w", err)
	}
	if err := c.attached.Insert(cm.Owner, commitmentID); err != nil {
		return fmt.Errorf("register attached commitment: %w", err)
	}

	cm.Status = StatusAttached
	cm.AcceptedAt = now
	cm.Filled = 0
	slot.Commitment = cm
	c.slotOfCommitment[commitmentID] = slotID
	c.contributors[slotID] = cm.Owner

	c.log.Debug().
		Str("commitment", commitmentID.String()).
		Str("slot", slotID.String()).
		Uint64("tick", uint64(now)).
		Msg("commitment attached")
	c.emit(Event{Kind: EventCommitmentAttached, Commitment: commitmentID, Slot: slotID})
	return nil
}

// Fill deposits amount towards the slot's attached commitment, transferring
// the currency from the caller to the slot's owner. The slot owner cannot
// fill their own slot.
func (c *Core) Fill(caller ledger.AccountID, slotID SlotID, amount ledger.Balance) error {
	slot, exists := c.slots[slotID]
	if !exists {
		return ErrSlotNotFound
	}
	owner, _ := c.slotOwners.OwnerOf(slotID)
	if owner == caller {
		return ErrFillOwnSlot
	}
	cm := slot.Commitment
	if cm == nil {
		return ErrSlotEmpty
	}
	if cm.Value == 0 {
		return ErrZeroValueCommitment
	}
	if cm.Filled >= cm.Value {
		return ErrAlreadyFulfilled
	}
	newFilled, ok := safemath.Add64(uint64(cm.Filled), uint64(amount))
	if !ok {
		return ErrArithmeticOverflow
	}

	if err := c.ledger.Transfer(caller, owner, amount); err != nil {
		return fmt.Errorf("deposit to slot owner: %w", err)
	}
	cm.Filled = ledger.Balance(newFilled)

	c.emit(Event{Kind: EventCommitmentFilled, Slot: slotID, Commitment: cm.ID, Amount: amount})
	if cm.Filled >= cm.Value {
		c.emit(Event{Kind: EventCommitmentFulfilled, Slot: slotID, Commitment: cm.ID})
	}
	return nil
}

// Fulfill deposits exactly the amount still owed in the current period.
func (c *Core) Fulfill(caller ledger.AccountID, slotID SlotID) error {
	slot, exists := c.slots[slotID]
	if !exists {
		return ErrSlotNotFound
	}
	cm := slot.Commitment
	if cm == nil {
		return ErrSlotEmpty
	}
	return c.Fill(caller, slotID, cm.Outstanding())
}
