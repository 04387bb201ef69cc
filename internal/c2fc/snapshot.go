package c2fc

import (
	"fmt"

	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
)

// Snapshot is a serializable copy of the full core state. Entity lists are
// ordered by their registry enumeration so snapshots of equal states encode
// identically; reverse indices are re-derived on restore.
type Snapshot struct {
	Seed        crypto.Hash       `cbor:"1,keyasint"`
	Nonce       uint64            `cbor:"2,keyasint"`
	LockCounter uint64            `cbor:"3,keyasint"`
	Slots       []SlotEntry       `cbor:"4,keyasint"`
	Commitments []CommitmentEntry `cbor:"5,keyasint"`
}

// SlotEntry pairs a slot with its current owner. The embedded commitment is
// not serialized here; attached commitments are wired back from their
// CommitmentEntry on restore.
type SlotEntry struct {
	Slot  Slot             `cbor:"1,keyasint"`
	Owner ledger.AccountID `cbor:"2,keyasint"`
}

// CommitmentEntry is a commitment record plus its attachment and collateral
// bookkeeping.
type CommitmentEntry struct {
	Commitment Commitment     `cbor:"1,keyasint"`
	Slot       SlotID         `cbor:"2,keyasint,omitempty"`
	Lock       *ledger.LockID `cbor:"3,keyasint,omitempty"`
}

// Snapshot captures the current state.
func (c *Core) Snapshot() Snapshot {
	snap := Snapshot{
		Seed:        c.seed,
		Nonce:       c.nonce,
		LockCounter: c.lockCounter,
	}

	for _, id := range c.slotOwners.All() {
		owner, _ := c.slotOwners.OwnerOf(id)
		slot := *c.slots[id]
		slot.Commitment = nil
		snap.Slots = append(snap.Slots, SlotEntry{Slot: slot, Owner: owner})
	}

	appendEntry := func(id CommitmentID) {
		entry := CommitmentEntry{Commitment: *c.commitments[id]}
		if slotID, attached := c.slotOfCommitment[id]; attached {
			entry.Slot = slotID
		}
		if lockID, staked := c.lockOfCommitment[id]; staked {
			lock := lockID
			entry.Lock = &lock
		}
		snap.Commitments = append(snap.Commitments, entry)
	}
	for _, id := range c.freeCommitments.All() {
		appendEntry(id)
	}
	for _, id := range c.attached.All() {
		appendEntry(id)
	}

	return snap
}

// Restore replaces the core's state with the snapshot's. The ledger and
// event sink are kept; they are collaborators, not state.
func Restore(l ledger.Ledger, sink EventSink, snap Snapshot) (*Core, error) {
	c := New(l, sink, snap.Seed)
	c.nonce = snap.Nonce
	c.lockCounter = snap.LockCounter

	for _, entry := range snap.Slots {
		if err := c.slotOwners.Insert(entry.Owner, entry.Slot.ID); err != nil {
			return nil, fmt.Errorf("restore slot %s: %w", entry.Slot.ID, err)
		}
		slot := entry.Slot
		c.slots[slot.ID] = &slot
	}

	for _, entry := range snap.Commitments {
		cm := entry.Commitment
		c.commitments[cm.ID] = &cm

		switch cm.Status {
		case StatusFree:
			if err := c.freeCommitments.Insert(cm.Owner, cm.ID); err != nil {
				return nil, fmt.Errorf("restore free commitment %s: %w", cm.ID, err)
			}
		case StatusAttached:
			if err := c.attached.Insert(cm.Owner, cm.ID); err != nil {
				return nil, fmt.Errorf("restore attached commitment %s: %w", cm.ID, err)
			}
			slot, exists := c.slots[entry.Slot]
			if !exists {
				return nil, fmt.Errorf("restore commitment %s: %w", cm.ID, ErrSlotNotFound)
			}
			slot.Commitment = &cm
			c.slotOfCommitment[cm.ID] = entry.Slot
			c.contributors[entry.Slot] = cm.Owner
		default:
			return nil, fmt.Errorf("restore commitment %s: unknown status %d", cm.ID, cm.Status)
		}

		if entry.Lock != nil {
			c.lockOfCommitment[cm.ID] = *entry.Lock
		}
	}

	return c, nil
}
