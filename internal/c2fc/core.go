// Package c2fc is the deterministic state-transition core of the C2FC
// ledger: accounts mint and trade slots, attach recurring commitments to
// them backed by collateral locks, and a per-tick scanner detects missed
// periodic obligations.
//
// The core is a synchronous single-writer state machine. Every operation
// runs to completion before the next begins; the host driver must never
// invoke two operations concurrently on the same Core. Caller identity is
// resolved by the host before any operation runs.
package c2fc

import (
	"github.com/rs/zerolog"

	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
	"github.com/litentry/akropolis-polkadot/internal/registry"
	"github.com/litentry/akropolis-polkadot/pkg/log"
)

// Core holds the full module state: the three enumerable registries, the
// entity records, the collateral lock bookkeeping and the ID-derivation
// counters. All counters live here rather than as ambient globals so a Core
// is a self-contained, restorable state object.
type Core struct {
	ledger ledger.Ledger
	sink   EventSink
	log    zerolog.Logger

	seed        crypto.Hash
	nonce       uint64
	lockCounter uint64

	slots      map[SlotID]*Slot
	slotOwners *registry.Registry[SlotID, ledger.AccountID]

	commitments      map[CommitmentID]*Commitment
	freeCommitments  *registry.Registry[CommitmentID, ledger.AccountID]
	attached         *registry.Registry[CommitmentID, ledger.AccountID]
	slotOfCommitment map[CommitmentID]SlotID
	contributors     map[SlotID]ledger.AccountID

	lockOfCommitment map[CommitmentID]ledger.LockID
}

// New creates an empty core. The seed feeds entity-ID derivation; the host
// supplies it from its randomness beacon.
func New(l ledger.Ledger, sink EventSink, seed crypto.Hash) *Core {
	return &Core{
		ledger:           l,
		sink:             sink,
		log:              log.Core,
		seed:             seed,
		slots:            make(map[SlotID]*Slot),
		slotOwners:       registry.New[SlotID, ledger.AccountID](),
		commitments:      make(map[CommitmentID]*Commitment),
		freeCommitments:  registry.New[CommitmentID, ledger.AccountID](),
		attached:         registry.New[CommitmentID, ledger.AccountID](),
		slotOfCommitment: make(map[CommitmentID]SlotID),
		contributors:     make(map[SlotID]ledger.AccountID),
		lockOfCommitment: make(map[CommitmentID]ledger.LockID),
	}
}

func (c *Core) emit(ev Event) {
	if c.sink != nil {
		c.sink.Publish(ev)
	}
}

// Slot returns a copy of the slot record.
func (c *Core) Slot(id SlotID) (Slot, bool) {
	s, exists := c.slots[id]
	if !exists {
		return Slot{}, false
	}
	out := *s
	if s.Commitment != nil {
		cm := *s.Commitment
		out.Commitment = &cm
	}
	return out, true
}

// Commitment returns a copy of the commitment record, free or attached.
func (c *Core) Commitment(id CommitmentID) (Commitment, bool) {
	cm, exists := c.commitments[id]
	if !exists {
		return Commitment{}, false
	}
	return *cm, true
}

// SlotOwner returns the current owner of a slot.
func (c *Core) SlotOwner(id SlotID) (ledger.AccountID, bool) {
	return c.slotOwners.OwnerOf(id)
}

// CommitmentOwner returns the creator-owner of a commitment.
func (c *Core) CommitmentOwner(id CommitmentID) (ledger.AccountID, bool) {
	cm, exists := c.commitments[id]
	if !exists {
		return ledger.AccountID{}, false
	}
	return cm.Owner, true
}

// Contributor returns the account whose commitment is attached to the slot.
func (c *Core) Contributor(slotID SlotID) (ledger.AccountID, bool) {
	who, exists := c.contributors[slotID]
	return who, exists
}

// IsCommitmentAttached reports whether the commitment is attached to a slot.
func (c *Core) IsCommitmentAttached(id CommitmentID) (bool, error) {
	cm, exists := c.commitments[id]
	if !exists {
		return false, ErrCommitmentNotFound
	}
	return cm.Status == StatusAttached, nil
}

// SlotOf returns the slot a commitment is attached to.
func (c *Core) SlotOf(id CommitmentID) (SlotID, bool) {
	slotID, exists := c.slotOfCommitment[id]
	return slotID, exists
}

// SlotCount returns the number of slots ever minted.
func (c *Core) SlotCount() uint64 {
	return c.slotOwners.Count()
}

// SlotByIndex returns the id of the i-th minted slot.
func (c *Core) SlotByIndex(i uint64) (SlotID, bool) {
	return c.slotOwners.ByIndex(i)
}

// SlotsOf returns the ids of all slots currently owned by who.
func (c *Core) SlotsOf(who ledger.AccountID) []SlotID {
	return c.slotOwners.OwnedBy(who)
}

// FreeCommitmentCount returns the number of unattached commitments.
func (c *Core) FreeCommitmentCount() uint64 {
	return c.freeCommitments.Count()
}

// AttachedCommitmentCount returns the number of attached commitments.
func (c *Core) AttachedCommitmentCount() uint64 {
	return c.attached.Count()
}

// CommitmentsOf returns the ids of all free commitments owned by who.
func (c *Core) CommitmentsOf(who ledger.AccountID) []CommitmentID {
	return c.freeCommitments.OwnedBy(who)
}

// LockOf returns the ledger lock identifier backing a commitment's stake.
func (c *Core) LockOf(id CommitmentID) (ledger.LockID, bool) {
	lockID, exists := c.lockOfCommitment[id]
	return lockID, exists
}
