package c2fc

import (
	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
)

type (
	SlotID       = crypto.Hash
	CommitmentID = crypto.Hash
)

// Slot is a tradable ownership token. It optionally carries one attached
// commitment and a sale price; a zero price means not for sale. Slots are
// never destroyed once minted.
type Slot struct {
	ID         SlotID         `cbor:"1,keyasint"`
	Commitment *Commitment    `cbor:"2,keyasint,omitempty"`
	Price      ledger.Balance `cbor:"3,keyasint"`
}

// CommitmentStatus tags the lifecycle state of a commitment record.
type CommitmentStatus uint8

const (
	// StatusFree: created but not attached to any slot.
	StatusFree CommitmentStatus = iota
	// StatusAttached: embedded in exactly one slot.
	StatusAttached
)

// Commitment is a recurring obligation to deposit Value every Period ticks,
// optionally ending at Until. One record represents the commitment through
// its whole lifecycle; Filled and AcceptedAt are meaningful only once
// attached.
type Commitment struct {
	ID     CommitmentID     `cbor:"1,keyasint"`
	Owner  ledger.AccountID `cbor:"2,keyasint"`
	Value  ledger.Balance   `cbor:"3,keyasint"`
	Period chaintime.Period `cbor:"4,keyasint"`
	Until  chaintime.Expiry `cbor:"5,keyasint"`

	Status CommitmentStatus `cbor:"6,keyasint"`
	// Filled accumulates deposits within the current period, reset at each
	// period boundary by the tick scanner.
	Filled     ledger.Balance `cbor:"7,keyasint"`
	AcceptedAt chaintime.Tick `cbor:"8,keyasint"`
}

// Outstanding is the amount still owed in the current period.
func (c *Commitment) Outstanding() ledger.Balance {
	if c.Filled >= c.Value {
		return 0
	}
	return c.Value - c.Filled
}
