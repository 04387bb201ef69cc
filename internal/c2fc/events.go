package c2fc

import "github.com/litentry/akropolis-polkadot/internal/ledger"

type EventKind string

const (
	EventSlotCreated         EventKind = "slot_created"
	EventPriceSet            EventKind = "price_set"
	EventTransferred         EventKind = "transferred"
	EventBought              EventKind = "bought"
	EventCommitmentCreated   EventKind = "commitment_created"
	EventCommitmentChanged   EventKind = "commitment_changed"
	EventCommitmentAttached  EventKind = "commitment_attached"
	EventCommitmentFilled    EventKind = "commitment_filled"
	EventCommitmentFulfilled EventKind = "commitment_fulfilled"
	EventCommitmentBreached  EventKind = "commitment_breached"
	EventStaked              EventKind = "staked"
	EventWithdrawn           EventKind = "withdrawn"
)

// Event is a domain event emitted by the core. Fields not relevant to a
// given kind are left at their zero value.
type Event struct {
	Kind         EventKind        `cbor:"1,keyasint"`
	Slot         SlotID           `cbor:"2,keyasint,omitempty"`
	Commitment   CommitmentID     `cbor:"3,keyasint,omitempty"`
	Account      ledger.AccountID `cbor:"4,keyasint,omitempty"`
	Counterparty ledger.AccountID `cbor:"5,keyasint,omitempty"`
	Amount       ledger.Balance   `cbor:"6,keyasint,omitempty"`
}

// EventSink receives the core's domain events as an ordered append-only
// log. The core never reads events back.
type EventSink interface {
	Publish(Event)
}

// Recorder is an EventSink that keeps every event in memory, in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(ev Event) {
	r.Events = append(r.Events, ev)
}

// OfKind returns all recorded events of the given kind, in order.
func (r *Recorder) OfKind(kind EventKind) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
