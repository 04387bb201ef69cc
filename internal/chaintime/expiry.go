package chaintime

import "github.com/fxamacker/cbor/v2"

// Expiry is an optional absolute deadline in chain time. The zero value is
// Never: a lock or commitment without an end tick. This replaces the
// max-value sentinel trick some runtimes use for "unbounded".
type Expiry struct {
	at    Tick
	bound bool
}

// Never is the unbounded expiry.
var Never = Expiry{}

// At returns an expiry bound to the given tick.
func At(t Tick) Expiry {
	return Expiry{at: t, bound: true}
}

// IsNever reports whether the expiry is unbounded.
func (e Expiry) IsNever() bool {
	return !e.bound
}

// Deadline returns the expiry tick and whether one is set.
func (e Expiry) Deadline() (Tick, bool) {
	return e.at, e.bound
}

// Reached reports whether the expiry has passed at the given tick. An
// unbounded expiry is never reached.
func (e Expiry) Reached(now Tick) bool {
	return e.bound && e.at <= now
}

// MarshalCBOR encodes a bound expiry as its tick and Never as null.
func (e Expiry) MarshalCBOR() ([]byte, error) {
	if !e.bound {
		return cbor.Marshal(nil)
	}
	return cbor.Marshal(uint64(e.at))
}

func (e *Expiry) UnmarshalCBOR(data []byte) error {
	var v *uint64
	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*e = Never
	} else {
		*e = At(Tick(*v))
	}
	return nil
}
