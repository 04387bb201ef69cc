package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/litentry/akropolis-polkadot/internal/c2fc"
	"github.com/litentry/akropolis-polkadot/pkg/db"
	"github.com/litentry/akropolis-polkadot/pkg/log"
)

// Journal is a pebble-backed c2fc.EventSink: an ordered append-only log of
// domain events keyed by a big-endian sequence number, so iteration order
// is emission order. The core treats event publication as fire-and-forget;
// a failed append is logged, never propagated into the state transition.
type Journal struct {
	db   db.KVStore
	next uint64
}

// NewJournal opens the journal over the given store, resuming the sequence
// counter after the last persisted event.
func NewJournal(kv db.KVStore) (*Journal, error) {
	j := &Journal{db: kv}

	iter, err := kv.NewIterator([]byte{prefixEvent}, []byte{prefixEvent + 1})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	for iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			return nil, fmt.Errorf("open journal: malformed event key %x", key)
		}
		j.next = binary.BigEndian.Uint64(key[1:]) + 1
	}
	return j, nil
}

// Publish appends the event to the journal.
func (j *Journal) Publish(ev c2fc.Event) {
	bytes, err := cbor.Marshal(ev)
	if err != nil {
		log.Journal.Error().Err(err).Str("kind", string(ev.Kind)).Msg("marshal event")
		return
	}
	if err := j.db.Put(makeKey(prefixEvent, seqKey(j.next)), bytes); err != nil {
		log.Journal.Error().Err(err).Str("kind", string(ev.Kind)).Msg("append event")
		return
	}
	j.next++
}

// Len returns the number of events appended so far.
func (j *Journal) Len() uint64 {
	return j.next
}

// Replay calls fn for every journaled event in emission order. Iteration
// stops at the first error fn returns.
func (j *Journal) Replay(fn func(seq uint64, ev c2fc.Event) error) error {
	iter, err := j.db.NewIterator([]byte{prefixEvent}, []byte{prefixEvent + 1})
	if err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	for iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			return fmt.Errorf("replay journal: malformed event key %x", key)
		}
		value, err := iter.Value()
		if err != nil {
			return fmt.Errorf("replay journal: %w", err)
		}
		var ev c2fc.Event
		if err := cbor.Unmarshal(value, &ev); err != nil {
			return fmt.Errorf("replay journal: unmarshal event: %w", err)
		}
		if err := fn(binary.BigEndian.Uint64(key[1:]), ev); err != nil {
			if errors.Is(err, ErrStopReplay) {
				return nil
			}
			return err
		}
	}
	return nil
}

// ErrStopReplay stops Replay early without reporting an error.
var ErrStopReplay = errors.New("stop replay")

func seqKey(seq uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], seq)
	return key[:]
}
