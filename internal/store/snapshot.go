package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/litentry/akropolis-polkadot/internal/c2fc"
	"github.com/litentry/akropolis-polkadot/internal/chaintime"
	"github.com/litentry/akropolis-polkadot/pkg/db"
	"github.com/litentry/akropolis-polkadot/pkg/db/pebble"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// State persists core snapshots keyed by tick, for daemon restarts.
type State struct {
	db db.KVStore
}

func NewState(kv db.KVStore) *State {
	return &State{db: kv}
}

// PutSnapshot stores the snapshot taken at the given tick.
func (s *State) PutSnapshot(tick chaintime.Tick, snap c2fc.Snapshot) error {
	bytes, err := cbor.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.db.Put(makeKey(prefixSnapshot, tickKey(tick)), bytes); err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// GetSnapshot retrieves the snapshot taken at the given tick.
func (s *State) GetSnapshot(tick chaintime.Tick) (c2fc.Snapshot, error) {
	bytes, err := s.db.Get(makeKey(prefixSnapshot, tickKey(tick)))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return c2fc.Snapshot{}, ErrSnapshotNotFound
		}
		return c2fc.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	var snap c2fc.Snapshot
	if err := cbor.Unmarshal(bytes, &snap); err != nil {
		return c2fc.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the most recent snapshot and its tick.
func (s *State) LatestSnapshot() (chaintime.Tick, c2fc.Snapshot, error) {
	iter, err := s.db.NewIterator([]byte{prefixSnapshot}, []byte{prefixSnapshot + 1})
	if err != nil {
		return 0, c2fc.Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	defer iter.Close() //nolint:errcheck

	var (
		found bool
		tick  chaintime.Tick
		value []byte
	)
	for iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			return 0, c2fc.Snapshot{}, fmt.Errorf("latest snapshot: malformed key %x", key)
		}
		v, err := iter.Value()
		if err != nil {
			return 0, c2fc.Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
		}
		found = true
		tick = chaintime.Tick(binary.BigEndian.Uint64(key[1:]))
		value = v
	}
	if !found {
		return 0, c2fc.Snapshot{}, ErrSnapshotNotFound
	}

	var snap c2fc.Snapshot
	if err := cbor.Unmarshal(value, &snap); err != nil {
		return 0, c2fc.Snapshot{}, fmt.Errorf("latest snapshot: unmarshal: %w", err)
	}
	return tick, snap, nil
}

func tickKey(tick chaintime.Tick) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(tick))
	return key[:]
}
