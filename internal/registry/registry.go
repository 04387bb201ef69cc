// Package registry implements the enumerable ownership registry used by the
// core for slots and commitments: a dense global array of IDs plus reverse
// ID-to-index maps, globally and per owner, giving O(1) insert, O(1)
// swap-remove and full enumeration in both dimensions.
package registry

import (
	"errors"

	"github.com/litentry/akropolis-polkadot/internal/safemath"
)

var (
	ErrAlreadyExists    = errors.New("registry: id already registered")
	ErrNotFound         = errors.New("registry: id not registered")
	ErrNotOwner         = errors.New("registry: account does not own this id")
	ErrCounterOverflow  = errors.New("registry: ownership counter overflow")
	ErrCounterUnderflow = errors.New("registry: ownership counter underflow")
)

// Registry tracks which owner holds which IDs. All four underlying
// structures (global array, global index, per-owner arrays, per-owner index)
// stay mutually consistent after every operation: a failed operation leaves
// no partial state.
type Registry[ID comparable, Owner comparable] struct {
	global      []ID
	globalIndex map[ID]uint64
	owned       map[Owner][]ID
	ownedIndex  map[ID]uint64
	owners      map[ID]Owner
}

func New[ID comparable, Owner comparable]() *Registry[ID, Owner] {
	return &Registry[ID, Owner]{
		globalIndex: make(map[ID]uint64),
		owned:       make(map[Owner][]ID),
		ownedIndex:  make(map[ID]uint64),
		owners:      make(map[ID]Owner),
	}
}

// Insert registers id under owner. Fails with ErrAlreadyExists if the id is
// already registered, anywhere.
func (r *Registry[ID, Owner]) Insert(owner Owner, id ID) error {
	if _, exists := r.owners[id]; exists {
		return ErrAlreadyExists
	}
	globalCount := uint64(len(r.global))
	if _, ok := safemath.Add64(globalCount, 1); !ok {
		return ErrCounterOverflow
	}
	ownedCount := uint64(len(r.owned[owner]))
	if _, ok := safemath.Add64(ownedCount, 1); !ok {
		return ErrCounterOverflow
	}

	r.global = append(r.global, id)
	r.globalIndex[id] = globalCount
	r.owned[owner] = append(r.owned[owner], id)
	r.ownedIndex[id] = ownedCount
	r.owners[id] = owner
	return nil
}

// Transfer moves id from one owner to another. The global enumeration is
// untouched: it always reflects creation order regardless of current owner.
func (r *Registry[ID, Owner]) Transfer(id ID, from, to Owner) error {
	owner, exists := r.owners[id]
	if !exists {
		return ErrNotFound
	}
	if owner != from {
		return ErrNotOwner
	}
	if _, ok := safemath.Add64(uint64(len(r.owned[to])), 1); !ok {
		return ErrCounterOverflow
	}
	if _, ok := safemath.Sub64(uint64(len(r.owned[from])), 1); !ok {
		return ErrCounterUnderflow
	}

	r.removeOwned(id, from)
	r.ownedIndex[id] = uint64(len(r.owned[to]))
	r.owned[to] = append(r.owned[to], id)
	r.owners[id] = to
	return nil
}

// Remove deregisters id entirely, from the global enumeration and its
// owner's array. Both use swap-with-last removal, so global order is no
// longer creation order once a removal has happened.
func (r *Registry[ID, Owner]) Remove(id ID) error {
	owner, exists := r.owners[id]
	if !exists {
		return ErrNotFound
	}
	if _, ok := safemath.Sub64(uint64(len(r.global)), 1); !ok {
		return ErrCounterUnderflow
	}

	r.removeOwned(id, owner)

	last := uint64(len(r.global) - 1)
	idx := r.globalIndex[id]
	if idx != last {
		moved := r.global[last]
		r.global[idx] = moved
		r.globalIndex[moved] = idx
	}
	r.global = r.global[:last]
	delete(r.globalIndex, id)
	delete(r.ownedIndex, id)
	delete(r.owners, id)
	return nil
}

// removeOwned drops id from owner's dense array by swapping the last element
// into its slot. Only the formerly-last element changes position.
func (r *Registry[ID, Owner]) removeOwned(id ID, owner Owner) {
	arr := r.owned[owner]
	last := uint64(len(arr) - 1)
	idx := r.ownedIndex[id]
	if idx != last {
		moved := arr[last]
		arr[idx] = moved
		r.ownedIndex[moved] = idx
	}
	r.owned[owner] = arr[:last]
}

// OwnerOf returns the current owner of id.
func (r *Registry[ID, Owner]) OwnerOf(id ID) (Owner, bool) {
	owner, exists := r.owners[id]
	return owner, exists
}

// Contains reports whether id is registered.
func (r *Registry[ID, Owner]) Contains(id ID) bool {
	_, exists := r.owners[id]
	return exists
}

// Count returns the number of registered IDs.
func (r *Registry[ID, Owner]) Count() uint64 {
	return uint64(len(r.global))
}

// CountOf returns the number of IDs held by owner.
func (r *Registry[ID, Owner]) CountOf(owner Owner) uint64 {
	return uint64(len(r.owned[owner]))
}

// ByIndex returns the id at position i of the global enumeration.
func (r *Registry[ID, Owner]) ByIndex(i uint64) (ID, bool) {
	if i >= uint64(len(r.global)) {
		var zero ID
		return zero, false
	}
	return r.global[i], true
}

// OwnedByIndex returns the id at position i of owner's enumeration.
func (r *Registry[ID, Owner]) OwnedByIndex(owner Owner, i uint64) (ID, bool) {
	arr := r.owned[owner]
	if i >= uint64(len(arr)) {
		var zero ID
		return zero, false
	}
	return arr[i], true
}

// All returns a snapshot of the global enumeration.
func (r *Registry[ID, Owner]) All() []ID {
	out := make([]ID, len(r.global))
	copy(out, r.global)
	return out
}

// OwnedBy returns a snapshot of owner's enumeration.
func (r *Registry[ID, Owner]) OwnedBy(owner Owner) []ID {
	arr := r.owned[owner]
	out := make([]ID, len(arr))
	copy(out, arr)
	return out
}
