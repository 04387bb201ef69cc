package c2fc

import (
	"fmt"

	"github.com/litentry/akropolis-polkadot/internal/crypto"
	"github.com/litentry/akropolis-polkadot/internal/ledger"
)

const slotDomain = "c2fc/slot"

// CreateSlot mints a fresh slot owned by the caller, with no commitment and
// not for sale. The derived ID is practically unique; a collision is still
// rejected with registry.ErrAlreadyExists.
func (c *Core) CreateSlot(caller ledger.AccountID) (SlotID, error) {
	id := crypto.DeriveID(slotDomain, c.seed, caller, c.nonce)

	if err := c.slotOwners.Insert(caller, id); err != nil {
		return SlotID{}, fmt.Errorf("mint slot: %w", err)
	}
	c.slots[id] = &Slot{ID: id}
	c.nonce++

	c.log.Debug().Str("slot", id.String()).Msg("slot created")
	c.emit(Event{Kind: EventSlotCreated, Slot: id, Account: caller})
	return id, nil
}

// SetPrice sets the slot's sale price. Zero disables sale.
func (c *Core) SetPrice(caller ledger.AccountID, slotID SlotID, price ledger.Balance) error {
	slot, exists := c.slots[slotID]
	if !exists {
		return ErrSlotNotFound
	}
	owner, _ := c.slotOwners.OwnerOf(slotID)
	if owner != caller {
		return ErrNotSlotOwner
	}

	slot.Price = price

	c.emit(Event{Kind: EventPriceSet, Slot: slotID, Account: caller, Amount: price})
	return nil
}

// TransferSlot hands the slot to another account. Only the current owner
// may transfer.
func (c *Core) TransferSlot(caller, to ledger.AccountID, slotID SlotID) error {
	if _, exists := c.slots[slotID]; !exists {
		return ErrSlotNotFound
	}
	owner, _ := c.slotOwners.OwnerOf(slotID)
	if owner != caller {
		return ErrNotSlotOwner
	}

	if err := c.slotOwners.Transfer(slotID, caller, to); err != nil {
		return fmt.Errorf("transfer slot: %w", err)
	}

	c.emit(Event{Kind: EventTransferred, Slot: slotID, Account: caller, Counterparty: to})
	return nil
}

// Buy purchases a slot listed for sale, paying its current price to the
// owner, provided the price does not exceed maxPrice. The sale resets the
// price to zero.
func (c *Core) Buy(caller ledger.AccountID, slotID SlotID, maxPrice ledger.Balance) error {
	slot, exists := c.slots[slotID]
	if !exists {
		return ErrSlotNotFound
	}
	owner, _ := c.slotOwners.OwnerOf(slotID)
	if owner == caller {
		return ErrBuyOwnSlot
	}
	price := slot.Price
	if price == 0 {
		return ErrNotForSale
	}
	if price > maxPrice {
		return ErrPriceTooHigh
	}

	if err := c.ledger.Transfer(caller, owner, price); err != nil {
		return fmt.Errorf("pay for slot: %w", err)
	}
	if err := c.slotOwners.Transfer(slotID, owner, caller); err != nil {
		return fmt.Errorf("transfer bought slot: %w", err)
	}
	slot.Price = 0

	c.log.Debug().
		Str("slot", slotID.String()).
		Uint64("price", uint64(price)).
		Msg("slot bought")
	c.emit(Event{Kind: EventBought, Slot: slotID, Account: caller, Counterparty: owner, Amount: price})
	return nil
}
