package c2fc

import "github.com/litentry/akropolis-polkadot/internal/chaintime"

// OnTick is the per-tick hook invoked by the block driver, exactly once per
// tick, after all operations submitted within that tick. It walks every
// attached commitment in registration order and, at each period boundary,
// raises a breach event when the period's deposits fell short of the
// promised value, then resets the fill counter for the next period.
//
// Breach consequences (slashing the collateral, terminating the commitment)
// are the host's business; the scanner only detects and reports.
func (c *Core) OnTick(now chaintime.Tick) {
	count := c.attached.Count()
	for i := uint64(0); i < count; i++ {
		commitmentID, ok := c.attached.ByIndex(i)
		if !ok {
			break
		}
		slotID, ok := c.slotOfCommitment[commitmentID]
		if !ok {
			continue
		}
		// Slots are never destroyed, but the scanner stays defensive about
		// records vanishing underneath it.
		slot, exists := c.slots[slotID]
		if !exists || slot.Commitment == nil {
			continue
		}
		cm := slot.Commitment

		lifetime := now.Since(cm.AcceptedAt)
		if lifetime == 0 || !lifetime.OnBoundary(cm.Period) {
			continue
		}

		if outstanding := cm.Outstanding(); outstanding > 0 {
			c.log.Info().
				Str("slot", slotID.String()).
				Str("commitment", commitmentID.String()).
				Uint64("outstanding", uint64(outstanding)).
				Uint64("tick", uint64(now)).
				Msg("commitment breached")
			c.emit(Event{
				Kind:       EventCommitmentBreached,
				Slot:       slotID,
				Commitment: commitmentID,
				Amount:     outstanding,
			})
		}

		// New period starts at this boundary.
		cm.Filled = 0
	}
}
