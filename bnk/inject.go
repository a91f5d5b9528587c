// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"encoding/binary"
	"fmt"
)

// Inject overwrites the slot of asset id with blob, in place.
//
// The replacement must fit the slot's capacity; when it is shorter,
// the rest of the slot is zero-filled so the slot never carries stale
// bytes past the new used size. The record's used-size field is
// rewritten to len(blob); the record's position and the asset's
// offset are never touched, since assets never move.
//
// Inject returns the new used size. It is idempotent for a fixed
// (id, blob) pair: repeating it leaves the container byte-identical.
func (c *Container) Inject(idx *Index, id uint32, blob []byte) (int, error) {
	entry, ok := idx.Lookup(id)
	if !ok {
		return 0, fmt.Errorf("asset %d: %w", id, ErrUnknownAsset)
	}
	if len(blob) > entry.Capacity {
		return 0, &SlotTooSmallError{ID: id, Size: len(blob), Capacity: entry.Capacity}
	}

	slot, err := c.slice(entry.PayloadOffset, entry.Capacity)
	if err != nil {
		return 0, fmt.Errorf("asset %d: %w", id, err)
	}
	n := copy(slot, blob)
	clear(slot[n:])

	used, err := c.slice(entry.RecordPos+usedSizeOffset, 4)
	if err != nil {
		return 0, fmt.Errorf("asset %d used-size record: %w", id, err)
	}
	binary.LittleEndian.PutUint32(used, uint32(len(blob)))

	return len(blob), nil
}
