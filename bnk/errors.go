// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidContainer = errors.New("missing DIDX or DATA chunk")
	ErrOutOfBounds      = errors.New("range outside container bounds")
	ErrUnknownAsset     = errors.New("asset id not present in index")
)

// SlotTooSmallError reports a replacement that does not fit the slot
// reserved for its asset. Capacity is fixed at index-build time, so
// the same replacement keeps failing for the whole operation even
// after smaller blobs were injected before it.
type SlotTooSmallError struct {
	ID       uint32
	Size     int
	Capacity int
}

func (e *SlotTooSmallError) Error() string {
	return fmt.Sprintf("asset %d: replacement is %d bytes, slot holds %d (too big by %d)",
		e.ID, e.Size, e.Capacity, e.Overflow())
}

// Overflow returns how many bytes the replacement exceeds the slot by.
func (e *SlotTooSmallError) Overflow() int {
	return e.Size - e.Capacity
}
