// SPDX-License-Identifier: EPL-2.0

package bnk

import "fmt"

// ExtractedAsset is the outcome of extracting a single slot. Data is
// a copy; it stays valid after the container is mutated or released.
type ExtractedAsset struct {
	ID   uint32
	Data []byte
	Err  error
}

// Extract copies every indexed asset out of the container. An entry
// whose slot reaches past the end of the buffer yields a per-asset
// ErrOutOfBounds without aborting the remaining entries, so a
// truncated bank still gives up everything it can. The container is
// not modified.
func (c *Container) Extract(idx *Index) []ExtractedAsset {
	out := make([]ExtractedAsset, 0, idx.Len())
	for _, id := range idx.IDs() {
		entry, _ := idx.Lookup(id)
		slot, err := c.slice(entry.PayloadOffset, entry.Capacity)
		if err != nil {
			out = append(out, ExtractedAsset{
				ID:  id,
				Err: fmt.Errorf("asset %d: %w", id, err),
			})
			continue
		}
		blob := make([]byte, len(slot))
		copy(blob, slot)
		out = append(out, ExtractedAsset{ID: id, Data: blob})
	}
	return out
}
