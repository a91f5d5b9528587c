// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"
)

// recordLen is the size of one DIDX index record:
// {asset id: u32, relative offset: u32, used size: u32}, little-endian.
const recordLen = 12

// usedSizeOffset is where the used-size field sits inside a record.
const usedSizeOffset = 8

// Entry describes one asset slot. Capacity is the used size recorded
// in the bank when the index was built; it never changes afterwards,
// even as injections rewrite the on-disk used-size field.
type Entry struct {
	ID            uint32
	RecordPos     int // absolute offset of the 12-byte index record
	PayloadOffset int // absolute offset of the asset bytes
	Capacity      int
}

// Index maps asset ids to their slots. Build a fresh one per
// operation; entries are only valid against the container they were
// built from.
type Index struct {
	ids     []uint32
	entries map[uint32]Entry
}

// Index decodes the container's DIDX records into an asset index.
//
// The record count is the DIDX payload length divided by the record
// size; a trailing partial record is ignored. Offsets are not
// validated here. Entries may point past the end of a truncated
// container, and the consuming operation bounds-checks before
// slicing.
//
// A duplicated asset id keeps the later record. Real banks are not
// known to do this, so it is surfaced as a warning rather than an
// error.
func (c *Container) Index() (*Index, error) {
	lay, err := scanChunks(c.data)
	if err != nil {
		return nil, err
	}

	count := lay.didxSize / recordLen
	idx := &Index{entries: make(map[uint32]Entry, count)}
	for i := 0; i < count; i++ {
		pos := lay.didxOffset + i*recordLen
		rec := c.data[pos : pos+recordLen]

		id := binary.LittleEndian.Uint32(rec[0:4])
		rel := binary.LittleEndian.Uint32(rec[4:8])
		used := binary.LittleEndian.Uint32(rec[usedSizeOffset:recordLen])

		if _, dup := idx.entries[id]; dup {
			logrus.Warnf("duplicate asset id %d in index, keeping the later record", id)
		} else {
			idx.ids = append(idx.ids, id)
		}
		idx.entries[id] = Entry{
			ID:            id,
			RecordPos:     pos,
			PayloadOffset: lay.dataOffset + int(rel),
			Capacity:      int(used),
		}
	}
	return idx, nil
}

// Len returns the number of distinct assets in the index.
func (x *Index) Len() int {
	return len(x.ids)
}

// IDs returns asset ids in the order their records first appear in
// the DIDX chunk.
func (x *Index) IDs() []uint32 {
	return x.ids
}

// Lookup returns the entry for id.
func (x *Index) Lookup(id uint32) (Entry, bool) {
	e, ok := x.entries[id]
	return e, ok
}
