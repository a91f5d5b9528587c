// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"bytes"
	"encoding/binary"
)

// headerLen is the size of a chunk header: a 4-byte ASCII tag
// followed by a little-endian u32 payload length.
const headerLen = 8

var (
	didxTag = []byte("DIDX")
	dataTag = []byte("DATA")
)

// layout locates the two chunks the codec cares about. Offsets are
// absolute within the container and point at chunk payloads, past
// their headers.
type layout struct {
	didxOffset int
	didxSize   int
	dataOffset int
}

// scanChunks walks the chunk sequence from offset zero. Unrecognized
// tags are skipped by their declared size, not interpreted. A header
// whose size would run past the end of the buffer ends the scan; that
// by itself is not an error. The scan fails only when DIDX or DATA
// was never seen.
func scanChunks(data []byte) (layout, error) {
	lay := layout{didxOffset: -1, dataOffset: -1}

	off := 0
	for off+headerLen <= len(data) {
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+headerLen]))
		if size < 0 || size > len(data)-off-headerLen {
			break
		}
		tag := data[off : off+4]
		switch {
		case bytes.Equal(tag, didxTag):
			lay.didxOffset = off + headerLen
			lay.didxSize = size
		case bytes.Equal(tag, dataTag):
			lay.dataOffset = off + headerLen
		}
		off += headerLen + size
	}

	if lay.didxOffset < 0 || lay.dataOffset < 0 {
		return layout{}, ErrInvalidContainer
	}
	return lay, nil
}
