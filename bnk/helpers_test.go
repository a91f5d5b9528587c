// SPDX-License-Identifier: EPL-2.0

package bnk

import "encoding/binary"

// record mirrors one 12-byte DIDX entry in test fixtures.
type record struct {
	id   uint32
	off  uint32
	size uint32
}

// chunk appends a tagged chunk to b and returns the result.
func chunk(b []byte, tag string, payload []byte) []byte {
	b = append(b, tag...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(payload)))
	return append(b, payload...)
}

// didxPayload packs records into a DIDX payload.
func didxPayload(recs []record) []byte {
	var p []byte
	for _, r := range recs {
		p = binary.LittleEndian.AppendUint32(p, r.id)
		p = binary.LittleEndian.AppendUint32(p, r.off)
		p = binary.LittleEndian.AppendUint32(p, r.size)
	}
	return p
}

// bankBytes assembles a minimal bank: a BKHD header chunk, the index
// and the data region.
func bankBytes(recs []record, data []byte) []byte {
	var b []byte
	b = chunk(b, "BKHD", make([]byte, 8))
	b = chunk(b, "DIDX", didxPayload(recs))
	b = chunk(b, "DATA", data)
	return b
}
