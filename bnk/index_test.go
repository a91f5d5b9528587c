// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_DecodesRecords(t *testing.T) {
	t.Parallel()

	c := FromBytes(bankBytes([]record{
		{id: 100, off: 0, size: 4},
		{id: 200, off: 4, size: 6},
	}, []byte("AAAABBBBBB")))

	idx, err := c.Index()
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []uint32{100, 200}, idx.IDs())

	e, ok := idx.Lookup(200)
	require.True(t, ok)
	assert.Equal(t, uint32(200), e.ID)
	assert.Equal(t, 6, e.Capacity)
	assert.Equal(t, []byte("BBBBBB"), c.Bytes()[e.PayloadOffset:e.PayloadOffset+e.Capacity])

	_, ok = idx.Lookup(300)
	assert.False(t, ok)
}

func TestIndex_TrailingPartialRecordIgnored(t *testing.T) {
	t.Parallel()

	// A 13-byte DIDX payload holds one valid record plus one stray
	// byte; the stray byte is not a record.
	payload := append(didxPayload([]record{{id: 100, off: 0, size: 4}}), 0x7F)
	var bank []byte
	bank = chunk(bank, "DIDX", payload)
	bank = chunk(bank, "DATA", []byte("AAAA"))

	idx, err := FromBytes(bank).Index()
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, []uint32{100}, idx.IDs())
}

func TestIndex_DuplicateIDLastWins(t *testing.T) {
	t.Parallel()

	c := FromBytes(bankBytes([]record{
		{id: 5, off: 0, size: 2},
		{id: 5, off: 2, size: 3},
	}, []byte("XXYYY")))

	idx, err := c.Index()
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	e, ok := idx.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, 3, e.Capacity)
	assert.Equal(t, []byte("YYY"), c.Bytes()[e.PayloadOffset:e.PayloadOffset+e.Capacity])
}

func TestIndex_InvalidContainer(t *testing.T) {
	t.Parallel()

	var bank []byte
	bank = chunk(bank, "DIDX", didxPayload([]record{{id: 1, off: 0, size: 1}}))

	_, err := FromBytes(bank).Index()
	assert.ErrorIs(t, err, ErrInvalidContainer)
}

func TestIndex_OffsetsNotValidatedAtBuildTime(t *testing.T) {
	t.Parallel()

	// A record pointing past the end of the container still indexes;
	// the consuming operation rejects it when slicing.
	c := FromBytes(bankBytes([]record{{id: 1, off: 1000, size: 50}}, []byte("AA")))

	idx, err := c.Index()
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}
