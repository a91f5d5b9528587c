// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SingleAsset(t *testing.T) {
	t.Parallel()

	c := FromBytes(bankBytes([]record{{id: 100, off: 0, size: 4}}, []byte("AAAA")))
	idx, err := c.Index()
	require.NoError(t, err)

	assets := c.Extract(idx)
	require.Len(t, assets, 1)
	assert.Equal(t, uint32(100), assets[0].ID)
	assert.Equal(t, []byte("AAAA"), assets[0].Data)
	assert.NoError(t, assets[0].Err)
}

func TestExtract_OutOfBoundsIsPerAsset(t *testing.T) {
	t.Parallel()

	c := FromBytes(bankBytes([]record{
		{id: 1, off: 0, size: 2},
		{id: 2, off: 5000, size: 10}, // points past the buffer
		{id: 3, off: 2, size: 2},
	}, []byte("aabb")))
	idx, err := c.Index()
	require.NoError(t, err)

	assets := c.Extract(idx)
	require.Len(t, assets, 3)

	assert.Equal(t, []byte("aa"), assets[0].Data)
	assert.ErrorIs(t, assets[1].Err, ErrOutOfBounds)
	assert.Equal(t, []byte("bb"), assets[2].Data)
}

func TestExtract_DataIsACopy(t *testing.T) {
	t.Parallel()

	c := FromBytes(bankBytes([]record{{id: 9, off: 0, size: 3}}, []byte("old")))
	idx, err := c.Index()
	require.NoError(t, err)

	assets := c.Extract(idx)
	require.Len(t, assets, 1)

	_, err = c.Inject(idx, 9, []byte("new"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), assets[0].Data)
}
