// SPDX-License-Identifier: EPL-2.0

package bnk

import (
	"bytes"
	"fmt"
	"os"
)

// Container is the in-memory image of one bank file. It owns its
// buffer exclusively for the duration of an operation and its length
// never changes: patching rewrites bytes in place, it never inserts,
// appends or truncates.
type Container struct {
	data []byte
}

// Load reads a bank file into an owned buffer.
func Load(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bank: %w", err)
	}
	return &Container{data: data}, nil
}

// FromBytes wraps an existing buffer. The container takes ownership;
// the caller must not keep using data.
func FromBytes(data []byte) *Container {
	return &Container{data: data}
}

// Len returns the container's byte length. It is invariant across
// every operation in this package.
func (c *Container) Len() int {
	return len(c.data)
}

// Bytes exposes the underlying buffer. Mutating it bypasses the
// codec's bounds checks; intended for writing and comparisons.
func (c *Container) Bytes() []byte {
	return c.data
}

// WriteFile writes the container back to disk.
func (c *Container) WriteFile(path string) error {
	if err := os.WriteFile(path, c.data, 0644); err != nil {
		return fmt.Errorf("writing bank: %w", err)
	}
	return nil
}

// slice returns the byte range [off, off+length) of the container,
// or ErrOutOfBounds when the range does not fit the buffer.
func (c *Container) slice(off, length int) ([]byte, error) {
	if off < 0 || length < 0 || off+length > len(c.data) {
		return nil, fmt.Errorf("%d bytes at offset %d: %w", length, off, ErrOutOfBounds)
	}
	return c.data[off : off+length], nil
}

// sniffLen bounds how much of a file Sniff inspects.
const sniffLen = 4096

// Sniff reports whether the file at path looks like a soundbank, by
// checking for the BKHD bank header tag near the start of the file.
func Sniff(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, _ := f.Read(buf)
	if n == 0 {
		return false
	}
	return bytes.Contains(buf[:n], []byte("BKHD"))
}
