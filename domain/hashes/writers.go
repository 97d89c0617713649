package hashes

import (
	"encoding/binary"
	"hash"

	"github.com/pkg/errors"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
type HashWriter struct {
	hash.Hash
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// WriteUint32BigEndian writes value to the hash as 4 big-endian bytes
func (h HashWriter) WriteUint32BigEndian(value uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], value)
	h.InfallibleWrite(buf[:])
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *Hash {
	var sum Hash
	// Sum appends to sum[:0], which already has the right capacity. We still copy rather than rely on that.
	copy(sum[:], h.Sum(sum[:0]))
	return &sum
}
