package hashes

import (
	"github.com/zeebo/blake3"
)

// Blake3Hash returns the BLAKE3 digest of data. It is defined for every input, including an empty one.
func Blake3Hash(data []byte) *Hash {
	hash := Hash(blake3.Sum256(data))
	return &hash
}

// DoubleBlake3Hash returns Blake3Hash(Blake3Hash(data))
func DoubleBlake3Hash(data []byte) *Hash {
	first := Blake3Hash(data)
	return Blake3Hash(first[:])
}

// NewBlake3HashWriter returns a new HashWriter backed by BLAKE3
func NewBlake3HashWriter() HashWriter {
	return HashWriter{blake3.New()}
}
