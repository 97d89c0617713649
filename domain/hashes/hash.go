package hashes

import (
	"github.com/pkg/errors"
	fasthex "github.com/tmthrgd/go-hex"
)

// HashSize is the size, in bytes, of every digest produced by this package
const HashSize = 32

// Hash is a 32 byte BLAKE3 digest
type Hash [HashSize]byte

// String returns the lower-case hexadecimal encoding of the hash, in the order the bytes are stored
func (hash Hash) String() string {
	return fasthex.EncodeToString(hash[:])
}

// ByteSlice returns a copy of the hash bytes
func (hash *Hash) ByteSlice() []byte {
	byteSlice := make([]byte, HashSize)
	copy(byteSlice, hash[:])
	return byteSlice
}

// Equal returns whether hash equals other
func (hash *Hash) Equal(other *Hash) bool {
	if hash == nil || other == nil {
		return hash == other
	}
	return *hash == *other
}

// FromBytes creates a Hash from the given byte slice
func FromBytes(hashBytes []byte) (*Hash, error) {
	if len(hashBytes) != HashSize {
		return nil, errors.Errorf("invalid hash size. Want: %d, got: %d",
			HashSize, len(hashBytes))
	}
	var hash Hash
	copy(hash[:], hashBytes)
	return &hash, nil
}

// FromString creates a Hash from its hexadecimal string. Unlike transaction ids, digests are
// never byte-reversed for display, so the string decodes straight into the array.
func FromString(hashString string) (*Hash, error) {
	expectedLength := HashSize * 2
	if len(hashString) != expectedLength {
		return nil, errors.Errorf("hash string length is %d, while it should be be %d",
			len(hashString), expectedLength)
	}

	var hash Hash
	_, err := fasthex.Decode(hash[:], []byte(hashString))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't decode hash hex")
	}
	return &hash, nil
}

