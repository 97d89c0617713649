package pow

import (
	"encoding/binary"

	"github.com/keypears/keypears/domain/hashes"
	"github.com/pkg/errors"
)

// Header217aField is the index of one of the 12 contiguous fields of a 217 byte header
type Header217aField int

const (
	// Field217aNonce is the 32 byte field whose first 4 bytes hold the nonce
	Field217aNonce Header217aField = 7

	// Field217aWorkPar is the trailing field that receives the work-par digest
	Field217aWorkPar Header217aField = 11
)

// header217aFieldSizes are the sizes of the header fields, in order
var header217aFieldSizes = [...]int{1, 32, 32, 8, 8, 4, 32, 32, 2, 32, 2, 32}

// Header217aFieldCount is the number of fields in a 217 byte header
const Header217aFieldCount = len(header217aFieldSizes)

// Header217aSize is the size of a 217 byte header
const Header217aSize = 1 + 32 + 32 + 8 + 8 + 4 + 32 + 32 + 2 + 32 + 2 + 32

const (
	nonce217aStart   = 1 + 32 + 32 + 8 + 8 + 4 + 32
	nonce217aEnd     = nonce217aStart + 4
	workPar217aStart = Header217aSize - hashes.HashSize
	workPar217aEnd   = Header217aSize
)

// header217aFieldOffsets holds the cumulative offset of every field, followed by the header size
var header217aFieldOffsets = func() [Header217aFieldCount + 1]int {
	var offsets [Header217aFieldCount + 1]int
	for i, size := range header217aFieldSizes {
		offsets[i+1] = offsets[i] + size
	}
	return offsets
}()

// Bounds returns the byte range [start, end) the field occupies in a 217 byte header
func (field Header217aField) Bounds() (start, end int, err error) {
	if field < 0 || int(field) >= Header217aFieldCount {
		return 0, 0, errors.Errorf("header field %d is out of range [0, %d)", field, Header217aFieldCount)
	}
	return header217aFieldOffsets[field], header217aFieldOffsets[field+1], nil
}

func validateHeader217a(header []byte) error {
	return validateSize("header", header, Header217aSize)
}

// Header217aFieldBytes returns a copy of the given field of a 217 byte header
func Header217aFieldBytes(header []byte, field Header217aField) ([]byte, error) {
	err := validateHeader217a(header)
	if err != nil {
		return nil, err
	}
	start, end, err := field.Bounds()
	if err != nil {
		return nil, err
	}
	fieldBytes := make([]byte, end-start)
	copy(fieldBytes, header[start:end])
	return fieldBytes, nil
}

// InsertNonce217a returns a copy of header with nonce written big-endian into bytes 117..121
func InsertNonce217a(header []byte, nonce uint32) ([]byte, error) {
	err := validateHeader217a(header)
	if err != nil {
		return nil, err
	}
	newHeader := cloneBytes(header)
	binary.BigEndian.PutUint32(newHeader[nonce217aStart:nonce217aEnd], nonce)
	return newHeader, nil
}

// Nonce217a reads the nonce stored in bytes 117..121 of header
func Nonce217a(header []byte) (uint32, error) {
	err := validateHeader217a(header)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(header[nonce217aStart:nonce217aEnd]), nil
}

// InsertWorkPar217a returns a copy of header with workPar written into its last 32 bytes
func InsertWorkPar217a(header []byte, workPar *hashes.Hash) ([]byte, error) {
	err := validateHeader217a(header)
	if err != nil {
		return nil, err
	}
	newHeader := cloneBytes(header)
	copy(newHeader[workPar217aStart:workPar217aEnd], workPar[:])
	return newHeader, nil
}

// WorkPar217a reads the work-par digest embedded in the last 32 bytes of header
func WorkPar217a(header []byte) (*hashes.Hash, error) {
	err := validateHeader217a(header)
	if err != nil {
		return nil, err
	}
	return hashes.FromBytes(header[workPar217aStart:workPar217aEnd])
}

func cloneBytes(buf []byte) []byte {
	clone := make([]byte, len(buf))
	copy(clone, buf)
	return clone
}
