package pow

import (
	"encoding/binary"
)

// Header64bSize is the size of a 64 byte header: a 32 byte nonce followed by a 32 byte challenge
const Header64bSize = 64

// WideNonce64bSize is the size of the full nonce field of a 64 byte header
const WideNonce64bSize = 32

const (
	wideNonce64bStart = 0
	wideNonce64bEnd   = wideNonce64bStart + WideNonce64bSize

	// The narrow nonce is the last 4 bytes of the wide nonce field. These are the bytes a
	// GPU miner iterates.
	nonce64bStart = wideNonce64bEnd - 4
	nonce64bEnd   = wideNonce64bEnd

	challenge64bStart = wideNonce64bEnd
	challenge64bEnd   = Header64bSize
)

func validateHeader64b(header []byte) error {
	return validateSize("header", header, Header64bSize)
}

// InsertNonce64b returns a copy of header with nonce written big-endian into bytes 28..32
func InsertNonce64b(header []byte, nonce uint32) ([]byte, error) {
	err := validateHeader64b(header)
	if err != nil {
		return nil, err
	}
	newHeader := cloneBytes(header)
	binary.BigEndian.PutUint32(newHeader[nonce64bStart:nonce64bEnd], nonce)
	return newHeader, nil
}

// SetNonce64b returns a copy of header with its whole 32 byte nonce field replaced by nonce
func SetNonce64b(header []byte, nonce []byte) ([]byte, error) {
	err := validateHeader64b(header)
	if err != nil {
		return nil, err
	}
	err = validateSize("nonce", nonce, WideNonce64bSize)
	if err != nil {
		return nil, err
	}
	newHeader := cloneBytes(header)
	copy(newHeader[wideNonce64bStart:wideNonce64bEnd], nonce)
	return newHeader, nil
}

// Nonce64b reads the narrow nonce stored in bytes 28..32 of header
func Nonce64b(header []byte) (uint32, error) {
	err := validateHeader64b(header)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(header[nonce64bStart:nonce64bEnd]), nil
}

// WideNonce64b returns a copy of the 32 byte nonce field of header
func WideNonce64b(header []byte) ([]byte, error) {
	err := validateHeader64b(header)
	if err != nil {
		return nil, err
	}
	return cloneBytes(header[wideNonce64bStart:wideNonce64bEnd]), nil
}

// Challenge64b returns a copy of the 32 byte challenge of header
func Challenge64b(header []byte) ([]byte, error) {
	err := validateHeader64b(header)
	if err != nil {
		return nil, err
	}
	return cloneBytes(header[challenge64bStart:challenge64bEnd]), nil
}
