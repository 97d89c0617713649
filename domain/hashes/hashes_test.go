package hashes

import (
	"strings"
	"testing"
)

// Test vectors are the published BLAKE3 digests of the given inputs.
func TestBlake3Hash(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "empty input",
			input:    []byte{},
			expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:     "nil input",
			input:    nil,
			expected: "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		},
		{
			name:     "hello world",
			input:    []byte("hello world"),
			expected: "d74981efa70a0c880b8d8c1985d075dbcbf679b99a5f9914e5aaf96b831a9e24",
		},
	}

	for _, test := range tests {
		hash := Blake3Hash(test.input)
		if hash.String() != test.expected {
			t.Errorf("%s: unexpected hash. Want: %s, got: %s", test.name, test.expected, hash)
		}
	}
}

func TestDoubleBlake3Hash(t *testing.T) {
	data := []byte("hello world")
	first := Blake3Hash(data)
	expected := Blake3Hash(first[:])

	hash := DoubleBlake3Hash(data)
	if !hash.Equal(expected) {
		t.Fatalf("DoubleBlake3Hash: want %s, got %s", expected, hash)
	}
	if hash.Equal(first) {
		t.Fatalf("DoubleBlake3Hash: unexpectedly equal to the single hash %s", first)
	}
}

func TestHashWriter(t *testing.T) {
	writer := NewBlake3HashWriter()
	writer.InfallibleWrite([]byte("hello"))
	writer.InfallibleWrite([]byte(" "))
	writer.InfallibleWrite([]byte("world"))

	expected := Blake3Hash([]byte("hello world"))
	if hash := writer.Finalize(); !hash.Equal(expected) {
		t.Fatalf("HashWriter: want %s, got %s", expected, hash)
	}
}

func TestHashWriterUint32BigEndian(t *testing.T) {
	writer := NewBlake3HashWriter()
	writer.WriteUint32BigEndian(0x12345678)
	writer.WriteUint32BigEndian(0xffffffff)

	expected := Blake3Hash([]byte{0x12, 0x34, 0x56, 0x78, 0xff, 0xff, 0xff, 0xff})
	if hash := writer.Finalize(); !hash.Equal(expected) {
		t.Fatalf("WriteUint32BigEndian: want %s, got %s", expected, hash)
	}
}

func TestFromString(t *testing.T) {
	const hashString = "d74981efa70a0c880b8d8c1985d075dbcbf679b99a5f9914e5aaf96b831a9e24"
	hash, err := FromString(hashString)
	if err != nil {
		t.Fatalf("FromString: %s", err)
	}
	if hash.String() != hashString {
		t.Errorf("FromString: round trip mismatch. Want: %s, got: %s", hashString, hash)
	}
	if hash[0] != 0xd7 || hash[HashSize-1] != 0x24 {
		t.Errorf("FromString: bytes were not decoded in stored order: %v", hash[:])
	}

	_, err = FromString(hashString[:62])
	if err == nil {
		t.Errorf("FromString: expected an error for a short string")
	}

	_, err = FromString(strings.Repeat("zz", HashSize))
	if err == nil {
		t.Errorf("FromString: expected an error for non-hex input")
	}
}

func TestFromBytes(t *testing.T) {
	buf := make([]byte, HashSize)
	buf[0] = 0x01
	hash, err := FromBytes(buf)
	if err != nil {
		t.Fatalf("FromBytes: %s", err)
	}

	// The hash must not alias the input buffer
	buf[0] = 0x02
	if hash[0] != 0x01 {
		t.Errorf("FromBytes: hash aliases its input")
	}

	byteSlice := hash.ByteSlice()
	byteSlice[1] = 0xff
	if hash[1] != 0 {
		t.Errorf("ByteSlice: returned slice aliases the hash")
	}

	_, err = FromBytes(make([]byte, HashSize+1))
	if err == nil {
		t.Errorf("FromBytes: expected an error for a %d byte input", HashSize+1)
	}
}

func TestHashEqualNil(t *testing.T) {
	if !(*Hash)(nil).Equal(nil) {
		t.Error("Equal: nil hashes should match")
	}
	if Blake3Hash(nil).Equal(nil) {
		t.Error("Equal: non-nil hash matches nil hash")
	}
}
