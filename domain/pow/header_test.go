package pow

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/keypears/keypears/domain/hashes"
	"github.com/pkg/errors"
)

// assertOnlyRangeChanged fails the test if before and after differ outside of [start, end)
func assertOnlyRangeChanged(t *testing.T, name string, before, after []byte, start, end int) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("%s: length changed from %d to %d", name, len(before), len(after))
	}
	if !bytes.Equal(before[:start], after[:start]) || !bytes.Equal(before[end:], after[end:]) {
		t.Errorf("%s: bytes outside of [%d, %d) changed.\nbefore: %s\nafter: %s",
			name, start, end, spew.Sdump(before), spew.Sdump(after))
	}
}

func TestInsertNonce217a(t *testing.T) {
	header := filledHeader(Header217aSize, 0x11)
	original := cloneBytes(header)

	newHeader, err := InsertNonce217a(header, 0x12345678)
	if err != nil {
		t.Fatalf("InsertNonce217a: %s", err)
	}

	if !bytes.Equal(header, original) {
		t.Errorf("InsertNonce217a modified its input: %s", spew.Sdump(header))
	}
	expectedNonce := []byte{0x12, 0x34, 0x56, 0x78}
	if !bytes.Equal(newHeader[117:121], expectedNonce) {
		t.Errorf("InsertNonce217a: unexpected nonce bytes. Want: %x, got: %x", expectedNonce, newHeader[117:121])
	}
	assertOnlyRangeChanged(t, "InsertNonce217a", header, newHeader, 117, 121)

	nonce, err := Nonce217a(newHeader)
	if err != nil {
		t.Fatalf("Nonce217a: %s", err)
	}
	if nonce != 0x12345678 {
		t.Errorf("Nonce217a: want 0x12345678, got 0x%x", nonce)
	}
}

func TestInsertWorkPar217a(t *testing.T) {
	header := filledHeader(Header217aSize, 0)
	workPar := hashes.Blake3Hash([]byte("work"))

	newHeader, err := InsertWorkPar217a(header, workPar)
	if err != nil {
		t.Fatalf("InsertWorkPar217a: %s", err)
	}
	if !bytes.Equal(header, filledHeader(Header217aSize, 0)) {
		t.Errorf("InsertWorkPar217a modified its input")
	}
	if !bytes.Equal(newHeader[185:217], workPar[:]) {
		t.Errorf("InsertWorkPar217a: unexpected work-par bytes %x", newHeader[185:217])
	}
	assertOnlyRangeChanged(t, "InsertWorkPar217a", header, newHeader, 185, 217)

	readWorkPar, err := WorkPar217a(newHeader)
	if err != nil {
		t.Fatalf("WorkPar217a: %s", err)
	}
	if !readWorkPar.Equal(workPar) {
		t.Errorf("WorkPar217a: want %s, got %s", workPar, readWorkPar)
	}
}

func TestHeader217aFieldBounds(t *testing.T) {
	expectedOffsets := []int{0, 1, 33, 65, 73, 81, 85, 117, 149, 151, 183, 185, 217}
	for field := Header217aField(0); int(field) < Header217aFieldCount; field++ {
		start, end, err := field.Bounds()
		if err != nil {
			t.Fatalf("field %d: Bounds: %s", field, err)
		}
		if start != expectedOffsets[field] || end != expectedOffsets[field+1] {
			t.Errorf("field %d: want [%d, %d), got [%d, %d)",
				field, expectedOffsets[field], expectedOffsets[field+1], start, end)
		}
	}

	start, _, _ := Field217aNonce.Bounds()
	if start != nonce217aStart {
		t.Errorf("nonce field starts at %d, but the nonce is written at %d", start, nonce217aStart)
	}
	start, end, _ := Field217aWorkPar.Bounds()
	if start != workPar217aStart || end != Header217aSize {
		t.Errorf("work-par field is [%d, %d), but the work-par is written at [%d, %d)",
			start, end, workPar217aStart, workPar217aEnd)
	}

	for _, field := range []Header217aField{-1, Header217aField(Header217aFieldCount)} {
		_, _, err := field.Bounds()
		if err == nil {
			t.Errorf("field %d: expected an error", field)
		}
	}
}

func TestHeader217aFieldBytes(t *testing.T) {
	header := make([]byte, Header217aSize)
	for i := range header {
		header[i] = byte(i)
	}

	fieldBytes, err := Header217aFieldBytes(header, Field217aNonce)
	if err != nil {
		t.Fatalf("Header217aFieldBytes: %s", err)
	}
	if !bytes.Equal(fieldBytes, header[117:149]) {
		t.Errorf("Header217aFieldBytes: unexpected bytes %x", fieldBytes)
	}

	fieldBytes[0] = 0xff
	if header[117] != 117 {
		t.Errorf("Header217aFieldBytes: returned slice aliases the header")
	}

	_, err = Header217aFieldBytes(header, Header217aField(Header217aFieldCount))
	if err == nil {
		t.Errorf("Header217aFieldBytes: expected an error for an out of range field")
	}
}

func TestInsertNonce64b(t *testing.T) {
	header := filledHeader(Header64bSize, 0)

	newHeader, err := InsertNonce64b(header, 0x12345678)
	if err != nil {
		t.Fatalf("InsertNonce64b: %s", err)
	}
	expectedNonce := []byte{0x12, 0x34, 0x56, 0x78}
	if !bytes.Equal(newHeader[28:32], expectedNonce) {
		t.Errorf("InsertNonce64b: unexpected nonce bytes. Want: %x, got: %x", expectedNonce, newHeader[28:32])
	}
	assertOnlyRangeChanged(t, "InsertNonce64b", header, newHeader, 28, 32)
	if !bytes.Equal(header, filledHeader(Header64bSize, 0)) {
		t.Errorf("InsertNonce64b modified its input")
	}

	nonce, err := Nonce64b(newHeader)
	if err != nil {
		t.Fatalf("Nonce64b: %s", err)
	}
	if nonce != 0x12345678 {
		t.Errorf("Nonce64b: want 0x12345678, got 0x%x", nonce)
	}
}

func TestSetNonce64b(t *testing.T) {
	header := filledHeader(Header64bSize, 0)
	nonce := filledHeader(WideNonce64bSize, 0x11)

	newHeader, err := SetNonce64b(header, nonce)
	if err != nil {
		t.Fatalf("SetNonce64b: %s", err)
	}
	if !bytes.Equal(newHeader[:32], nonce) {
		t.Errorf("SetNonce64b: first 32 bytes should be 0x11: %s", spew.Sdump(newHeader))
	}
	if !bytes.Equal(newHeader[32:], make([]byte, 32)) {
		t.Errorf("SetNonce64b: last 32 bytes should be zero: %s", spew.Sdump(newHeader))
	}
	if !bytes.Equal(header, filledHeader(Header64bSize, 0)) {
		t.Errorf("SetNonce64b modified its input")
	}

	wideNonce, err := WideNonce64b(newHeader)
	if err != nil {
		t.Fatalf("WideNonce64b: %s", err)
	}
	if !bytes.Equal(wideNonce, nonce) {
		t.Errorf("WideNonce64b: want %x, got %x", nonce, wideNonce)
	}
	challenge, err := Challenge64b(newHeader)
	if err != nil {
		t.Fatalf("Challenge64b: %s", err)
	}
	if !bytes.Equal(challenge, make([]byte, 32)) {
		t.Errorf("Challenge64b: unexpected challenge %x", challenge)
	}

	// The nonce must be copied, not aliased
	nonce[0] = 0x22
	if newHeader[0] != 0x11 {
		t.Errorf("SetNonce64b: header aliases the nonce argument")
	}
}

func TestSetNonce64bWrongNonceSize(t *testing.T) {
	header := filledHeader(Header64bSize, 0)
	for _, size := range []int{0, 4, 31, 33, 64} {
		_, err := SetNonce64b(header, make([]byte, size))
		var sizeErr *SizeMismatchError
		if !errors.As(err, &sizeErr) {
			t.Errorf("nonce of %d bytes: expected a *SizeMismatchError, got %v", size, err)
			continue
		}
		if sizeErr.Name != "nonce" || sizeErr.Expected != WideNonce64bSize || sizeErr.Actual != size {
			t.Errorf("nonce of %d bytes: unexpected error fields %+v", size, sizeErr)
		}
	}
}

func TestNarrowAndWideNonceOverlap(t *testing.T) {
	header, err := SetNonce64b(filledHeader(Header64bSize, 0), filledHeader(WideNonce64bSize, 0x11))
	if err != nil {
		t.Fatalf("SetNonce64b: %s", err)
	}
	header, err = InsertNonce64b(header, 0)
	if err != nil {
		t.Fatalf("InsertNonce64b: %s", err)
	}
	expected := append(filledHeader(28, 0x11), 0, 0, 0, 0)
	if !bytes.Equal(header[:32], expected) {
		t.Errorf("narrow nonce should overwrite the tail of the wide nonce: %x", header[:32])
	}
}
