package pow

import (
	"strings"

	"github.com/keypears/keypears/domain/hashes"
	"github.com/pkg/errors"
)

// Variant selects one of the supported header layouts
type Variant uint8

// The supported header layouts
const (
	Variant217a Variant = iota
	Variant64b
)

var variantNames = map[Variant]string{
	Variant217a: "217a",
	Variant64b:  "64b",
}

// ParseVariant returns the Variant called name. Names are case insensitive.
func ParseVariant(name string) (Variant, error) {
	lowerName := strings.ToLower(name)
	for variant, variantName := range variantNames {
		if variantName == lowerName {
			return variant, nil
		}
	}
	return 0, errors.Errorf("unknown header variant '%s'. Supported variants: 217a, 64b", name)
}

func (variant Variant) String() string {
	name, ok := variantNames[variant]
	if !ok {
		return "unknown"
	}
	return name
}

// HeaderSize returns the size of a header of this variant
func (variant Variant) HeaderSize() int {
	switch variant {
	case Variant217a:
		return Header217aSize
	case Variant64b:
		return Header64bSize
	}
	panic(errors.Errorf("unknown header variant %d", variant))
}

// ValidateHeader returns a SizeMismatchError if header has the wrong size for this variant
func (variant Variant) ValidateHeader(header []byte) error {
	switch variant {
	case Variant217a:
		return validateHeader217a(header)
	case Variant64b:
		return validateHeader64b(header)
	}
	return errors.Errorf("unknown header variant %d", variant)
}

// InsertNonce returns a copy of header with nonce written into its 4 byte nonce slot
func (variant Variant) InsertNonce(header []byte, nonce uint32) ([]byte, error) {
	switch variant {
	case Variant217a:
		return InsertNonce217a(header, nonce)
	case Variant64b:
		return InsertNonce64b(header, nonce)
	}
	return nil, errors.Errorf("unknown header variant %d", variant)
}

// Nonce reads the 4 byte nonce of header
func (variant Variant) Nonce(header []byte) (uint32, error) {
	switch variant {
	case Variant217a:
		return Nonce217a(header)
	case Variant64b:
		return Nonce64b(header)
	}
	return 0, errors.Errorf("unknown header variant %d", variant)
}

// Work returns the intermediate matmul digest of header: the work-par digest for 217a headers
// and the matmul work digest for 64b headers
func (variant Variant) Work(header []byte) (*hashes.Hash, error) {
	switch variant {
	case Variant217a:
		return GetWorkPar217a(header)
	case Variant64b:
		return MatmulWork64b(header)
	}
	return nil, errors.Errorf("unknown header variant %d", variant)
}

// ElementaryIteration returns the final proof-of-work digest of header
func (variant Variant) ElementaryIteration(header []byte) (*hashes.Hash, error) {
	switch variant {
	case Variant217a:
		return ElementaryIteration217a(header)
	case Variant64b:
		return ElementaryIteration64b(header)
	}
	return nil, errors.Errorf("unknown header variant %d", variant)
}
