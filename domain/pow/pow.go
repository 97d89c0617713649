package pow

import (
	"github.com/keypears/keypears/domain/hashes"
)

// GetWorkPar217a computes the work-par digest of a 217 byte header
func GetWorkPar217a(header []byte) (*hashes.Hash, error) {
	err := validateHeader217a(header)
	if err != nil {
		return nil, err
	}
	return matmulWork(header), nil
}

// ElementaryIteration217a computes the proof-of-work digest of a 217 byte header.
// The work-par digest is embedded in the header, and the result is the hash of the hash of that header.
func ElementaryIteration217a(header []byte) (*hashes.Hash, error) {
	workPar, err := GetWorkPar217a(header)
	if err != nil {
		return nil, err
	}

	workingHeader, err := InsertWorkPar217a(header, workPar)
	if err != nil {
		return nil, err
	}

	return hashes.DoubleBlake3Hash(workingHeader), nil
}

// MatmulWork64b computes the matmul work digest of a 64 byte header
func MatmulWork64b(header []byte) (*hashes.Hash, error) {
	err := validateHeader64b(header)
	if err != nil {
		return nil, err
	}
	return matmulWork(header), nil
}

// ElementaryIteration64b computes the proof-of-work digest of a 64 byte header.
// 64 byte headers have no slot for the work digest, so it is double hashed directly.
func ElementaryIteration64b(header []byte) (*hashes.Hash, error) {
	work, err := MatmulWork64b(header)
	if err != nil {
		return nil, err
	}
	return hashes.DoubleBlake3Hash(work[:]), nil
}
