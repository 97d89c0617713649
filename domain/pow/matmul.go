package pow

import (
	"github.com/keypears/keypears/domain/hashes"
)

// matrixSize is both the number of rounds and the number of bytes in a row or column
const matrixSize = hashes.HashSize

// matmulWork expands the hash of data into a 32 byte digest.
//
// The hash of data is treated as the first row of matrix A. Each round derives a new column of
// matrix B by re-hashing the previous column, and the dot product of the row and that column
// becomes one entry of the first row of matrix C. The rounds form a serial hash chain and must
// run in order. The entries of C are accumulated as uint32 and wrap on overflow. Finally C's row
// is serialized big-endian and hashed down to 32 bytes.
func matmulWork(data []byte) *hashes.Hash {
	row := hashes.Blake3Hash(data)

	column := *row
	var matrixCRow [matrixSize]uint32
	for i := range matrixCRow {
		column = *hashes.Blake3Hash(column[:])

		var sum uint32
		for j := 0; j < matrixSize; j++ {
			sum += uint32(row[j]) * uint32(column[j])
		}
		matrixCRow[i] = sum
	}

	writer := hashes.NewBlake3HashWriter()
	for _, value := range matrixCRow {
		writer.WriteUint32BigEndian(value)
	}
	return writer.Finalize()
}
