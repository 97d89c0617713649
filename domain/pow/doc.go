/*
Package pow implements the pow5 proof-of-work hash for two header layouts.

A 217a header is 217 bytes. Its nonce is a big-endian uint32 at bytes 117..121, and its last 32
bytes are reserved for the work-par digest. A 64b header is a 32 byte nonce followed by a 32 byte
challenge; its narrow nonce is a big-endian uint32 at bytes 28..32.

Both layouts share one matmul step: the header hash is multiplied, as a row of bytes, against 32
columns produced by repeatedly re-hashing it, and the resulting row of uint32 sums is hashed back
down to 32 bytes. For 217a headers that digest is embedded in the header before the header is
double hashed; for 64b headers the digest itself is double hashed.

Every function is pure. Headers are never modified in place; the insert functions return copies.
The package does not compare digests against a difficulty target.

All hashing is BLAKE3, provided by package hashes.
*/
package pow
