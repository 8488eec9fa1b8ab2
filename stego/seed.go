package stego

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// GenerateSeed derives a deterministic 64-bit seed from a key: the first
// eight bytes of SHA-256(key), big-endian. The same key must produce the
// same seed across processes; this is the only mechanism that lets the
// extractor reconstruct the slot order without storing it.
func GenerateSeed(key string) uint64 {
	hash := sha256.Sum256([]byte(key))
	return binary.BigEndian.Uint64(hash[:8])
}

// Permutation returns a seeded Fisher-Yates shuffle of [0, n).
// math/rand with a fixed source is deterministic across runs, which the
// container format relies on.
func Permutation(n int, seed uint64) []int {
	rng := rand.New(rand.NewSource(int64(seed)))
	return rng.Perm(n)
}

// StartOffset returns seed mod n, the rotation start used by the sample
// carrier instead of a full shuffle.
func StartOffset(n int, seed uint64) int {
	if n <= 0 {
		return 0
	}
	return int(seed % uint64(n))
}
