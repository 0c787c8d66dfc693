// Released under an MIT license. See LICENSE.

// Package cell defines the interface for all mal values.
package cell

// I (cell) is the basic unit of storage in mal.
type I interface {
	Equal(c I) bool
	Hash() uint32
	Name() string
}

// Modulus bounds every hash value.
const Modulus = 65521

// Hash seeds for each family of values.
const (
	SeedString   = 53
	SeedSymbol   = 59
	SeedAtom     = 61
	SeedSequence = 67
	SeedMap      = 73
	SeedFunction = 97
	SeedNumber   = 251
	SeedByte     = 257
)

// Mix folds h into the running hash seed.
func Mix(seed, h uint32) uint32 {
	return (seed*31 + h) % Modulus
}

// Text hashes the string s starting from seed.
func Text(seed uint32, s string) uint32 {
	h := seed
	for i := 0; i < len(s); i++ {
		h = Mix(h, uint32(s[i]))
	}

	return h
}
