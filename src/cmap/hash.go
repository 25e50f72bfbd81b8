package cmap

import (
	"github.com/cespare/xxhash/v2"
)

// XXHash calculates xxHash for a string, which is a fast high-quality hash function for a Map.
func XXHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// XXHashes calculates the xxHash for a series of strings.
// Parts are separated by a NUL byte, so ("ab", "c") and ("a", "bc") hash differently.
func XXHashes(s ...string) uint64 {
	d := xxhash.New()
	for i, x := range s {
		if i > 0 {
			d.Write([]byte{0})
		}
		d.WriteString(x)
	}
	return d.Sum64()
}
