package cmap

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
)

// input20 is a short piece of random data, base64 encoded.
const input20 = "6fx5haW0ty6CjwrZ+GnFZyCmGyI="

func TestXXHash(t *testing.T) {
	assert.Equal(t, xxhash.Sum64String(input20), XXHash(input20))
}

func TestXXHashesSeparatesParts(t *testing.T) {
	assert.NotEqual(t, XXHashes("ab", "c"), XXHashes("a", "bc"))
	assert.NotEqual(t, XXHashes("java/com", "foo"), XXHashes("foo", "java/com"))
	assert.Equal(t, XXHashes("", "java/com", "foo"), XXHashes("", "java/com", "foo"))
}

func BenchmarkXXHash_20(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		XXHash(input20)
	}
}

func BenchmarkXXHashes_20(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		XXHashes(input20, input20, input20)
	}
}
