// Package keygen derives short storage keys from uploaded filenames.
package keygen

import (
	"math/rand/v2"
	"strings"
)

const lowerAlpha = "abcdefghijklmnopqrstuvwxyz"

// Generator produces random keys of the form "{prefix}.{ext}". Collision
// avoidance is probabilistic: at the default length the keyspace is 26^8, so
// no existence check is made before a key is used.
type Generator struct {
	length   int
	alphabet string
}

// New creates a Generator producing prefixes of the given length.
func New(length int) *Generator {
	return &Generator{length: length, alphabet: lowerAlpha}
}

// Generate returns a fresh random prefix joined with the lower-cased
// extension of originalFilename. A filename without an extension yields the
// bare prefix, with no separator.
func (g *Generator) Generate(originalFilename string) string {
	prefix := make([]byte, g.length)
	for i := range prefix {
		prefix[i] = g.alphabet[rand.IntN(len(g.alphabet))]
	}

	ext := extension(originalFilename)
	if ext == "" {
		return string(prefix)
	}
	return string(prefix) + "." + ext
}

// extension returns the substring after the final dot, lower-cased, or ""
// when there is no dot.
func extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
