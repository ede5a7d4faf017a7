// Package nucleotide validates and complements DNA sequences over the
// unambiguous alphabet {A,C,G,T}.
package nucleotide

import (
	"strings"

	"github.com/biogo/biogo/alphabet"
)

// dna accepts acgtACGT and the gap letter; gaps are rejected separately.
var dna = alphabet.DNA

const gap = '-'

// Normalize upper-cases seq and checks every letter against the alphabet.
// On failure it returns the offending position and false.
func Normalize(seq string) (string, int, bool) {
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c == gap || !dna.IsValid(alphabet.Letter(c)) {
			return "", i, false
		}
	}
	return strings.ToUpper(seq), -1, true
}

// ReverseComplement expects an upper-case sequence accepted by Normalize.
func ReverseComplement(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c, ok := dna.Complement(alphabet.Letter(seq[n-1-i]))
		if !ok {
			c = 'N'
		}
		out[i] = byte(c)
	}
	return string(out)
}

// IsPalindrome reports whether seq equals its own reverse complement.
func IsPalindrome(seq string) bool {
	return seq == ReverseComplement(seq)
}
