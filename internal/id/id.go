// Package id generates the opaque identifiers used for users, questions,
// ledger entries and review marks.
package id

import "crypto/rand"

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// Length is the number of characters in every generated ID.
	Length = 16
)

// GenerateID creates a unique 16-character alphanumeric ID.
func GenerateID() string {
	b := make([]byte, Length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = alphabet[b[i]%byte(len(alphabet))]
	}
	return string(b)
}

// Valid reports whether s has the shape of an ID produced by GenerateID.
// Seeded questions may carry hand-written IDs, so only the character set
// and an upper bound on length are enforced.
func Valid(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
