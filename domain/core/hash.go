package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 12 hex characters, enough for log lines
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// Fingerprint identifies pasted text without storing it
type Fingerprint Hash

// NewFingerprint hashes raw text
func NewFingerprint(text string) Fingerprint { return Fingerprint(NewHash([]byte(text))) }

func (f Fingerprint) String() string { return Hash(f).String() }
func (f Fingerprint) Short() string  { return Hash(f).Short() }
