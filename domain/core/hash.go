package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic content hash. The workbook load
// cache keys on it so identical inputs parse once.
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

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// SourceHash identifies one workbook input (default file or upload).
type SourceHash Hash

// NewSourceHash hashes raw workbook bytes.
func NewSourceHash(data []byte) SourceHash { return SourceHash(NewHash(data)) }

func (h SourceHash) String() string { return Hash(h).String() }
