package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// ShortHashLen is the truncated hex length used for manifest checksums and
// result fingerprints. The short form is advisory integrity metadata, not a
// security control: truncation makes it unsuitable for adversarial tamper
// detection.
const ShortHashLen = 16

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// NewShortHash creates a hash truncated to ShortHashLen hex characters
func NewShortHash(data []byte) Hash {
	return NewHash(data)[:ShortHashLen]
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

// Domain-specific hash types
type (
	// Checksum is a manifest integrity checksum (short form).
	Checksum Hash
	// ResultFingerprint identifies the output of one verification run.
	ResultFingerprint Hash
)

// Constructors
func NewChecksum(data []byte) Checksum                   { return Checksum(NewShortHash(data)) }
func NewResultFingerprint(data []byte) ResultFingerprint { return ResultFingerprint(NewShortHash(data)) }

// String conversions
func (c Checksum) String() string          { return Hash(c).String() }
func (f ResultFingerprint) String() string { return Hash(f).String() }
