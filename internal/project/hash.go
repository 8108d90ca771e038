package project

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 sum; source.File.Hash converts to it directly.
type Digest [32]byte

// Combine hashes content together with labelled salts. Each label is
// length-prefixed so ("ab", "c") and ("a", "bc") never collide.
// Callers must pass labels in a fixed order.
func Combine(content Digest, labels ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	var n [binary.MaxVarintLen64]byte
	for _, l := range labels {
		_, _ = h.Write(n[:binary.PutUvarint(n[:], uint64(len(l)))])
		_, _ = h.Write([]byte(l))
	}
	var out Digest
	h.Sum(out[:0])
	return out
}

// StringDigest hashes s.
func StringDigest(s string) Digest {
	return sha256.Sum256([]byte(s))
}

// IsZero reports whether d was never set.
func (d Digest) IsZero() bool { return d == Digest{} }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
