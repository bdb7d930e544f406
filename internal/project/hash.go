package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - sha256, тот же формат, что и source.File.Hash
type Digest [sha256.Size]byte

func Sum(b []byte) Digest { return sha256.Sum256(b) }

// Combine derives a cache key from content and the parts that change how
// it is analyzed. The order of parts is part of the key.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	h.Write(content[:])
	for _, p := range parts {
		h.Write(p[:])
	}
	return Digest(h.Sum(nil))
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Shard names the two-level directory bucket for d.
func (d Digest) Shard() string { return hex.EncodeToString(d[:1]) }
