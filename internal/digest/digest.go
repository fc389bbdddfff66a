// Package digest computes the content digests recorded in generation
// manifests and run history.
package digest

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// domainKey keys every digest so they never collide with plain BLAKE3 sums
// of the same bytes computed elsewhere. Changing it changes every digest.
var domainKey = [32]byte{
	'l', 'a', 'b', 'e', 'l', 'c', 'r', 'e', 'w', '.', 'c', 'o', 'n', 't', 'e', 'n',
	't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Sum returns the keyed BLAKE3 digest of data.
func Sum(data []byte) [32]byte {
	hasher, err := blake3.NewKeyed(domainKey[:])
	if err != nil {
		// Only possible with a key that is not 32 bytes.
		panic("digest: " + err.Error())
	}
	hasher.Write(data)
	var out [32]byte
	copy(out[:], hasher.Sum(nil))
	return out
}

// String returns the hex encoded digest of data.
func String(data []byte) string {
	sum := Sum(data)
	return hex.EncodeToString(sum[:])
}

// Short returns the first 12 hex characters of the digest, for display.
func Short(hexDigest string) string {
	if len(hexDigest) <= 12 {
		return hexDigest
	}
	return hexDigest[:12]
}
