package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint returns a deterministic hex digest of raw source content.
// Identical input always produces the identical fingerprint, which the
// chunk store uses to detect unchanged documents on re-ingestion.
func Fingerprint(data []byte) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
