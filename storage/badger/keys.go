package badger

import "fmt"

// Key prefixes for different data types
const (
	chunkRecordPrefix      = "chkrec"
	chunkFingerprintPrefix = "chkfpr"
	rulingRecordPrefix     = "rulrec"
)

// makeChunkKey generates a key for a chunk by its ID. Chunk IDs begin with
// the statute code, so a prefix scan over one code's chunks is a scan over
// "chkrec:<code>_".
func makeChunkKey(chunkID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", chunkRecordPrefix, chunkID))
}

// makeChunkCodePrefix generates the scan prefix for all chunks of a code.
func makeChunkCodePrefix(code string) []byte {
	return []byte(fmt.Sprintf("%s:%s_", chunkRecordPrefix, code))
}

// makeChunkFingerprintKey generates the key holding a chunk's content
// fingerprint.
func makeChunkFingerprintKey(chunkID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", chunkFingerprintPrefix, chunkID))
}

// makeRulingKey generates a key for a ruling by name.
func makeRulingKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", rulingRecordPrefix, name))
}
