package bot

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// fileIDLength is the fixed length of external file identifiers.
const fileIDLength = 16

// NewFileID derives an opaque identifier from the platform-native file
// handle and the current wall clock. Collisions are not handled; a colliding
// id silently overwrites the earlier record in the store.
func NewFileID(handle string, now time.Time) string {
	sum := md5.Sum([]byte(handle + now.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])[:fileIDLength]
}
