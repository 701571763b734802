package util

import (
	"fmt"
	"hash/fnv"
)

// Fingerprint computes a stable FNV-1a digest over the given parts, used to
// key memoized derivations by their inputs.
func Fingerprint(parts ...interface{}) string {
	h := fnv.New64a()
	for _, part := range parts {
		fmt.Fprintf(h, "%v|", part)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
