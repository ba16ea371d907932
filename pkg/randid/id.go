// Package randid generates unique, time-ordered identifiers.
package randid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a lowercase ULID: a 48-bit millisecond timestamp taken from t
// followed by 80 bits of randomness. Ids minted within the same millisecond
// increase monotonically, so two calls never return the same value.
func New(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		// Monotonic entropy overflows only after 2^80 ids in one millisecond;
		// fall back to a fresh random source.
		id = ulid.MustNew(ulid.Timestamp(t), rand.Reader)
	}
	return strings.ToLower(id.String())
}

// Time extracts the timestamp component of an id produced by New.
func Time(id string) (time.Time, bool) {
	parsed, err := ulid.ParseStrict(strings.ToUpper(id))
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(parsed.Time()), true
}
