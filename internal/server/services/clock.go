package services

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

// Now is UTC at microsecond precision, the finest every supported store keeps.
func (realClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

type IDGen interface {
	New() (string, error)
}

// ulidGen yields lexicographically sortable ids. The monotonic entropy source
// is not safe for concurrent use, hence the mutex.
type ulidGen struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newULIDGen() *ulidGen {
	return &ulidGen{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ulidGen) New() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
