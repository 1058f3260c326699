package gate

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when an operation is already outstanding.
var ErrInFlight = errors.New("operation already in flight")

// Gate serializes named operations: the programmatic form of disabling a
// submit control while its request is outstanding. Begin fails fast instead
// of queueing, so a second submission never piles up behind the first.
type Gate struct {
	mu   sync.Mutex
	busy map[string]bool
}

// New creates an empty gate.
func New() *Gate {
	return &Gate{busy: make(map[string]bool)}
}

// Begin marks op as in flight. The returned release function is idempotent.
func (g *Gate) Begin(op string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy[op] {
		return nil, ErrInFlight
	}
	g.busy[op] = true

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, op)
			g.mu.Unlock()
		})
	}
	return release, nil
}

// InFlight reports whether op is currently outstanding.
func (g *Gate) InFlight(op string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy[op]
}
