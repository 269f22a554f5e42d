package memory

import "sync/atomic"

// Sequence hands out identities. Implementations must never repeat a value.
type Sequence interface {
	Next() uint
}

// Counter is a Sequence starting at 1.
type Counter struct {
	last atomic.Uint64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Next() uint {
	return uint(c.last.Add(1))
}
