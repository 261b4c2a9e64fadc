package testutil

import "sync"

// Clock is a thread-safe monotonic logical clock for tests.
//
// Run records are ordered by a logical seq rather than wall time so the
// same test produces byte-identical history across machines. The clock
// can be reset so a scenario can run repeatedly with identical seqs.
type Clock struct {
	mu  sync.Mutex
	seq int64
}

// NewClock creates a clock whose first Next() returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next increments and returns the next sequence number.
func (c *Clock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock so the next call to Next() returns 1.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
