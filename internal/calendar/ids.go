package calendar

import (
	"sync"
	"time"
)

type IDGenerator interface {
	NextID() int64
}

// Counter hands out consecutive ids.
type Counter struct {
	mu   sync.Mutex
	next int64
}

func NewCounter(start int64) *Counter {
	return &Counter{next: start}
}

func (c *Counter) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	return id
}

// ClockIDs derives ids from the current time in milliseconds, bumping past the
// previous id when two are requested within the same millisecond.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (c *ClockIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id
	return id
}
