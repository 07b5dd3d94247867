package view

import (
	"sync"
	"time"
)

// DefaultTickInterval is how often sessions are reclassified so that an
// ongoing session flips to past without user action.
const DefaultTickInterval = 60 * time.Second

// Reading is one observation of the current instant.
type Reading struct {
	Now time.Time
}

// Clock is a ticking time source. Subscribers receive a Reading per tick;
// a reading that moves backward relative to the previous one is dropped so
// sessions are never un-classified from past back to ongoing.
type Clock struct {
	interval time.Duration
	nowFn    func() time.Time

	mu        sync.Mutex
	nextSubID int
	subs      map[int]func(Reading)
	last      time.Time
	skewDrops int
	stop      chan struct{}
	running   bool
}

// NewClock creates a clock with the given tick interval (DefaultTickInterval
// when zero). nowFn may be nil for time.Now.
func NewClock(interval time.Duration, nowFn func() time.Time) *Clock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Clock{
		interval: interval,
		nowFn:    nowFn,
		subs:     make(map[int]func(Reading)),
	}
}

// Subscribe registers a tick listener and returns a disposer. The disposer
// must be called when the consuming view is torn down.
func (c *Clock) Subscribe(fn func(Reading)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Start begins ticking in the background. Safe to call once; Stop releases
// the timer.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.stop = make(chan struct{})

	go func(stop chan struct{}) {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Tick()
			case <-stop:
				return
			}
		}
	}(c.stop)
}

// Stop halts ticking. Subscriptions survive a Stop/Start cycle.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	close(c.stop)
}

// Tick reads the current instant and fans it out to subscribers. Exposed so
// hosts can force an immediate reclassification (e.g. right after new data
// arrives) without waiting for the next interval.
func (c *Clock) Tick() {
	now := c.nowFn()

	c.mu.Lock()
	if !c.last.IsZero() && now.Before(c.last) {
		c.skewDrops++
		c.mu.Unlock()
		return
	}
	c.last = now
	fns := make([]func(Reading), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(Reading{Now: now})
	}
}

// SkewDrops reports how many ticks were ignored because time moved backward.
func (c *Clock) SkewDrops() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skewDrops
}
