package model

import (
	"sync"
	"time"
)

// Clock accumulates the time one side spends to move. There is no time
// control; the totals are informational.
type Clock struct {
	mu          sync.Mutex
	used        time.Duration
	lastStarted time.Time
	isRunning   bool
	now         func() time.Time
}

func NewClock() *Clock {
	return newClockWithSource(time.Now)
}

func newClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.used += c.now().Sub(c.lastStarted)
		c.isRunning = false
	}
}

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.used + c.now().Sub(c.lastStarted)
	}
	return c.used
}

// Clocks holds one clock per side, with only the side to move running.
type Clocks struct {
	White *Clock
	Black *Clock
}

func NewClocks(toMove Colour) Clocks {
	return newClocksWithSource(toMove, time.Now)
}

func newClocksWithSource(toMove Colour, now func() time.Time) Clocks {
	c := Clocks{White: newClockWithSource(now), Black: newClockWithSource(now)}
	c.For(toMove).Start()
	return c
}

func (c Clocks) For(colour Colour) *Clock {
	if colour == Black {
		return c.Black
	}
	return c.White
}

// Switch stops the mover's clock and starts the opponent's.
func (c Clocks) Switch(toMove Colour) {
	c.For(toMove.Opponent()).Stop()
	c.For(toMove).Start()
}

// ClientClocks is the JSON form, in milliseconds.
type ClientClocks struct {
	White int64 `json:"white"`
	Black int64 `json:"black"`
}

func (c Clocks) Client() ClientClocks {
	return ClientClocks{
		White: c.White.Elapsed().Milliseconds(),
		Black: c.Black.Elapsed().Milliseconds(),
	}
}
