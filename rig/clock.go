// Package rig wires the motion, servo and protocol layers into the
// control loop that runs the actuator rig: command dispatch, trajectory
// advancement and periodic feedback, all driven from one goroutine.
package rig

import "time"

// Clock provides the millisecond timestamps the motion layer runs on.
// Values wrap at the uint32 boundary; all consumers use wrap-safe
// unsigned subtraction for elapsed time.
type Clock interface {
	NowMS() uint32
}

// WallClock reports milliseconds since it was created.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) NowMS() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

// ManualClock is a test clock advanced explicitly.
type ManualClock struct {
	ms uint32
}

func (c *ManualClock) NowMS() uint32     { return c.ms }
func (c *ManualClock) Set(ms uint32)     { c.ms = ms }
func (c *ManualClock) Advance(ms uint32) { c.ms += ms }
