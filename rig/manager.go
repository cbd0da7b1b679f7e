package rig

import (
	"context"
	"io"
	"time"

	"servorig/motion"
	"servorig/protocol"
	"servorig/servo"
)

// DefaultTickInterval is the control loop yield between ticks.
const DefaultTickInterval = 5 * time.Millisecond

// Options configures a Manager. Registry and Params are required;
// everything else has a usable default.
type Options struct {
	Registry     *servo.Registry
	Params       *motion.Params
	Clock        Clock
	Output       io.Writer // command replies and feedback lines
	FeedbackMS   uint32
	RingCapacity int
	TickInterval time.Duration
}

// Manager runs the control loop. One tick drains pending input into at
// most one completed command, dispatches it, advances every trajectory
// with a single timestamp snapshot, and emits feedback when due. Input
// bytes arrive through PushInput, which is the only method safe to call
// from another goroutine.
type Manager struct {
	reg      *servo.Registry
	params   *motion.Params
	clock    Clock
	out      io.Writer
	ring     *protocol.Ring
	framer   *protocol.LineFramer
	disp     *Dispatcher
	reporter *Reporter
	stats    *protocol.Stats
	tick     time.Duration
}

func NewManager(opts Options) *Manager {
	if opts.Clock == nil {
		opts.Clock = NewWallClock()
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.RingCapacity == 0 {
		opts.RingCapacity = protocol.DefaultRingCapacity
	}
	if opts.TickInterval == 0 {
		opts.TickInterval = DefaultTickInterval
	}

	m := &Manager{
		reg:      opts.Registry,
		params:   opts.Params,
		clock:    opts.Clock,
		out:      opts.Output,
		ring:     protocol.NewRing(opts.RingCapacity),
		framer:   protocol.NewLineFramer(),
		reporter: NewReporter(opts.FeedbackMS),
		stats:    &protocol.Stats{},
		tick:     opts.TickInterval,
	}
	m.disp = NewDispatcher(m.reg, m.params, m.reporter, m.stats)
	return m
}

func (m *Manager) Stats() *protocol.Stats { return m.stats }

func (m *Manager) Reporter() *Reporter { return m.reporter }

// PushInput queues raw received bytes for the control loop. Bytes that
// do not fit are dropped and counted, never silently lost.
func (m *Manager) PushInput(data []byte) {
	n := m.ring.Push(data)
	m.stats.AddReceived(n)
	if n < len(data) {
		m.stats.AddDropped(len(data) - n)
	}
}

// Tick runs one control loop iteration at the given timestamp.
func (m *Manager) Tick(now uint32) {
	if line, ok := m.nextLine(); ok {
		m.dispatch(line, now)
	}
	m.reg.Advance(now, m.params)
	if m.reporter.Due(now) {
		m.transmit(m.reporter.Format(m.reg.Angles(now, m.params)))
	}
}

// nextLine drains buffered bytes until one complete command line is
// framed or the ring is empty.
func (m *Manager) nextLine() (string, bool) {
	for {
		b, ok := m.ring.Next()
		if !ok {
			return "", false
		}
		if line, done := m.framer.Feed(b); done {
			return line, true
		}
	}
}

// dispatch parses and executes one line. A panic in command handling is
// contained here so a bad command can never abort the loop.
func (m *Manager) dispatch(line string, now uint32) {
	defer func() {
		if r := recover(); r != nil {
			m.stats.CommandRejected()
		}
	}()

	cmd, err := protocol.ParseLine(line)
	if err != nil {
		m.stats.CommandRejected()
		return
	}
	reply, err := m.disp.Execute(cmd, now)
	if err != nil {
		m.stats.CommandRejected()
		return
	}
	m.stats.CommandProcessed()
	if reply != "" {
		m.transmit(reply)
	}
}

func (m *Manager) transmit(line string) {
	n, err := io.WriteString(m.out, line+"\r\n")
	if err != nil {
		m.stats.TransportError()
		return
	}
	m.stats.AddTransmitted(n)
}

// Run drives Tick on the configured interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Tick(m.clock.NowMS())
		}
	}
}
