package servo

import (
	"github.com/pkg/errors"

	"servorig/motion"
)

// StopPolicy selects what an immediate stop does with in-flight moves.
type StopPolicy uint8

const (
	// StopSnapToTarget forces every actuator idle and commits the
	// pending target position, not the currently interpolated one. The
	// stop therefore jumps to wherever the move was headed. This
	// mirrors the rig's historical behavior and stays the default
	// until the intended semantics are confirmed.
	StopSnapToTarget StopPolicy = iota

	// StopFreeze settles each actuator at the position interpolated at
	// stop time.
	StopFreeze
)

var ErrIndex = errors.New("servo: actuator index out of range")

// Options configures a Registry. Zero values select the standard rig:
// MaxActuators joints, default pulse window and policies, discard
// drivers.
type Options struct {
	Count      int
	PWM        PWMDriver
	Bus        FrameWriter
	PulseMinUS uint16
	PulseMaxUS uint16
	BusSpeed   uint16
	Retarget   motion.RetargetPolicy
	Stop       StopPolicy
}

// Registry owns the rig's actuators: parallel slices of immutable
// configuration, backend variant and trajectory state, indexed
// 0..Count-1. Logical actuator id is index+1. All mutation goes through
// the registry's methods; it is not safe for concurrent use and is
// meant to be driven by a single control loop.
type Registry struct {
	acts  []Actuator
	trajs []motion.Trajectory

	retarget motion.RetargetPolicy
	stop     StopPolicy

	transportErrors uint64
}

// NewRegistry builds and initializes the rig: the first PWMCount
// actuators on PWM, the rest on the bus, every trajectory idle at its
// actuator's center (0 degrees).
func NewRegistry(opts Options) (*Registry, error) {
	count := opts.Count
	if count == 0 {
		count = MaxActuators
	}
	if count < 1 || count > MaxActuators {
		return nil, errors.Errorf("servo: actuator count %d outside 1..%d", count, MaxActuators)
	}
	pwm := opts.PWM
	if pwm == nil {
		pwm = NullPWMDriver{}
	}
	bus := opts.Bus
	if bus == nil {
		bus = NullFrameWriter{}
	}

	r := &Registry{
		acts:     make([]Actuator, count),
		trajs:    make([]motion.Trajectory, count),
		retarget: opts.Retarget,
		stop:     opts.Stop,
	}
	for i := 0; i < count; i++ {
		var cfg Config
		if i < PWMCount {
			cfg = pwmConfig(i)
			r.acts[i] = NewPWMActuator(cfg, pwm, opts.PulseMinUS, opts.PulseMaxUS)
		} else {
			cfg = busConfig(i - PWMCount)
			r.acts[i] = NewBusActuator(cfg, bus, opts.BusSpeed)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		r.trajs[i].Reset(0, cfg.Center)
	}
	return r, nil
}

// Count returns the number of actuators.
func (r *Registry) Count() int { return len(r.acts) }

// ActuatorAt returns the backend variant at index i.
func (r *Registry) ActuatorAt(i int) Actuator { return r.acts[i] }

// ConfigAt returns the configuration at index i.
func (r *Registry) ConfigAt(i int) *Config { return r.acts[i].Config() }

// SetTargetAngle starts a move on actuator idx toward deg using the
// default speed and duration carried in p.
func (r *Registry) SetTargetAngle(idx int, deg float64, p *motion.Params, now uint32) error {
	return r.SetTargetAngleTimed(idx, deg, p.SpeedDegPerSec, p.DurationMS, now, p)
}

// SetTargetAngleTimed starts a move on actuator idx toward deg. The
// angle is clamped into the actuator's range first. A zero durationMS
// derives the duration from the angular distance and speedDegPerSec;
// the distance is measured from the last commanded target, per the
// registry's RetargetPolicy note. p is only consulted for blend-aware
// retargeting.
func (r *Registry) SetTargetAngleTimed(idx int, deg, speedDegPerSec float64, durationMS, now uint32, p *motion.Params) error {
	if idx < 0 || idx >= len(r.acts) {
		return ErrIndex
	}
	act := r.acts[idx]
	tr := &r.trajs[idx]

	deg = act.Config().ClampAngle(deg)
	duration := motion.ResolveDuration(deg-tr.TargetAngle(), speedDegPerSec, durationMS)
	tr.Retarget(now, deg, act.AngleToPosition(deg), duration, r.retarget, p)
	return nil
}

// AdvanceOne advances actuator idx to time now, committing the sampled
// position to its backend. It returns the unblended elapsed fraction
// tau; idle actuators report 1 without touching hardware. A failed
// commit is counted and the trajectory is left as-is, so the next tick
// retries with a fresher sample.
func (r *Registry) AdvanceOne(idx int, now uint32, p *motion.Params) float64 {
	tr := &r.trajs[idx]
	if !tr.Moving() {
		return 1
	}
	tau, pos, done := tr.Sample(now, p)
	if err := r.acts[idx].Commit(pos); err != nil {
		r.transportErrors++
		return tau
	}
	if done {
		tr.Settle()
	}
	return tau
}

// Advance advances every actuator once with the same timestamp
// snapshot.
func (r *Registry) Advance(now uint32, p *motion.Params) {
	for i := range r.acts {
		r.AdvanceOne(i, now, p)
	}
}

// AngleAt returns the interpolated angle of actuator idx at time now.
func (r *Registry) AngleAt(idx int, now uint32, p *motion.Params) float64 {
	return r.trajs[idx].AngleAt(now, p)
}

// Angles samples every actuator's current angle.
func (r *Registry) Angles(now uint32, p *motion.Params) []float64 {
	out := make([]float64, len(r.trajs))
	for i := range r.trajs {
		out[i] = r.trajs[i].AngleAt(now, p)
	}
	return out
}

// Moving reports whether actuator idx has a move in flight.
func (r *Registry) Moving(idx int) bool { return r.trajs[idx].Moving() }

// MovingCount returns how many actuators are in flight.
func (r *Registry) MovingCount() int {
	n := 0
	for i := range r.trajs {
		if r.trajs[i].Moving() {
			n++
		}
	}
	return n
}

// CenterAll starts a move to 0 degrees on every actuator using the
// current default speed and duration.
func (r *Registry) CenterAll(p *motion.Params, now uint32) {
	for i := range r.acts {
		r.SetTargetAngle(i, 0, p, now)
	}
}

// StopAll forces every actuator idle immediately, per the configured
// StopPolicy. With StopSnapToTarget the committed position is the
// pending target; with StopFreeze it is the position interpolated at
// now. Commit failures are counted like any other transport error.
func (r *Registry) StopAll(now uint32, p *motion.Params) {
	for i := range r.acts {
		tr := &r.trajs[i]
		if r.stop == StopFreeze {
			tr.Freeze(now, p)
		} else {
			tr.Settle()
		}
		if err := r.acts[i].Commit(tr.TargetPos()); err != nil {
			r.transportErrors++
		}
	}
}

// TransportErrors returns the number of failed backend commits.
func (r *Registry) TransportErrors() uint64 { return r.transportErrors }
