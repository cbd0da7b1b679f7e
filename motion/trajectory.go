package motion

import "math"

// RetargetPolicy selects where a re-triggered motion starts from when a
// new target arrives while the previous move is still in flight.
type RetargetPolicy uint8

const (
	// RetargetFromLastTarget starts the new trajectory from the
	// previously commanded target, not the physically true interpolated
	// position. This reproduces the rig's historical behavior; a
	// mid-flight retarget therefore jumps. Kept as the default until
	// the intended semantics are confirmed on hardware.
	RetargetFromLastTarget RetargetPolicy = iota

	// RetargetFromInterpolated starts the new trajectory from the
	// position interpolated at retarget time, giving ramp continuity.
	RetargetFromInterpolated
)

// Trajectory is the per-actuator motion state machine. It has two
// states: Idle (moving == false, start == target is the committed final
// state) and InMotion. All times are monotonic milliseconds in uint32;
// elapsed time uses unsigned subtraction so counter wraparound does not
// corrupt the computation.
//
// Trajectory does not talk to hardware. Sample reports the interpolated
// position; the caller commits it to a backend and then acknowledges
// completion with Settle, so a failed commit leaves the state machine
// untouched and a later tick retries.
type Trajectory struct {
	startAngle  float64
	targetAngle float64
	startPos    int
	targetPos   int
	startTime   uint32
	durationMS  uint32
	moving      bool
}

// Reset forces the trajectory into Idle, settled at the given angle and
// native position.
func (tr *Trajectory) Reset(angle float64, pos int) {
	tr.startAngle = angle
	tr.targetAngle = angle
	tr.startPos = pos
	tr.targetPos = pos
	tr.startTime = 0
	tr.durationMS = 0
	tr.moving = false
}

// Retarget begins a new move toward angle/pos, finishing durationMS
// milliseconds after now. The start point is chosen by policy; p is
// only consulted for RetargetFromInterpolated, where the in-flight
// position must be blended out first.
func (tr *Trajectory) Retarget(now uint32, angle float64, pos int, durationMS uint32, policy RetargetPolicy, p *Params) {
	if policy == RetargetFromInterpolated && tr.moving {
		tr.startAngle = tr.AngleAt(now, p)
		tr.startPos = tr.posAt(now, p)
	} else {
		tr.startAngle = tr.targetAngle
		tr.startPos = tr.targetPos
	}
	tr.targetAngle = angle
	tr.targetPos = pos
	tr.startTime = now
	if durationMS == 0 {
		durationMS = MinDurationMS
	}
	tr.durationMS = durationMS
	tr.moving = true
}

// Sample reports the trajectory at time now. For an Idle trajectory it
// returns (1, targetPos, false) immediately. For an in-flight one it
// returns the unblended elapsed fraction tau, the interpolated native
// position, and done == true once tau >= 1. Sample never mutates state;
// call Settle after the final position has been committed.
func (tr *Trajectory) Sample(now uint32, p *Params) (tau float64, pos int, done bool) {
	if !tr.moving {
		return 1, tr.targetPos, false
	}
	elapsed := now - tr.startTime
	tau = float64(elapsed) / float64(tr.durationMS)
	if tau >= 1 {
		return tau, tr.targetPos, true
	}
	return tau, tr.posAt(now, p), false
}

// Settle commits the final state: position snaps to the target and the
// trajectory returns to Idle. Call it only after the target position
// reached the backend.
func (tr *Trajectory) Settle() {
	tr.startAngle = tr.targetAngle
	tr.startPos = tr.targetPos
	tr.moving = false
}

// Freeze stops an in-flight move at the position interpolated at now,
// making that point the new committed state. Used by the StopFreeze
// registry policy.
func (tr *Trajectory) Freeze(now uint32, p *Params) {
	if !tr.moving {
		return
	}
	tr.targetAngle = tr.AngleAt(now, p)
	tr.targetPos = tr.posAt(now, p)
	tr.Settle()
}

// AngleAt returns the interpolated angle at time now. Idle trajectories
// report the settled target angle.
func (tr *Trajectory) AngleAt(now uint32, p *Params) float64 {
	if !tr.moving {
		return tr.targetAngle
	}
	progress := Blend(tr.tauAt(now), p)
	return tr.startAngle + (tr.targetAngle-tr.startAngle)*progress
}

func (tr *Trajectory) posAt(now uint32, p *Params) int {
	progress := Blend(tr.tauAt(now), p)
	return tr.startPos + int(math.Round(float64(tr.targetPos-tr.startPos)*progress))
}

func (tr *Trajectory) tauAt(now uint32) float64 {
	elapsed := now - tr.startTime
	return float64(elapsed) / float64(tr.durationMS)
}

// Moving reports whether the trajectory is in flight.
func (tr *Trajectory) Moving() bool { return tr.moving }

// TargetAngle returns the commanded target angle; for an Idle
// trajectory this is the settled angle.
func (tr *Trajectory) TargetAngle() float64 { return tr.targetAngle }

// TargetPos returns the commanded target native position.
func (tr *Trajectory) TargetPos() int { return tr.targetPos }

// StartAngle returns the angle the current move started from.
func (tr *Trajectory) StartAngle() float64 { return tr.startAngle }

// DurationMS returns the duration of the current or last move.
func (tr *Trajectory) DurationMS() uint32 { return tr.durationMS }
