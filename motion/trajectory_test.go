package motion

import (
	"math"
	"testing"
)

func TestTrajectoryResetIsIdle(t *testing.T) {
	var tr Trajectory
	tr.Reset(0, 2048)

	if tr.Moving() {
		t.Fatal("reset trajectory should be idle")
	}
	tau, pos, done := tr.Sample(12345, nil)
	if tau != 1 || pos != 2048 || done {
		t.Errorf("idle Sample = (%v, %v, %v), want (1, 2048, false)", tau, pos, done)
	}
	if got := tr.AngleAt(12345, nil); got != 0 {
		t.Errorf("idle AngleAt = %v, want 0", got)
	}
}

func TestTrajectorySampleAtStart(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(1000, 45, 135, 2000, RetargetFromLastTarget, &p)

	tau, pos, done := tr.Sample(1000, &p)
	if tau != 0 {
		t.Errorf("tau at start = %v, want 0", tau)
	}
	if pos != 90 {
		t.Errorf("pos at start = %v, want start value 90", pos)
	}
	if done {
		t.Error("move should not be done at start")
	}
	if !tr.Moving() {
		t.Error("trajectory should be in motion")
	}
}

func TestTrajectorySampleMidway(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(0, 45, 135, 2000, RetargetFromLastTarget, &p)

	tau, pos, done := tr.Sample(1000, &p)
	if math.Abs(tau-0.5) > 1e-9 {
		t.Errorf("tau midway = %v, want 0.5", tau)
	}
	if done {
		t.Error("move should not be done midway")
	}
	// Quintic(0.5) = 0.5, so the midpoint position is exactly halfway.
	if pos != 90+23 && pos != 90+22 {
		t.Errorf("pos midway = %v, want ~112", pos)
	}
	if pos <= 90 || pos >= 135 {
		t.Errorf("pos midway = %v, want strictly between 90 and 135", pos)
	}

	angle := tr.AngleAt(1000, &p)
	if angle <= 0 || angle >= 45 {
		t.Errorf("angle midway = %v, want strictly between 0 and 45", angle)
	}
}

func TestTrajectoryCompletion(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(0, 45, 135, 2000, RetargetFromLastTarget, &p)

	tau, pos, done := tr.Sample(2000, &p)
	if tau < 1 {
		t.Errorf("tau at completion = %v, want >= 1", tau)
	}
	if pos != 135 {
		t.Errorf("pos at completion = %v, want exactly 135", pos)
	}
	if !done {
		t.Error("Sample at full duration should report done")
	}
	// Sample does not mutate; the caller settles after a good commit.
	if !tr.Moving() {
		t.Error("trajectory should still be moving before Settle")
	}
	tr.Settle()
	if tr.Moving() {
		t.Error("trajectory should be idle after Settle")
	}
	if got := tr.AngleAt(9999, &p); got != 45 {
		t.Errorf("settled angle = %v, want 45", got)
	}
}

func TestTrajectoryAngleAtCompletionBeforeSettle(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(0, 45, 135, 2000, RetargetFromLastTarget, &p)

	// Past the deadline but not settled yet: reported angle clamps to
	// the target rather than overshooting.
	if got := tr.AngleAt(5000, &p); got != 45 {
		t.Errorf("angle past deadline = %v, want 45", got)
	}
}

func TestRetargetFromLastTarget(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(0, 40, 130, 2000, RetargetFromLastTarget, &p)

	// Retarget mid-flight: the new move starts from the previously
	// commanded target (40 deg), not from the interpolated position.
	tr.Retarget(1000, -10, 80, 2000, RetargetFromLastTarget, &p)
	if got := tr.StartAngle(); got != 40 {
		t.Errorf("start angle after retarget = %v, want previous target 40", got)
	}
	if got := tr.TargetAngle(); got != -10 {
		t.Errorf("target angle after retarget = %v, want -10", got)
	}
}

func TestRetargetFromInterpolated(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(0, 40, 130, 2000, RetargetFromInterpolated, &p)

	tr.Retarget(1000, -10, 80, 2000, RetargetFromInterpolated, &p)
	got := tr.StartAngle()
	if got <= 0 || got >= 40 {
		t.Errorf("start angle after interpolated retarget = %v, want strictly between 0 and 40", got)
	}
}

func TestTrajectoryFreeze(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)
	tr.Retarget(0, 40, 130, 2000, RetargetFromLastTarget, &p)

	tr.Freeze(1000, &p)
	if tr.Moving() {
		t.Fatal("trajectory should be idle after Freeze")
	}
	angle := tr.AngleAt(1000, &p)
	if angle <= 0 || angle >= 40 {
		t.Errorf("frozen angle = %v, want strictly between 0 and 40", angle)
	}
	if tr.TargetPos() <= 90 || tr.TargetPos() >= 130 {
		t.Errorf("frozen pos = %v, want strictly between 90 and 130", tr.TargetPos())
	}
}

func TestTrajectoryClockWrap(t *testing.T) {
	p := DefaultParams()
	var tr Trajectory
	tr.Reset(0, 90)

	// Start 1s before the uint32 millisecond counter wraps.
	start := uint32(0xFFFFFFFF - 999)
	tr.Retarget(start, 45, 135, 2000, RetargetFromLastTarget, &p)

	// 1500ms later the counter has wrapped to 500.
	tau, _, done := tr.Sample(500, &p)
	if math.Abs(tau-0.75) > 1e-9 {
		t.Errorf("tau across wrap = %v, want 0.75", tau)
	}
	if done {
		t.Error("move should not be done across wrap")
	}

	tau, pos, done := tr.Sample(1000, &p)
	if tau < 1 || !done {
		t.Errorf("Sample after wrap deadline = (%v, %v), want done", tau, done)
	}
	if pos != 135 {
		t.Errorf("pos after wrap deadline = %v, want 135", pos)
	}
}
