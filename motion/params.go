package motion

import "github.com/pkg/errors"

// Motion parameter bounds. Commands outside these ranges are rejected.
const (
	MinSpeedDegPerSec = 1.0
	MaxSpeedDegPerSec = 180.0
	MinDurationMS     = 100
	MaxDurationMS     = 10000
	MinCPGAlpha       = 0.0
	MaxCPGAlpha       = 1.0
)

var (
	ErrSpeedRange    = errors.New("motion: speed out of range")
	ErrDurationRange = errors.New("motion: duration out of range")
	ErrAlphaRange    = errors.New("motion: cpg alpha out of range")
)

// Params holds the process-wide motion parameters. They are owned by
// whoever runs the control loop and passed by pointer into the engine;
// there is no package-level state.
type Params struct {
	SpeedDegPerSec float64
	DurationMS     uint32
	CPGEnabled     bool
	CPGAlpha       float64
}

// DefaultParams returns the power-on parameter set.
func DefaultParams() Params {
	return Params{
		SpeedDegPerSec: 30,
		DurationMS:     1200,
		CPGEnabled:     false,
		CPGAlpha:       0.25,
	}
}

// SetSpeed updates the default speed, rejecting values outside
// [MinSpeedDegPerSec, MaxSpeedDegPerSec]. On error p is unchanged.
func (p *Params) SetSpeed(degPerSec float64) error {
	if degPerSec < MinSpeedDegPerSec || degPerSec > MaxSpeedDegPerSec {
		return ErrSpeedRange
	}
	p.SpeedDegPerSec = degPerSec
	return nil
}

// SetDuration updates the default move duration, rejecting values
// outside [MinDurationMS, MaxDurationMS]. On error p is unchanged.
func (p *Params) SetDuration(ms uint32) error {
	if ms < MinDurationMS || ms > MaxDurationMS {
		return ErrDurationRange
	}
	p.DurationMS = ms
	return nil
}

// SetCPGAlpha updates the blend weight, rejecting values outside [0,1].
// On error p is unchanged.
func (p *Params) SetCPGAlpha(alpha float64) error {
	if alpha < MinCPGAlpha || alpha > MaxCPGAlpha {
		return ErrAlphaRange
	}
	p.CPGAlpha = alpha
	return nil
}

// ResolveDuration returns the duration for a move covering deltaDeg
// degrees. A non-zero requestedMS wins as-is; zero derives the duration
// from distance and speed (1000*|delta|/speed) and clamps it into
// [MinDurationMS, MaxDurationMS]. The derivation works on the angular
// delta alone, so PWM and bus actuators covering the same angle at the
// same speed take the same wall-clock time regardless of their native
// unit resolution.
func ResolveDuration(deltaDeg, speedDegPerSec float64, requestedMS uint32) uint32 {
	if requestedMS != 0 {
		return requestedMS
	}
	if deltaDeg < 0 {
		deltaDeg = -deltaDeg
	}
	if speedDegPerSec <= 0 {
		return MaxDurationMS
	}
	ms := uint32(1000 * deltaDeg / speedDegPerSec)
	if ms < MinDurationMS {
		return MinDurationMS
	}
	if ms > MaxDurationMS {
		return MaxDurationMS
	}
	return ms
}
