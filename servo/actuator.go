package servo

import "math"

// PWMDriver commits pulse widths to PWM hardware. Implementations wrap
// whatever sits on the other side: a PWM expander on an auxiliary
// serial line, or a discard driver for headless runs and tests.
type PWMDriver interface {
	SetPulseWidth(channel uint8, pulseUS uint16) error
}

// FrameWriter transmits one complete bus frame on the shared
// half-duplex servo line. The write is synchronous and fire-and-forget;
// an error (including a timeout) means the frame must be considered not
// delivered.
type FrameWriter interface {
	WriteFrame(frame []byte) error
}

// Actuator is the closed set of backend variants. Exactly two
// implementations exist: PWMActuator and BusActuator.
type Actuator interface {
	// Commit pushes a native position to the hardware.
	Commit(pos int) error
	// AngleToPosition converts degrees to native units.
	AngleToPosition(deg float64) int
	// PositionToAngle converts native units back to degrees.
	PositionToAngle(pos int) float64
	// Config returns the actuator's immutable configuration.
	Config() *Config

	sealed()
}

// PWMActuator drives a hobby servo on a PWM channel. The native
// position range 0-180 maps linearly onto [pulseMin, pulseMax]
// microseconds at the 50Hz carrier.
type PWMActuator struct {
	cfg      Config
	drv      PWMDriver
	pulseMin uint16
	pulseMax uint16
}

// NewPWMActuator builds a PWM actuator. Zero pulse bounds select the
// defaults (500/2500us).
func NewPWMActuator(cfg Config, drv PWMDriver, pulseMinUS, pulseMaxUS uint16) *PWMActuator {
	if pulseMinUS == 0 && pulseMaxUS == 0 {
		pulseMinUS, pulseMaxUS = DefaultPulseMinUS, DefaultPulseMaxUS
	}
	return &PWMActuator{cfg: cfg, drv: drv, pulseMin: pulseMinUS, pulseMax: pulseMaxUS}
}

func (a *PWMActuator) Commit(pos int) error {
	pos = a.cfg.clampPos(pos)
	span := int(a.pulseMax) - int(a.pulseMin)
	pulse := int(a.pulseMin) + pos*span/pwmPosRange
	return a.drv.SetPulseWidth(a.cfg.Address, uint16(pulse))
}

// AngleToPosition maps the signed angular range onto the zero-based
// native range: position = angle - minAngle.
func (a *PWMActuator) AngleToPosition(deg float64) int {
	return int(math.Round(deg - a.cfg.MinAngle))
}

func (a *PWMActuator) PositionToAngle(pos int) float64 {
	return float64(pos) + a.cfg.MinAngle
}

func (a *PWMActuator) Config() *Config { return &a.cfg }

func (a *PWMActuator) sealed() {}

// BusActuator drives one servo on the shared bus by emitting
// goal-position frames.
type BusActuator struct {
	cfg   Config
	w     FrameWriter
	speed uint16
}

// NewBusActuator builds a bus actuator. Zero speed selects
// DefaultBusSpeed.
func NewBusActuator(cfg Config, w FrameWriter, speed uint16) *BusActuator {
	if speed == 0 {
		speed = DefaultBusSpeed
	}
	return &BusActuator{cfg: cfg, w: w, speed: speed}
}

func (a *BusActuator) Commit(pos int) error {
	pos = a.cfg.clampPos(pos)
	frame := encodeMoveFrame(a.cfg.Address, uint16(pos), a.speed)
	return a.w.WriteFrame(frame[:])
}

// AngleToPosition maps degrees around the servo's center position:
// position = center + round(angle * unitsPerDegree).
func (a *BusActuator) AngleToPosition(deg float64) int {
	return a.cfg.Center + int(math.Round(deg*a.cfg.UnitsPerDegree))
}

func (a *BusActuator) PositionToAngle(pos int) float64 {
	return float64(pos-a.cfg.Center) / a.cfg.UnitsPerDegree
}

func (a *BusActuator) Config() *Config { return &a.cfg }

func (a *BusActuator) sealed() {}
