// Package servo maps logical joint angles onto the rig's two actuator
// backends: hobby servos on PWM channels and STS-class serial bus
// servos. It owns the actuator registry the control loop drives.
package servo

import "github.com/pkg/errors"

// Rig shape. The first PWMCount actuators ride PWM channels, the rest
// share the half-duplex servo bus.
const (
	MaxActuators = 7
	PWMCount     = 2
	BusCount     = MaxActuators - PWMCount
)

// PWM backend constants: 50Hz carrier, 0.5-2.5ms pulse window over a
// 0-180 native position range.
const (
	PWMPeriodUS       = 20000
	DefaultPulseMinUS = 500
	DefaultPulseMaxUS = 2500
	pwmPosRange       = 180
)

// Bus backend constants for 300-degree, 4096-count servos.
const (
	BusCenterPos      = 2048
	BusMinPos         = 0
	BusMaxPos         = 4095
	BusUnitsPerDegree = 4096.0 / 300.0
)

// Kind tags the backend variant of an actuator.
type Kind uint8

const (
	KindPWM Kind = iota
	KindBus
)

func (k Kind) String() string {
	switch k {
	case KindPWM:
		return "pwm"
	case KindBus:
		return "bus"
	}
	return "unknown"
}

// Config is the immutable per-actuator configuration. Address is the
// PWM channel index for KindPWM and the bus device id for KindBus.
type Config struct {
	ID             uint8
	Kind           Kind
	Address        uint8
	Center         int
	MinPos         int
	MaxPos         int
	MinAngle       float64
	MaxAngle       float64
	UnitsPerDegree float64
}

// Validate checks the config invariants: position bounds ordered around
// the center and a non-empty angular range.
func (c *Config) Validate() error {
	if c.MinPos > c.Center || c.Center > c.MaxPos {
		return errors.Errorf("servo %d: center %d outside position bounds [%d,%d]",
			c.ID, c.Center, c.MinPos, c.MaxPos)
	}
	if c.MinAngle >= c.MaxAngle {
		return errors.Errorf("servo %d: empty angle range [%v,%v]", c.ID, c.MinAngle, c.MaxAngle)
	}
	if c.Kind == KindBus && c.UnitsPerDegree <= 0 {
		return errors.Errorf("servo %d: invalid units per degree %v", c.ID, c.UnitsPerDegree)
	}
	return nil
}

// ClampAngle constrains deg into the actuator's angular range.
func (c *Config) ClampAngle(deg float64) float64 {
	if deg < c.MinAngle {
		return c.MinAngle
	}
	if deg > c.MaxAngle {
		return c.MaxAngle
	}
	return deg
}

// clampPos constrains a native position into the config's bounds.
func (c *Config) clampPos(pos int) int {
	if pos < c.MinPos {
		return c.MinPos
	}
	if pos > c.MaxPos {
		return c.MaxPos
	}
	return pos
}

// pwmConfig returns the standard config for PWM joint index i (0-based
// within the PWM block): signed 180-degree range mapped onto 0-180
// native units, one unit per degree.
func pwmConfig(i int) Config {
	return Config{
		ID:             uint8(i + 1),
		Kind:           KindPWM,
		Address:        uint8(i),
		Center:         90,
		MinPos:         0,
		MaxPos:         pwmPosRange,
		MinAngle:       -90,
		MaxAngle:       90,
		UnitsPerDegree: 1,
	}
}

// busConfig returns the standard config for bus joint index i (0-based
// within the bus block). Bus device ids start at 3, matching the
// factory addressing of the rig's servo chain.
func busConfig(i int) Config {
	return Config{
		ID:             uint8(PWMCount + i + 1),
		Kind:           KindBus,
		Address:        uint8(i + 3),
		Center:         BusCenterPos,
		MinPos:         BusMinPos,
		MaxPos:         BusMaxPos,
		MinAngle:       -150,
		MaxAngle:       150,
		UnitsPerDegree: BusUnitsPerDegree,
	}
}
