// Package serial provides the rig's serial endpoints: the console port
// carrying the text command protocol and the half-duplex bus line the
// servo frames go out on.
package serial

import "io"

// Port is the serial port abstraction shared by the console and bus
// sides. Implementations exist for native serial and for in-memory
// loopbacks in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush discards buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3").
	Device string

	// Baud rate. USB CDC consoles ignore this.
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// ConsoleConfig returns the configuration for the command console.
func ConsoleConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 20,
	}
}

// BusConfig returns the configuration for the shared servo bus line.
// Bus writes need a short timeout so a wedged line shows up as a
// transmission failure instead of stalling the control loop.
func BusConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        1000000,
		ReadTimeout: 10,
	}
}
