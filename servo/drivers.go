package servo

import (
	"fmt"
	"io"
)

// NullPWMDriver discards pulse writes. Used when the rig runs without a
// PWM stage attached.
type NullPWMDriver struct{}

func (NullPWMDriver) SetPulseWidth(channel uint8, pulseUS uint16) error { return nil }

// NullFrameWriter discards bus frames.
type NullFrameWriter struct{}

func (NullFrameWriter) WriteFrame(frame []byte) error { return nil }

// WriterPWMDriver forwards pulse widths as one-line text commands to a
// PWM expander listening on w (typically an auxiliary serial port):
//
//	pwm <channel> <microseconds>\n
type WriterPWMDriver struct {
	W io.Writer
}

func (d *WriterPWMDriver) SetPulseWidth(channel uint8, pulseUS uint16) error {
	_, err := fmt.Fprintf(d.W, "pwm %d %d\n", channel, pulseUS)
	return err
}

// WriterFrameWriter sends bus frames to any io.Writer. Wrap the writer
// with a bounded-write adapter when the underlying transport can stall.
type WriterFrameWriter struct {
	W io.Writer
}

func (w *WriterFrameWriter) WriteFrame(frame []byte) error {
	_, err := w.W.Write(frame)
	return err
}
