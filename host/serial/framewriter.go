package serial

import (
	"time"

	"github.com/pkg/errors"
)

// ErrWriteTimeout reports a bus write that did not finish inside the
// deadline. The frame counts as not delivered.
var ErrWriteTimeout = errors.New("serial: frame write timed out")

// DefaultWriteTimeout bounds one frame transmission. At 1 Mbaud an
// 11-byte frame takes well under a millisecond, so anything slower than
// this means the line is wedged.
const DefaultWriteTimeout = 20 * time.Millisecond

// PortFrameWriter sends servo bus frames over a serial port with a
// hard per-write deadline.
type PortFrameWriter struct {
	port    Port
	timeout time.Duration
}

// NewPortFrameWriter wraps port. A zero timeout selects the default.
func NewPortFrameWriter(port Port, timeout time.Duration) *PortFrameWriter {
	if timeout == 0 {
		timeout = DefaultWriteTimeout
	}
	return &PortFrameWriter{port: port, timeout: timeout}
}

// WriteFrame transmits one frame. The write runs in a helper goroutine
// so a stuck port surfaces as ErrWriteTimeout instead of stalling the
// control loop; the late write result is discarded.
func (w *PortFrameWriter) WriteFrame(frame []byte) error {
	done := make(chan error, 1)
	go func() {
		n, err := w.port.Write(frame)
		if err == nil && n != len(frame) {
			err = errors.Errorf("serial: short frame write %d/%d", n, len(frame))
		}
		done <- err
	}()

	timer := time.NewTimer(w.timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, "serial: frame write")
		}
		return nil
	case <-timer.C:
		return ErrWriteTimeout
	}
}
