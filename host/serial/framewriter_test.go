package serial

import (
	"bytes"
	"testing"
	"time"
)

type fakePort struct {
	buf   bytes.Buffer
	short bool
	stall time.Duration
}

func (p *fakePort) Read(b []byte) (int, error) { return 0, nil }

func (p *fakePort) Write(b []byte) (int, error) {
	if p.stall > 0 {
		time.Sleep(p.stall)
	}
	if p.short {
		n := len(b) / 2
		p.buf.Write(b[:n])
		return n, nil
	}
	return p.buf.Write(b)
}

func (p *fakePort) Close() error { return nil }
func (p *fakePort) Flush() error { return nil }

func TestWriteFrameDelivers(t *testing.T) {
	port := &fakePort{}
	w := NewPortFrameWriter(port, 0)

	frame := []byte{0xFF, 0xFF, 0x03, 0x07, 0x03, 0x2A, 0x00, 0x08, 0x48, 0x0D, 0x6B}
	if err := w.WriteFrame(frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if !bytes.Equal(port.buf.Bytes(), frame) {
		t.Errorf("port received %x, want %x", port.buf.Bytes(), frame)
	}
}

func TestWriteFrameShortWriteFails(t *testing.T) {
	w := NewPortFrameWriter(&fakePort{short: true}, 0)
	if err := w.WriteFrame(make([]byte, 11)); err == nil {
		t.Error("short write accepted, want error")
	}
}

func TestWriteFrameTimesOut(t *testing.T) {
	w := NewPortFrameWriter(&fakePort{stall: 200 * time.Millisecond}, 10*time.Millisecond)
	err := w.WriteFrame(make([]byte, 11))
	if err != ErrWriteTimeout {
		t.Errorf("WriteFrame error = %v, want ErrWriteTimeout", err)
	}
}
