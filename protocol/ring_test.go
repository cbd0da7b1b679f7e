package protocol

import (
	"bytes"
	"testing"
)

func TestRingPushPopOrder(t *testing.T) {
	r := NewRing(16)
	data := []byte("1 45\n2 -30\n")
	if n := r.Push(data); n != len(data) {
		t.Fatalf("Push accepted %d bytes, want %d", n, len(data))
	}
	if got := r.Available(); got != len(data) {
		t.Errorf("Available() = %d, want %d", got, len(data))
	}
	out := make([]byte, len(data))
	if n := r.Pop(out); n != len(data) {
		t.Fatalf("Pop returned %d bytes, want %d", n, len(data))
	}
	if !bytes.Equal(out, data) {
		t.Errorf("Pop returned %q, want %q", out, data)
	}
	if r.Available() != 0 {
		t.Errorf("Available() after drain = %d, want 0", r.Available())
	}
}

func TestRingCapacityIsSizeMinusOne(t *testing.T) {
	r := NewRing(8)
	data := []byte("abcdefgh")
	n := r.Push(data)
	if n != 7 {
		t.Fatalf("Push accepted %d bytes into 8-slot ring, want 7", n)
	}
	if r.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", r.Dropped())
	}
	out := make([]byte, 8)
	got := r.Pop(out)
	if got != 7 || !bytes.Equal(out[:7], data[:7]) {
		t.Errorf("Pop returned %q (%d), want %q", out[:got], got, data[:7])
	}
}

func TestRingOverrunDropsNewBytes(t *testing.T) {
	r := NewRing(4)
	r.Push([]byte("abc"))
	// Ring is full: further pushes must not disturb queued bytes.
	r.Push([]byte("XYZ"))
	if r.Dropped() != 3 {
		t.Errorf("Dropped() = %d, want 3", r.Dropped())
	}
	out := make([]byte, 4)
	n := r.Pop(out)
	if n != 3 || string(out[:3]) != "abc" {
		t.Errorf("Pop returned %q, want %q", out[:n], "abc")
	}
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(8)
	one := make([]byte, 1)
	for i := 0; i < 100; i++ {
		b := byte('a' + i%26)
		if n := r.Push([]byte{b}); n != 1 {
			t.Fatalf("Push rejected byte %d", i)
		}
		if got := r.Pop(one); got != 1 || one[0] != b {
			t.Fatalf("byte %d: got %q, want %q", i, one[0], b)
		}
	}
	if r.Dropped() != 0 {
		t.Errorf("Dropped() = %d, want 0", r.Dropped())
	}
}

func TestRingReset(t *testing.T) {
	r := NewRing(16)
	r.Push([]byte("stale"))
	r.Reset()
	if r.Available() != 0 {
		t.Errorf("Available() after Reset = %d, want 0", r.Available())
	}
	if _, ok := r.Next(); ok {
		t.Error("Next() after Reset returned a byte")
	}
}

func TestLineFramerSplitsLines(t *testing.T) {
	f := NewLineFramer()
	var lines []string
	for _, b := range []byte("1 45\r\nspeed 60\n\n\rstop\n") {
		if line, ok := f.Feed(b); ok {
			lines = append(lines, line)
		}
	}
	want := []string{"1 45", "speed 60", "stop"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLineFramerForcesFullBuffer(t *testing.T) {
	f := NewLineFramer()
	var got string
	for i := 0; i < MaxLineLen; i++ {
		line, ok := f.Feed('x')
		if ok {
			got = line
			if i != MaxLineLen-1 {
				t.Fatalf("emitted after %d bytes, want %d", i+1, MaxLineLen)
			}
		}
	}
	if len(got) != MaxLineLen {
		t.Errorf("forced line length = %d, want %d", len(got), MaxLineLen)
	}
	if f.Pending() != 0 {
		t.Errorf("Pending() = %d after forced emit, want 0", f.Pending())
	}
}
