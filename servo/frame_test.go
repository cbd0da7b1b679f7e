package servo

import (
	"bytes"
	"testing"
)

func TestEncodeMoveFrameLayout(t *testing.T) {
	f := encodeMoveFrame(3, 2048, 3400)

	want := []byte{
		0xFF, 0xFF, // sync
		0x03,       // device id
		0x07,       // payload length
		0x03,       // write command
		0x2A,       // goal position register
		0x00, 0x08, // position 2048 little-endian
		0x48, 0x0D, // speed 3400 little-endian
	}
	if !bytes.Equal(f[:10], want) {
		t.Errorf("frame prefix = % X, want % X", f[:10], want)
	}

	// Checksum: complement of the byte sum id..speed-high.
	sum := byte(0x03 + 0x07 + 0x03 + 0x2A + 0x00 + 0x08 + 0x48 + 0x0D)
	if f[10] != ^sum {
		t.Errorf("checksum = %#02x, want %#02x", f[10], ^sum)
	}
}

func TestChecksumTruncates(t *testing.T) {
	// Byte sum overflows 8 bits; the complement applies after
	// truncation.
	f := encodeMoveFrame(7, 4095, 3400)
	var sum byte
	for _, b := range f[2:10] {
		sum += b
	}
	if f[10] != ^sum {
		t.Errorf("checksum = %#02x, want %#02x", f[10], ^sum)
	}
}

func TestDecodeMoveFrameRoundTrip(t *testing.T) {
	tests := []struct {
		id    uint8
		pos   uint16
		speed uint16
	}{
		{3, 0, 3400},
		{4, 2048, 3400},
		{7, 4095, 1},
		{5, 1234, 3400},
	}
	for _, tt := range tests {
		f := encodeMoveFrame(tt.id, tt.pos, tt.speed)
		id, pos, speed, err := DecodeMoveFrame(f[:])
		if err != nil {
			t.Errorf("DecodeMoveFrame(%v) error: %v", tt, err)
			continue
		}
		if id != tt.id || pos != tt.pos || speed != tt.speed {
			t.Errorf("DecodeMoveFrame = (%d, %d, %d), want (%d, %d, %d)",
				id, pos, speed, tt.id, tt.pos, tt.speed)
		}
	}
}

func TestDecodeMoveFrameRejects(t *testing.T) {
	good := encodeMoveFrame(3, 2048, 3400)

	if _, _, _, err := DecodeMoveFrame(good[:10]); err != ErrFrameLength {
		t.Errorf("short frame error = %v, want ErrFrameLength", err)
	}

	bad := good
	bad[0] = 0x00
	if _, _, _, err := DecodeMoveFrame(bad[:]); err != ErrFrameHeader {
		t.Errorf("bad header error = %v, want ErrFrameHeader", err)
	}

	bad = good
	bad[10] ^= 0xFF
	if _, _, _, err := DecodeMoveFrame(bad[:]); err != ErrFrameChecksum {
		t.Errorf("bad checksum error = %v, want ErrFrameChecksum", err)
	}
}
