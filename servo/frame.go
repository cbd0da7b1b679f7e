package servo

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Move frames are the fixed 11-byte write command understood by the
// STS-class bus servos:
//
//	FF FF id len cmd addr posL posH spdL spdH chk
//
// Positions and speed are little-endian uint16. The checksum is the
// ones-complement of the byte sum from id through the speed high byte.
const (
	MoveFrameLen = 11

	frameHeader     = 0xFF
	frameDataLen    = 7
	cmdWrite        = 0x03
	regGoalPosition = 0x2A

	// DefaultBusSpeed is the servo-side speed limit written with every
	// goal position. Trajectory pacing happens host-side; the servo is
	// told to chase each intermediate point as fast as it can.
	DefaultBusSpeed = 3400
)

var (
	ErrFrameLength   = errors.New("servo: bad frame length")
	ErrFrameHeader   = errors.New("servo: bad frame header")
	ErrFrameChecksum = errors.New("servo: bad frame checksum")
)

// encodeMoveFrame builds the goal-position write frame for one servo.
func encodeMoveFrame(id uint8, pos uint16, speed uint16) [MoveFrameLen]byte {
	var f [MoveFrameLen]byte
	f[0] = frameHeader
	f[1] = frameHeader
	f[2] = id
	f[3] = frameDataLen
	f[4] = cmdWrite
	f[5] = regGoalPosition
	binary.LittleEndian.PutUint16(f[6:8], pos)
	binary.LittleEndian.PutUint16(f[8:10], speed)
	f[10] = checksum(f[2:10])
	return f
}

// checksum sums the given bytes and returns the truncated
// ones-complement.
func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum
}

// DecodeMoveFrame parses and verifies a goal-position frame, returning
// the device id, position and speed it carries. Used by bridge drivers
// that re-issue frames through a higher-level bus library, and by
// tests.
func DecodeMoveFrame(frame []byte) (id uint8, pos uint16, speed uint16, err error) {
	if len(frame) != MoveFrameLen {
		return 0, 0, 0, ErrFrameLength
	}
	if frame[0] != frameHeader || frame[1] != frameHeader {
		return 0, 0, 0, ErrFrameHeader
	}
	if frame[10] != checksum(frame[2:10]) {
		return 0, 0, 0, ErrFrameChecksum
	}
	id = frame[2]
	pos = binary.LittleEndian.Uint16(frame[6:8])
	speed = binary.LittleEndian.Uint16(frame[8:10])
	return id, pos, speed, nil
}
