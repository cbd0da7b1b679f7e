// Package sts drives the rig's serial-bus joints through the Feetech
// STS servo library. It implements the servo frame writer boundary, so
// the registry's bus actuators can target real hardware instead of a
// raw serial line.
package sts

import (
	"context"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"github.com/pkg/errors"

	"servorig/servo"
)

// DefaultTimeout bounds one bus transaction.
const DefaultTimeout = 100 * time.Millisecond

// Drive owns the bus connection and the servo group for the rig's bus
// joints.
type Drive struct {
	bus     *feetech.Bus
	group   *feetech.ServoGroup
	ids     []int
	timeout time.Duration
}

// Open connects to the bus at port and builds a group for the given
// servo ids.
func Open(port string, ids []int) (*Drive, error) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
		Timeout:  DefaultTimeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "sts: open bus %s", port)
	}
	return &Drive{
		bus:     bus,
		group:   feetech.NewServoGroupByIDs(bus, ids...),
		ids:     ids,
		timeout: DefaultTimeout,
	}, nil
}

func (d *Drive) Close() error {
	return d.bus.Close()
}

// Enable turns torque on for every joint.
func (d *Drive) Enable(ctx context.Context) error {
	return d.group.EnableAll(ctx)
}

// Disable turns torque off for every joint.
func (d *Drive) Disable(ctx context.Context) error {
	return d.group.DisableAll(ctx)
}

// Positions reads the current raw position of every joint with one
// sync read.
func (d *Drive) Positions(ctx context.Context) (map[int]float64, error) {
	positions, err := d.group.Positions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "sts: read positions")
	}
	out := make(map[int]float64, len(positions))
	for id, pos := range positions {
		out[id] = float64(pos)
	}
	return out, nil
}

// SetPositions writes raw target positions with one sync write.
func (d *Drive) SetPositions(ctx context.Context, positions feetech.PositionMap) error {
	if err := d.group.SetPositions(ctx, positions); err != nil {
		return errors.Wrap(err, "sts: write positions")
	}
	return nil
}

// WriteFrame implements the servo frame writer boundary: the encoded
// move frame is decoded back to id and position and forwarded as a
// library position write. The registry keeps producing frames either
// way; only the transport underneath changes.
func (d *Drive) WriteFrame(frame []byte) error {
	id, pos, _, err := servo.DecodeMoveFrame(frame)
	if err != nil {
		return errors.Wrap(err, "sts: bad frame")
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.SetPositions(ctx, feetech.PositionMap{int(id): int(pos)})
}
