package rig

import (
	"fmt"

	"github.com/pkg/errors"

	"servorig/motion"
	"servorig/protocol"
	"servorig/servo"
)

var errID = errors.New("rig: actuator id out of range")

// Dispatcher executes parsed commands against the registry and the
// shared motion parameters. Execute returns the confirmation or query
// reply (without line terminator) and an internal error for rejected
// input; the external contract stays silent on rejection, so the caller
// only counts the error and drops it.
type Dispatcher struct {
	reg      *servo.Registry
	params   *motion.Params
	reporter *Reporter
	stats    *protocol.Stats
}

func NewDispatcher(reg *servo.Registry, params *motion.Params, reporter *Reporter, stats *protocol.Stats) *Dispatcher {
	return &Dispatcher{reg: reg, params: params, reporter: reporter, stats: stats}
}

func (d *Dispatcher) Execute(cmd protocol.Command, now uint32) (string, error) {
	switch cmd.Kind {
	case protocol.CmdSpeed:
		if err := d.params.SetSpeed(cmd.Value); err != nil {
			return "", err
		}
		return fmt.Sprintf("Speed set to: %.1f deg/s", d.params.SpeedDegPerSec), nil

	case protocol.CmdDuration:
		if err := d.params.SetDuration(cmd.MS); err != nil {
			return "", err
		}
		return fmt.Sprintf("Duration set to: %d ms", d.params.DurationMS), nil

	case protocol.CmdCPG:
		d.params.CPGEnabled = cmd.On
		if cmd.On {
			return "CPG enabled", nil
		}
		return "CPG disabled", nil

	case protocol.CmdCPGAlpha:
		if err := d.params.SetCPGAlpha(cmd.Value); err != nil {
			return "", err
		}
		return fmt.Sprintf("CPG alpha set to: %.2f", d.params.CPGAlpha), nil

	case protocol.CmdRealtime:
		d.reporter.SetEnabled(cmd.On, now)
		if cmd.On {
			return "Real-time feedback enabled", nil
		}
		return "Real-time feedback disabled", nil

	case protocol.CmdReadAll:
		return "fb " + joinAngles(d.reg.Angles(now, d.params)), nil

	case protocol.CmdRead:
		if cmd.ID < 1 || cmd.ID > d.reg.Count() {
			return "", errID
		}
		a := d.reg.AngleAt(cmd.ID-1, now, d.params)
		return fmt.Sprintf("fb %d %d", cmd.ID, int(a)), nil

	case protocol.CmdStop:
		d.reg.StopAll(now, d.params)
		return "All motion stopped", nil

	case protocol.CmdStatus:
		s := d.stats.Snapshot()
		return fmt.Sprintf(
			"status moving=%d speed=%.1f dur=%d cpg=%t alpha=%.2f rx=%d drop=%d tx=%d ok=%d rej=%d err=%d",
			d.reg.MovingCount(), d.params.SpeedDegPerSec, d.params.DurationMS,
			d.params.CPGEnabled, d.params.CPGAlpha,
			s.BytesReceived, s.BytesDropped, s.BytesTransmitted,
			s.CommandsProcessed, s.CommandsRejected,
			s.TransportErrors+d.reg.TransportErrors()), nil

	case protocol.CmdMove:
		if cmd.ID < 1 || cmd.ID > d.reg.Count() {
			return "", errID
		}
		if err := d.reg.SetTargetAngle(cmd.ID-1, cmd.Angle, d.params, now); err != nil {
			return "", err
		}
		return fmt.Sprintf("Servo %d moving to: %d°", cmd.ID, int(cmd.Angle)), nil
	}
	return "", errors.Errorf("rig: unhandled command kind %d", cmd.Kind)
}
