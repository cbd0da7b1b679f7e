package protocol

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CommandKind enumerates the operations the text protocol carries.
type CommandKind uint8

const (
	CmdMove CommandKind = iota
	CmdSpeed
	CmdDuration
	CmdCPG
	CmdCPGAlpha
	CmdRealtime
	CmdReadAll
	CmdRead
	CmdStop
	CmdStatus
)

func (k CommandKind) String() string {
	switch k {
	case CmdMove:
		return "move"
	case CmdSpeed:
		return "speed"
	case CmdDuration:
		return "dur"
	case CmdCPG:
		return "cpg"
	case CmdCPGAlpha:
		return "cpgalpha"
	case CmdRealtime:
		return "realtime"
	case CmdReadAll:
		return "readall"
	case CmdRead:
		return "read"
	case CmdStop:
		return "stop"
	case CmdStatus:
		return "status"
	}
	return "unknown"
}

// Command is one parsed protocol line. Only the fields relevant to the
// Kind are meaningful.
type Command struct {
	Kind  CommandKind
	ID    int     // CmdMove, CmdRead: logical actuator id (1-based)
	Angle float64 // CmdMove
	Value float64 // CmdSpeed, CmdCPGAlpha
	MS    uint32  // CmdDuration
	On    bool    // CmdCPG, CmdRealtime
}

var (
	ErrEmptyLine = errors.New("protocol: empty command line")
	ErrMalformed = errors.New("protocol: malformed command")
)

// ParseLine parses one whitespace-delimited command line. The first
// token selects the form; an unrecognized first token falls through to
// the default numeric "<id> <angle>" move form. Parsing checks shape
// only; range validation of numeric arguments happens at execution so
// the rejection can be counted where state would have changed.
func ParseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyLine
	}

	switch fields[0] {
	case "speed":
		v, err := floatArg(fields)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdSpeed, Value: v}, nil

	case "dur":
		if len(fields) != 2 {
			return Command{}, ErrMalformed
		}
		ms, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return Command{}, errors.Wrap(ErrMalformed, err.Error())
		}
		return Command{Kind: CmdDuration, MS: uint32(ms)}, nil

	case "cpg":
		on, err := onOffArg(fields)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdCPG, On: on}, nil

	case "cpgalpha":
		v, err := floatArg(fields)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdCPGAlpha, Value: v}, nil

	case "realtime":
		on, err := onOffArg(fields)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdRealtime, On: on}, nil

	case "readall":
		if len(fields) != 1 {
			return Command{}, ErrMalformed
		}
		return Command{Kind: CmdReadAll}, nil

	case "read":
		if len(fields) != 2 {
			return Command{}, ErrMalformed
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, errors.Wrap(ErrMalformed, err.Error())
		}
		return Command{Kind: CmdRead, ID: id}, nil

	case "stop":
		if len(fields) != 1 {
			return Command{}, ErrMalformed
		}
		return Command{Kind: CmdStop}, nil

	case "status":
		if len(fields) != 1 {
			return Command{}, ErrMalformed
		}
		return Command{Kind: CmdStatus}, nil
	}

	// Default numeric form: "<id> <angle>".
	if len(fields) != 2 {
		return Command{}, ErrMalformed
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, errors.Wrap(ErrMalformed, err.Error())
	}
	angle, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Command{}, errors.Wrap(ErrMalformed, err.Error())
	}
	return Command{Kind: CmdMove, ID: id, Angle: angle}, nil
}

func floatArg(fields []string) (float64, error) {
	if len(fields) != 2 {
		return 0, ErrMalformed
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, errors.Wrap(ErrMalformed, err.Error())
	}
	return v, nil
}

func onOffArg(fields []string) (bool, error) {
	if len(fields) != 2 {
		return false, ErrMalformed
	}
	switch fields[1] {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, ErrMalformed
}
