package protocol

import "testing"

func TestParseLineForms(t *testing.T) {
	cases := []struct {
		line string
		want Command
	}{
		{"1 45", Command{Kind: CmdMove, ID: 1, Angle: 45}},
		{"3 -12.5", Command{Kind: CmdMove, ID: 3, Angle: -12.5}},
		{"  7   0  ", Command{Kind: CmdMove, ID: 7, Angle: 0}},
		{"speed 60", Command{Kind: CmdSpeed, Value: 60}},
		{"speed 2.5", Command{Kind: CmdSpeed, Value: 2.5}},
		{"dur 1500", Command{Kind: CmdDuration, MS: 1500}},
		{"cpg on", Command{Kind: CmdCPG, On: true}},
		{"cpg off", Command{Kind: CmdCPG, On: false}},
		{"cpgalpha 0.5", Command{Kind: CmdCPGAlpha, Value: 0.5}},
		{"realtime on", Command{Kind: CmdRealtime, On: true}},
		{"realtime off", Command{Kind: CmdRealtime, On: false}},
		{"readall", Command{Kind: CmdReadAll}},
		{"read 4", Command{Kind: CmdRead, ID: 4}},
		{"stop", Command{Kind: CmdStop}},
		{"status", Command{Kind: CmdStatus}},
	}
	for _, tc := range cases {
		got, err := ParseLine(tc.line)
		if err != nil {
			t.Errorf("ParseLine(%q) error: %v", tc.line, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLine(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestParseLineRejectsMalformed(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"1",
		"1 2 3",
		"one 45",
		"1 fast",
		"speed",
		"speed sixty",
		"dur 1.5",
		"dur -100",
		"cpg maybe",
		"cpg",
		"realtime 1",
		"read",
		"read x",
		"readall now",
		"stop all",
		"status full",
	}
	for _, line := range lines {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q) accepted, want error", line)
		}
	}
}

// Range checks are left to execution: the parser only rejects shape.
func TestParseLineDefersRangeValidation(t *testing.T) {
	cases := []string{"speed 999", "cpgalpha 2", "dur 50", "99 45", "1 500"}
	for _, line := range cases {
		if _, err := ParseLine(line); err != nil {
			t.Errorf("ParseLine(%q) error: %v, want shape-level accept", line, err)
		}
	}
}
