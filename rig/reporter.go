package rig

import (
	"strconv"
	"strings"
)

// DefaultFeedbackIntervalMS is the period between realtime feedback
// lines when the reporter is enabled.
const DefaultFeedbackIntervalMS = 20

// Reporter emits the periodic "rt " angle feedback line. It only
// formats text; transmission stays with the caller so sampling never
// blocks on backend I/O.
type Reporter struct {
	enabled    bool
	intervalMS uint32
	lastMS     uint32
}

func NewReporter(intervalMS uint32) *Reporter {
	if intervalMS == 0 {
		intervalMS = DefaultFeedbackIntervalMS
	}
	return &Reporter{intervalMS: intervalMS}
}

// SetEnabled toggles the reporter. Enabling restarts the interval from
// now so the first line appears one full period later.
func (r *Reporter) SetEnabled(on bool, now uint32) {
	r.enabled = on
	if on {
		r.lastMS = now
	}
}

func (r *Reporter) Enabled() bool { return r.enabled }

func (r *Reporter) SetInterval(ms uint32) {
	if ms > 0 {
		r.intervalMS = ms
	}
}

// Due reports whether a feedback line should be emitted at now, and if
// so records now as the last emission time. Elapsed time is computed
// with unsigned subtraction so the interval survives clock wrap.
func (r *Reporter) Due(now uint32) bool {
	if !r.enabled {
		return false
	}
	if now-r.lastMS < r.intervalMS {
		return false
	}
	r.lastMS = now
	return true
}

// Format renders angles as the tagged realtime line. Angles are
// reported as truncated integers, matching the query replies.
func (r *Reporter) Format(angles []float64) string {
	return "rt " + joinAngles(angles)
}

func joinAngles(angles []float64) string {
	var sb strings.Builder
	for i, a := range angles {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(a)))
	}
	return sb.String()
}
