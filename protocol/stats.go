package protocol

import "sync/atomic"

// Stats aggregates transport and dispatch counters. All counters are
// monotonic and safe to update from the input and control goroutines
// concurrently.
type Stats struct {
	bytesReceived     atomic.Uint64
	bytesDropped      atomic.Uint64
	bytesTransmitted  atomic.Uint64
	commandsProcessed atomic.Uint64
	commandsRejected  atomic.Uint64
	transportErrors   atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	BytesReceived     uint64
	BytesDropped      uint64
	BytesTransmitted  uint64
	CommandsProcessed uint64
	CommandsRejected  uint64
	TransportErrors   uint64
}

func (s *Stats) AddReceived(n int)    { s.bytesReceived.Add(uint64(n)) }
func (s *Stats) AddDropped(n int)     { s.bytesDropped.Add(uint64(n)) }
func (s *Stats) AddTransmitted(n int) { s.bytesTransmitted.Add(uint64(n)) }
func (s *Stats) CommandProcessed()    { s.commandsProcessed.Add(1) }
func (s *Stats) CommandRejected()     { s.commandsRejected.Add(1) }
// TransportError counts a console transmit failure. Backend commit
// failures are counted by the servo registry; status reporting sums
// both.
func (s *Stats) TransportError() { s.transportErrors.Add(1) }

func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		BytesReceived:     s.bytesReceived.Load(),
		BytesDropped:      s.bytesDropped.Load(),
		BytesTransmitted:  s.bytesTransmitted.Load(),
		CommandsProcessed: s.commandsProcessed.Load(),
		CommandsRejected:  s.commandsRejected.Load(),
		TransportErrors:   s.transportErrors.Load(),
	}
}
