// buscheck is a bench diagnostic for the servo bus: it scans the rig's
// bus id range, reports which joints answer, and optionally reads their
// current positions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"

	"servorig/drive/sts"
)

var (
	port      = flag.String("port", "/dev/ttyUSB0", "servo bus serial device")
	firstID   = flag.Int("first", 3, "first bus servo id")
	lastID    = flag.Int("last", 7, "last bus servo id")
	positions = flag.Bool("positions", true, "read current positions from found servos")
)

func main() {
	flag.Parse()

	if *firstID < 1 || *lastID < *firstID {
		fmt.Fprintf(os.Stderr, "invalid id range %d..%d\n", *firstID, *lastID)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     *port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *port, err)
		os.Exit(1)
	}
	defer bus.Close()

	fmt.Printf("Scanning %s for servo ids %d..%d\n", *port, *firstID, *lastID)
	found, err := bus.Scan(ctx, *firstID, *lastID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan: %v\n", err)
		os.Exit(1)
	}
	if len(found) == 0 {
		fmt.Println("No servos answered. Check wiring, power and baud rate.")
		os.Exit(1)
	}

	present := make(map[int]bool, len(found))
	for _, s := range found {
		present[s.ID] = true
	}
	for id := *firstID; id <= *lastID; id++ {
		if present[id] {
			fmt.Printf("  id %d: ok\n", id)
		} else {
			fmt.Printf("  id %d: no response\n", id)
		}
	}

	if !*positions {
		return
	}
	bus.Close()

	ids := make([]int, 0, len(found))
	for _, s := range found {
		ids = append(ids, s.ID)
	}
	sort.Ints(ids)

	drv, err := sts.Open(*port, ids)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open drive: %v\n", err)
		os.Exit(1)
	}
	defer drv.Close()

	pos, err := drv.Positions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read positions: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Current positions:")
	for _, id := range ids {
		fmt.Printf("  id %d: %.0f\n", id, pos[id])
	}
}
