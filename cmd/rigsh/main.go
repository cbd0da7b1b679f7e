// rigsh is an interactive development shell for a running rig daemon.
// It speaks the rig's text protocol over the console serial port and
// echoes replies and realtime feedback as they arrive.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	hostserial "servorig/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "rig console serial device")
	baud   = flag.Int("baud", 115200, "baud rate (ignored for USB CDC)")
)

func main() {
	flag.Parse()

	port, err := hostserial.Open(&hostserial.Config{
		Device:      *device,
		Baud:        *baud,
		ReadTimeout: 50,
	})
	if err != nil {
		log.Fatalf("open %s: %v", *device, err)
	}
	defer port.Close()

	shell := ishell.New()
	shell.Println("Actuator rig shell")
	shell.ShowPrompt(true)

	go echoReplies(port, shell)

	send := func(c *ishell.Context, line string) {
		if _, err := io.WriteString(port, line+"\n"); err != nil {
			c.Err(err)
		}
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "move",
		Help: "move <id (1-7)> <angle (deg)>",
		Func: func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(fmt.Errorf("usage: move <id> <angle>"))
				return
			}
			id, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			angle, err := strconv.ParseFloat(c.Args[1], 64)
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("Moving actuator %d to %.1f\n", id, angle)
			send(c, fmt.Sprintf("%d %g", id, angle))
		},
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "speed",
		Help: "speed <deg per second (1-180)>",
		Func: func(c *ishell.Context) { forward(c, send, "speed", 1) },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "dur",
		Help: "dur <milliseconds (100-10000)>",
		Func: func(c *ishell.Context) { forward(c, send, "dur", 1) },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "cpg",
		Help: "cpg on|off",
		Func: func(c *ishell.Context) { forward(c, send, "cpg", 1) },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "alpha",
		Help: "alpha <blend (0-1)>",
		Func: func(c *ishell.Context) { forward(c, send, "cpgalpha", 1) },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "realtime",
		Help: "realtime on|off",
		Func: func(c *ishell.Context) { forward(c, send, "realtime", 1) },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "read",
		Help: "read <id>",
		Func: func(c *ishell.Context) { forward(c, send, "read", 1) },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "readall",
		Help: "read every actuator angle",
		Func: func(c *ishell.Context) { send(c, "readall") },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "stop",
		Help: "stop all motion",
		Func: func(c *ishell.Context) { send(c, "stop") },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "status",
		Help: "show daemon status and counters",
		Func: func(c *ishell.Context) { send(c, "status") },
	})
	shell.AddCmd(&ishell.Cmd{
		Name: "raw",
		Help: "raw <protocol line> - send a line verbatim",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("usage: raw <line>"))
				return
			}
			send(c, strings.Join(c.Args, " "))
		},
	})

	shell.Run()
}

func forward(c *ishell.Context, send func(*ishell.Context, string), name string, argc int) {
	if len(c.Args) != argc {
		c.Err(fmt.Errorf("usage: %s takes %d argument(s)", name, argc))
		return
	}
	send(c, name+" "+strings.Join(c.Args, " "))
}

// echoReplies copies daemon output onto the shell, keeping feedback
// lines visible while commands are typed.
func echoReplies(r io.Reader, shell *ishell.Shell) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			shell.Println(line)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "console read: %v\n", err)
	}
}
