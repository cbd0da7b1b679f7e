// rigd runs the actuator rig control daemon: it serves the text
// command protocol on a console port (or stdio), drives the PWM joints
// through an auxiliary serial expander and the bus joints through the
// STS servo bus, and keeps every trajectory advancing until stopped.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v6"

	"servorig/drive/sts"
	hostserial "servorig/host/serial"
	"servorig/rig"
	"servorig/servo"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	console    = flag.String("console", "", "console serial device (default: stdio)")
	busPort    = flag.String("bus", "", "servo bus serial device")
	pwmPort    = flag.String("pwm", "", "PWM expander serial device")
	rawBus     = flag.Bool("rawbus", false, "write raw frames to the bus device instead of using the STS driver")
)

func main() {
	flag.Parse()
	log.SetPrefix("rigd: ")
	log.SetFlags(log.LstdFlags)

	cfg := rig.DefaultConfig()
	if *configPath != "" {
		loaded, err := rig.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("parse environment: %v", err)
	}
	if *console != "" {
		cfg.ConsolePort = *console
	}
	if *busPort != "" {
		cfg.BusPort = *busPort
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	bus, closeBus, err := openBus(cfg)
	if err != nil {
		log.Fatalf("open bus: %v", err)
	}
	defer closeBus()

	pwm, closePWM, err := openPWM()
	if err != nil {
		log.Fatalf("open pwm expander: %v", err)
	}
	defer closePWM()

	reg, err := servo.NewRegistry(servo.Options{
		Count:      cfg.ActuatorCount,
		PWM:        pwm,
		Bus:        bus,
		PulseMinUS: uint16(cfg.PulseMinUS),
		PulseMaxUS: uint16(cfg.PulseMaxUS),
		BusSpeed:   cfg.BusSpeed,
	})
	if err != nil {
		log.Fatalf("init actuators: %v", err)
	}

	in, out, closeConsole, err := openConsole(cfg)
	if err != nil {
		log.Fatalf("open console: %v", err)
	}
	defer closeConsole()

	params := cfg.MotionParams()
	clock := rig.NewWallClock()
	mgr := rig.NewManager(rig.Options{
		Registry:   reg,
		Params:     &params,
		Clock:      clock,
		Output:     out,
		FeedbackMS: cfg.FeedbackIntervalMS,
	})

	if cfg.CenterOnStart {
		reg.CenterAll(&params, clock.NowMS())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go readInput(ctx, in, mgr)

	log.Printf("%d actuators, console=%s bus=%s", cfg.ActuatorCount, consoleName(cfg), busName(cfg))
	if err := mgr.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("control loop: %v", err)
	}
}

// readInput pumps console bytes into the manager's receive ring.
func readInput(ctx context.Context, in io.Reader, mgr *rig.Manager) {
	buf := make([]byte, 64)
	for ctx.Err() == nil {
		n, err := in.Read(buf)
		if n > 0 {
			mgr.PushInput(buf[:n])
		}
		if err != nil && err != io.EOF {
			return
		}
	}
}

func openBus(cfg *rig.Config) (servo.FrameWriter, func(), error) {
	if cfg.BusPort == "" {
		return servo.NullFrameWriter{}, func() {}, nil
	}
	if *rawBus {
		port, err := hostserial.Open(hostserial.BusConfig(cfg.BusPort))
		if err != nil {
			return nil, nil, err
		}
		return hostserial.NewPortFrameWriter(port, 0), func() { port.Close() }, nil
	}

	ids := make([]int, 0, cfg.ActuatorCount-servo.PWMCount)
	for i := servo.PWMCount; i < cfg.ActuatorCount; i++ {
		ids = append(ids, i-servo.PWMCount+3)
	}
	drv, err := sts.Open(cfg.BusPort, ids)
	if err != nil {
		return nil, nil, err
	}
	if err := drv.Enable(context.Background()); err != nil {
		drv.Close()
		return nil, nil, err
	}
	return drv, func() { drv.Close() }, nil
}

func openPWM() (servo.PWMDriver, func(), error) {
	if *pwmPort == "" {
		return servo.NullPWMDriver{}, func() {}, nil
	}
	port, err := hostserial.Open(hostserial.ConsoleConfig(*pwmPort))
	if err != nil {
		return nil, nil, err
	}
	return &servo.WriterPWMDriver{W: port}, func() { port.Close() }, nil
}

func openConsole(cfg *rig.Config) (io.Reader, io.Writer, func(), error) {
	if cfg.ConsolePort == "" {
		return os.Stdin, os.Stdout, func() {}, nil
	}
	port, err := hostserial.Open(hostserial.ConsoleConfig(cfg.ConsolePort))
	if err != nil {
		return nil, nil, nil, err
	}
	return port, port, func() { port.Close() }, nil
}

func consoleName(cfg *rig.Config) string {
	if cfg.ConsolePort == "" {
		return "stdio"
	}
	return cfg.ConsolePort
}

func busName(cfg *rig.Config) string {
	if cfg.BusPort == "" {
		return "none"
	}
	return cfg.BusPort
}
