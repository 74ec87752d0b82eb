// Package core contains the node runtimes and orchestration layer for
// the IR car system: the Car (receiver node), the Remote (transmitter
// node) and the System that builds both from configuration.
package core

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"IrCar/internal/controller"
	"IrCar/internal/device"
	"IrCar/internal/model"
	"IrCar/internal/status"
)

// Car is the receiver node: IR command link, ultrasonic rangefinder and
// motor board feeding the mode/safety controller, plus the optional
// status server.
type Car struct {
	ID string

	link  *device.IRLink
	sonar *device.Sonar
	motor *device.MotorBoard
	ctrl  *controller.Controller
	srv   *status.Server

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewCar opens the three serial boards and wires up the controller.
// All three devices are required; the status server and journal are
// optional per config.
func NewCar(cfg model.ReceiverConfig) (*Car, error) {
	id := cfg.ID
	if id == "" {
		id = "CAR01"
	}

	irSer, err := device.OpenSerial(cfg.IRDev, cfg.IRBaud)
	if err != nil {
		return nil, fmt.Errorf("car %s: open ir device: %w", id, err)
	}
	motorSer, err := device.OpenSerial(cfg.MotorDev, cfg.MotorBaud)
	if err != nil {
		_ = irSer.Close()
		return nil, fmt.Errorf("car %s: open motor device: %w", id, err)
	}
	sonarSer, err := device.OpenSerial(cfg.SonarDev, cfg.SonarBaud)
	if err != nil {
		_ = irSer.Close()
		_ = motorSer.Close()
		return nil, fmt.Errorf("car %s: open sonar device: %w", id, err)
	}

	c := &Car{
		ID:    id,
		link:  device.NewIRLink(irSer),
		sonar: device.NewSonar(sonarSer),
		motor: device.NewMotorBoard(motorSer),
		stop:  make(chan struct{}),
	}

	ccfg := controller.Config{
		SilenceTimeout:      time.Duration(cfg.SilenceTimeoutMs) * time.Millisecond,
		CheckInterval:       time.Duration(cfg.ObstacleCheckIntervalMs) * time.Millisecond,
		ObstacleThresholdCm: cfg.ObstacleThresholdCm,
		PollInterval:        time.Duration(cfg.PollIntervalMs) * time.Millisecond,
	}
	c.ctrl = controller.New(ccfg, c.link, c.sonar, c.motor, c.motor)

	if cfg.StatusAddr != "" {
		var journal *status.Journal
		if cfg.JournalPath != "" {
			journal, err = status.OpenJournal(cfg.JournalPath)
			if err != nil {
				// run without history rather than refuse to drive
				log.Printf("car %s: %v (journal disabled)", id, err)
			}
		}
		c.srv = status.NewServer(cfg.StatusAddr, journal)
		c.ctrl.OnStatus = func(st controller.Status) {
			c.srv.Publish(model.Status{
				CarID:        c.ID,
				Mode:         st.Mode.String(),
				Avoidance:    st.Avoidance.String(),
				Motion:       st.Motion.String(),
				Buzzer:       st.Buzzer,
				LastDistance: st.LastDistance,
				EchoOK:       st.EchoOK,
				LastCommand:  st.LastCommand.String(),
				Time:         time.Now(),
			})
		}
		c.ctrl.OnMode = func(m controller.Mode) {
			c.srv.Record(model.Event{
				ID:     uuid.NewString(),
				CarID:  c.ID,
				Time:   time.Now(),
				Kind:   "mode",
				Detail: m.String(),
			})
		}
		c.ctrl.OnObstacle = func(a controller.AvoidanceState, dist float64) {
			c.srv.Record(model.Event{
				ID:         uuid.NewString(),
				CarID:      c.ID,
				Time:       time.Now(),
				Kind:       "obstacle",
				Detail:     a.String(),
				DistanceCm: dist,
			})
		}
	}
	return c, nil
}

// Start launches the IR reader, the control loop and the status server.
func (c *Car) Start() error {
	c.link.Start()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.ctrl.Run(c.stop)
	}()
	if c.srv != nil {
		go c.srv.Start()
	}
	log.Printf("car %s: started", c.ID)
	return nil
}

// Stop halts the control loop, parks the motors and closes everything.
func (c *Car) Stop() {
	// close stop channel (idempotent)
	select {
	case <-c.stop:
		// already closed
	default:
		close(c.stop)
	}
	c.wg.Wait()
	// the loop is down; park the car before dropping the port
	c.motor.Stop()
	c.motor.Off()
	if c.srv != nil {
		c.srv.Stop()
	}
	_ = c.link.Close()
	_ = c.sonar.Close()
	_ = c.motor.Close()
	log.Printf("car %s: stopped", c.ID)
}
