// Package controller implements the receiver's mode and safety logic:
// it arbitrates between manual IR commands, the manual-silence watchdog
// and the smart-forward obstacle-avoidance cycle, all driving the same
// motor board. All state is owned by the single goroutine running the
// poll loop; collaborators are injected as interfaces.
package controller

import (
	"log"
	"time"

	"IrCar/internal/ir"
)

// Mode is the car's operating mode. Exactly one mode is active at a
// time and only command handling changes it.
type Mode int

const (
	ModeManual Mode = iota
	ModeSmartForward
)

func (m Mode) String() string {
	if m == ModeSmartForward {
		return "smart-forward"
	}
	return "manual"
}

// AvoidanceState tracks whether the evasion response (buzzer + right
// turn) is currently engaged. It is meaningful only in smart-forward
// mode and exists so the buzzer and the journal see clean edges instead
// of a report every cycle.
type AvoidanceState int

const (
	AvoidClear AvoidanceState = iota
	AvoidAvoiding
)

func (a AvoidanceState) String() string {
	if a == AvoidAvoiding {
		return "avoiding"
	}
	return "clear"
}

// Motion is the last primitive issued to the actuator.
type Motion int

const (
	MotionStop Motion = iota
	MotionForward
	MotionBackward
	MotionLeft
	MotionRight
)

func (m Motion) String() string {
	switch m {
	case MotionForward:
		return "forward"
	case MotionBackward:
		return "backward"
	case MotionLeft:
		return "left"
	case MotionRight:
		return "right"
	}
	return "stop"
}

// Actuator is the motor board. All five operations are idempotent and
// assumed to succeed; there is no failure path back into the controller.
type Actuator interface {
	Forward()
	Backward()
	Left()
	Right()
	Stop()
}

// Buzzer signals obstacle detection to bystanders.
type Buzzer interface {
	On()
	Off()
}

// RangeSensor measures the distance to the nearest obstacle in cm.
// ok=false means no echo within the sensor's bounded wait, which the
// avoidance cycle deliberately treats as "path clear" rather than
// stopping the car on a missed reading.
type RangeSensor interface {
	Measure() (cm float64, ok bool)
}

// CommandSource yields at most one newly decoded IR command per call
// and never blocks.
type CommandSource interface {
	Poll() (ir.Command, bool)
}

// Config carries the controller's timing and threshold constants.
type Config struct {
	// SilenceTimeout stops the car when no command arrives for this
	// long while in manual mode.
	SilenceTimeout time.Duration
	// CheckInterval is the minimum spacing between obstacle checks in
	// smart-forward mode.
	CheckInterval time.Duration
	// ObstacleThresholdCm triggers evasion for readings strictly below it.
	ObstacleThresholdCm float64
	// PollInterval is the cadence of the Run loop.
	PollInterval time.Duration
}

// DefaultConfig returns the stock tuning of the reference car.
func DefaultConfig() Config {
	return Config{
		SilenceTimeout:      200 * time.Millisecond,
		CheckInterval:       300 * time.Millisecond,
		ObstacleThresholdCm: 20,
		PollInterval:        10 * time.Millisecond,
	}
}

// Status is a value snapshot of everything externally observable about
// the controller. It is published through OnStatus after any step that
// changed it, so readers never touch controller state directly.
type Status struct {
	Mode         Mode           `json:"mode"`
	Avoidance    AvoidanceState `json:"avoidance"`
	Motion       Motion         `json:"motion"`
	Buzzer       bool           `json:"buzzer"`
	LastDistance float64        `json:"last_distance_cm"`
	EchoOK       bool           `json:"echo_ok"`
	LastCommand  ir.Command     `json:"last_command"`
	HasCommand   bool           `json:"has_command"`
}

// Controller owns the mode state machine, the watchdog and the
// avoidance cycle. Construct with New, then call Run from exactly one
// goroutine (or drive Step directly in tests).
type Controller struct {
	cfg    Config
	src    CommandSource
	sensor RangeSensor
	motor  Actuator
	buzzer Buzzer

	// Clock is read once per Run iteration. Overridable in tests.
	Clock func() time.Time

	// OnStatus, OnMode and OnObstacle are edge/change notifications for
	// the status server and journal. They run on the loop goroutine and
	// must not call back into the controller.
	OnStatus   func(Status)
	OnMode     func(Mode)
	OnObstacle func(state AvoidanceState, distanceCm float64)

	mode            Mode
	avoid           AvoidanceState
	lastCommandTime time.Time
	lastCheckTime   time.Time

	status    Status
	published Status
	everSent  bool
}

// New builds a controller in its initial state: manual mode, avoidance
// clear, zero timestamps. With zero timestamps the watchdog stops the
// (already stopped) car until the first command arrives, matching the
// power-on behavior of the original receiver.
func New(cfg Config, src CommandSource, sensor RangeSensor, motor Actuator, buzzer Buzzer) *Controller {
	if cfg.SilenceTimeout <= 0 {
		cfg.SilenceTimeout = DefaultConfig().SilenceTimeout
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultConfig().CheckInterval
	}
	if cfg.ObstacleThresholdCm <= 0 {
		cfg.ObstacleThresholdCm = DefaultConfig().ObstacleThresholdCm
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	return &Controller{
		cfg:    cfg,
		src:    src,
		sensor: sensor,
		motor:  motor,
		buzzer: buzzer,
		Clock:  time.Now,
	}
}

// Run iterates Step at the configured poll interval until stop is
// closed. It is the only goroutine allowed to mutate controller state.
func (c *Controller) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.Step(c.Clock())
		}
	}
}

// Step executes one cooperative iteration: command dispatch first, then
// the manual-silence watchdog, then the avoidance cycle. The ordering
// is part of the contract; a command that arrives this iteration rearms
// the watchdog before it is checked.
func (c *Controller) Step(now time.Time) {
	if cmd, ok := c.src.Poll(); ok {
		c.HandleCommand(cmd, now)
	}

	if c.mode == ModeManual && now.Sub(c.lastCommandTime) > c.cfg.SilenceTimeout {
		// Stop is idempotent; issuing it every silent iteration is fine.
		c.drive(MotionStop)
	}

	if c.mode == ModeSmartForward && now.Sub(c.lastCheckTime) >= c.cfg.CheckInterval {
		c.avoidanceCycle(now)
	}

	c.publish()
}

// HandleCommand applies one decoded IR command to the mode state
// machine. Every receipt rearms the watchdog, whether or not the
// command changes anything.
func (c *Controller) HandleCommand(cmd ir.Command, now time.Time) {
	c.lastCommandTime = now
	c.status.LastCommand = cmd
	c.status.HasCommand = true

	switch c.mode {
	case ModeManual:
		switch cmd {
		case ir.CmdForward:
			c.drive(MotionForward)
		case ir.CmdBackward:
			c.drive(MotionBackward)
		case ir.CmdLeft:
			c.drive(MotionLeft)
		case ir.CmdRight:
			c.drive(MotionRight)
		case ir.CmdToggleSmart:
			c.setMode(ModeSmartForward)
			c.avoid = AvoidClear
			c.status.Avoidance = AvoidClear
			c.drive(MotionForward)
		}
	case ModeSmartForward:
		switch cmd {
		case ir.CmdForward:
			// already driving forward autonomously
		case ir.CmdBackward:
			c.exitSmart()
			c.drive(MotionBackward)
		case ir.CmdLeft:
			c.exitSmart()
			c.drive(MotionLeft)
		case ir.CmdRight:
			c.exitSmart()
			c.drive(MotionRight)
		case ir.CmdToggleSmart:
			c.exitSmart()
			c.drive(MotionStop)
		}
	}
}

// Status returns the current snapshot. Call only from the loop
// goroutine; concurrent readers should subscribe via OnStatus.
func (c *Controller) Status() Status {
	return c.status
}

// avoidanceCycle runs one obstacle check. A reading strictly below the
// threshold engages the buzzer and a right turn; anything else,
// including a sensor timeout, reads as a clear path.
func (c *Controller) avoidanceCycle(now time.Time) {
	c.lastCheckTime = now
	dist, ok := c.sensor.Measure()
	c.status.LastDistance = dist
	c.status.EchoOK = ok

	if ok && dist < c.cfg.ObstacleThresholdCm {
		if c.avoid == AvoidClear {
			c.setAvoid(AvoidAvoiding, dist)
		}
		c.buzzerOn()
		c.drive(MotionRight)
		return
	}

	if c.avoid == AvoidAvoiding {
		c.setAvoid(AvoidClear, dist)
	}
	c.buzzerOff()
	c.drive(MotionForward)
}

// exitSmart leaves smart-forward mode: back to manual, buzzer silenced,
// avoidance flag reset without firing an obstacle edge (the mode edge
// is the report).
func (c *Controller) exitSmart() {
	c.buzzerOff()
	c.avoid = AvoidClear
	c.status.Avoidance = AvoidClear
	c.setMode(ModeManual)
}

func (c *Controller) setMode(m Mode) {
	if c.mode == m {
		return
	}
	c.mode = m
	c.status.Mode = m
	log.Printf("controller: mode -> %s", m)
	if c.OnMode != nil {
		c.OnMode(m)
	}
}

func (c *Controller) setAvoid(a AvoidanceState, dist float64) {
	c.avoid = a
	c.status.Avoidance = a
	if a == AvoidAvoiding {
		log.Printf("controller: obstacle at %.1f cm, evading right", dist)
	} else {
		log.Printf("controller: path clear, resuming forward")
	}
	if c.OnObstacle != nil {
		c.OnObstacle(a, dist)
	}
}

func (c *Controller) drive(m Motion) {
	switch m {
	case MotionForward:
		c.motor.Forward()
	case MotionBackward:
		c.motor.Backward()
	case MotionLeft:
		c.motor.Left()
	case MotionRight:
		c.motor.Right()
	default:
		c.motor.Stop()
	}
	c.status.Motion = m
}

func (c *Controller) buzzerOn() {
	c.buzzer.On()
	c.status.Buzzer = true
}

func (c *Controller) buzzerOff() {
	c.buzzer.Off()
	c.status.Buzzer = false
}

// publish pushes the snapshot to OnStatus when it changed since the
// last push, so idle iterations stay silent.
func (c *Controller) publish() {
	if c.OnStatus == nil {
		return
	}
	if c.everSent && c.status == c.published {
		return
	}
	c.published = c.status
	c.everSent = true
	c.OnStatus(c.status)
}
