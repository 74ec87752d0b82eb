package core

import (
	"fmt"
	"log"
	"sync"
	"time"

	"IrCar/internal/device"
	"IrCar/internal/ir"
	"IrCar/internal/joystick"
	"IrCar/internal/model"
)

// Remote is the transmitter node: it samples the joystick board, maps
// deflections to commands and sends them over the IR link. A held
// direction is resent often enough to keep the receiver's silence
// watchdog from stopping the car mid-drive.
type Remote struct {
	ID string

	joy    *device.JoystickBoard
	link   *device.IRLink
	mapper *joystick.Mapper

	sampleEvery time.Duration
	holdRepeat  time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewRemote opens the joystick and IR devices per config.
func NewRemote(cfg model.TransmitterConfig) (*Remote, error) {
	id := cfg.ID
	if id == "" {
		id = "TX01"
	}

	joySer, err := device.OpenSerial(cfg.JoystickDev, cfg.JoystickBaud)
	if err != nil {
		return nil, fmt.Errorf("remote %s: open joystick device: %w", id, err)
	}
	irSer, err := device.OpenSerial(cfg.IRDev, cfg.IRBaud)
	if err != nil {
		_ = joySer.Close()
		return nil, fmt.Errorf("remote %s: open ir device: %w", id, err)
	}

	link := device.NewIRLink(irSer)
	if cfg.RepeatCount > 0 {
		link.Repeats = cfg.RepeatCount
	}
	if cfg.RepeatGapMs > 0 {
		link.RepeatGap = time.Duration(cfg.RepeatGapMs) * time.Millisecond
	}

	sampleEvery := 50 * time.Millisecond
	if cfg.SampleEveryMs > 0 {
		sampleEvery = time.Duration(cfg.SampleEveryMs) * time.Millisecond
	}
	holdRepeat := 150 * time.Millisecond
	if cfg.HoldRepeatMs > 0 {
		holdRepeat = time.Duration(cfg.HoldRepeatMs) * time.Millisecond
	}

	return &Remote{
		ID:          id,
		joy:         device.NewJoystickBoard(joySer),
		link:        link,
		mapper:      joystick.NewMapper(),
		sampleEvery: sampleEvery,
		holdRepeat:  holdRepeat,
		stop:        make(chan struct{}),
	}, nil
}

// Start begins the sample/send loop in a background goroutine.
func (r *Remote) Start() error {
	r.wg.Add(1)
	go r.loop()
	log.Printf("remote %s: started", r.ID)
	return nil
}

func (r *Remote) loop() {
	defer r.wg.Done()

	var (
		lastCmd  ir.Command
		lastSent time.Time
		hasLast  bool
	)
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		sample, err := r.joy.ReadSample(2 * r.sampleEvery)
		if err != nil {
			// transient error: wait and continue
			time.Sleep(100 * time.Millisecond)
			continue
		}

		cmd, ok := r.mapper.Map(sample)
		if !ok {
			hasLast = false
			continue
		}

		now := time.Now()
		fresh := !hasLast || cmd != lastCmd || cmd == ir.CmdToggleSmart
		if !fresh && now.Sub(lastSent) < r.holdRepeat {
			continue
		}
		if err := r.link.Send(cmd); err != nil {
			log.Printf("remote %s: send %s err: %v", r.ID, cmd, err)
			continue
		}
		if fresh {
			log.Printf("remote %s: sent %s", r.ID, cmd)
		}
		lastCmd, lastSent, hasLast = cmd, now, true
	}
}

// Stop halts the loop and closes the devices.
func (r *Remote) Stop() {
	// close stop channel (idempotent)
	select {
	case <-r.stop:
		// already closed
	default:
		close(r.stop)
	}
	r.wg.Wait()
	_ = r.joy.Close()
	_ = r.link.Close()
	log.Printf("remote %s: stopped", r.ID)
}
