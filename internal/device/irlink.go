package device

import (
	"log"
	"time"

	"IrCar/internal/ir"
)

// IRLink adapts the IR module to the controller's command-source
// contract on the receive side and carries the repeat-send policy on
// the transmit side. The module itself does the waveform work; over the
// serial link only decoded 16-bit codes travel, one hex line each.
type IRLink struct {
	// Repeats and RepeatGap govern Send. Zero values take the
	// transmitter's stock policy.
	Repeats   int
	RepeatGap time.Duration

	dev  Device
	cmds chan ir.Command
	stop chan struct{}
}

// NewIRLink wraps an opened device. Call Start before polling.
func NewIRLink(dev Device) *IRLink {
	return &IRLink{
		Repeats:   ir.RepeatCount,
		RepeatGap: ir.RepeatGapMs * time.Millisecond,
		dev:       dev,
		cmds:      make(chan ir.Command, 16),
		stop:      make(chan struct{}),
	}
}

// Start launches the background reader that decodes incoming lines into
// the command buffer. Unknown or garbled lines are dropped.
func (l *IRLink) Start() {
	go l.readLoop()
}

func (l *IRLink) readLoop() {
	for {
		select {
		case <-l.stop:
			return
		default:
		}
		line, err := l.dev.ReadLine(0)
		if err != nil {
			// transient error: wait and continue
			time.Sleep(100 * time.Millisecond)
			continue
		}
		cmd, ok := ir.Decode(line)
		if !ok {
			continue
		}
		select {
		case l.cmds <- cmd:
		default:
			log.Println("irlink: command buffer full, drop")
		}
	}
}

// Poll returns one buffered command without blocking. It is safe to
// call every loop iteration.
func (l *IRLink) Poll() (ir.Command, bool) {
	select {
	case c := <-l.cmds:
		return c, true
	default:
		return 0, false
	}
}

// Send emits a command with the repeat policy: the code line goes out
// Repeats times with RepeatGap between copies. The receiver treats the
// duplicates as idempotent re-issues.
func (l *IRLink) Send(cmd ir.Command) error {
	n := l.Repeats
	if n <= 0 {
		n = ir.RepeatCount
	}
	for i := 0; i < n; i++ {
		if err := l.dev.WriteLine(ir.Encode(cmd)); err != nil {
			return err
		}
		if i < n-1 {
			time.Sleep(l.RepeatGap)
		}
	}
	return nil
}

// Close stops the reader and closes the underlying device.
func (l *IRLink) Close() error {
	select {
	case <-l.stop:
		// already closed
	default:
		close(l.stop)
	}
	return l.dev.Close()
}
