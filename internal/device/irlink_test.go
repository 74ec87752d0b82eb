package device

import (
	"errors"
	"testing"
	"time"

	"IrCar/internal/ir"
)

// chanDevice feeds scripted lines to readers and records writes.
type chanDevice struct {
	lines  chan string
	writes []string
}

func newChanDevice() *chanDevice {
	return &chanDevice{lines: make(chan string, 16)}
}

func (d *chanDevice) ReadLine(timeout time.Duration) (string, error) {
	select {
	case l := <-d.lines:
		return l, nil
	case <-time.After(time.Second):
		return "", errors.New("read timeout")
	}
}

func (d *chanDevice) WriteLine(s string) error {
	d.writes = append(d.writes, s)
	return nil
}

func (d *chanDevice) Close() error { return nil }

func pollEventually(t *testing.T, l *IRLink) ir.Command {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if c, ok := l.Poll(); ok {
			return c
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no command arrived")
	return 0
}

func TestIRLinkPollDeliversDecodedCommands(t *testing.T) {
	dev := newChanDevice()
	l := NewIRLink(dev)
	l.Start()
	defer func() { _ = l.Close() }()

	dev.lines <- "0x0046"
	dev.lines <- "garbage"
	dev.lines <- "0x0043"

	if c := pollEventually(t, l); c != ir.CmdForward {
		t.Fatalf("first command = %s, want forward", c)
	}
	// the garbled line is dropped, the next code comes through
	if c := pollEventually(t, l); c != ir.CmdRight {
		t.Fatalf("second command = %s, want right", c)
	}
}

func TestIRLinkPollNeverBlocks(t *testing.T) {
	l := NewIRLink(newChanDevice())
	if _, ok := l.Poll(); ok {
		t.Fatal("empty link returned a command")
	}
}

func TestIRLinkSendRepeats(t *testing.T) {
	dev := newChanDevice()
	l := NewIRLink(dev)
	l.RepeatGap = 0

	if err := l.Send(ir.CmdBackward); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(dev.writes) != ir.RepeatCount {
		t.Fatalf("wrote %d lines, want %d", len(dev.writes), ir.RepeatCount)
	}
	for _, w := range dev.writes {
		if w != ir.Encode(ir.CmdBackward) {
			t.Fatalf("wrote %q, want %q", w, ir.Encode(ir.CmdBackward))
		}
	}
}
