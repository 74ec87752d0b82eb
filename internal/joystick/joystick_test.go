package joystick

import (
	"testing"

	"IrCar/internal/ir"
)

func TestParseSample(t *testing.T) {
	s, err := ParseSample("512,900,0\r\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.X != 512 || s.Y != 900 || s.Pressed {
		t.Fatalf("got %+v", s)
	}

	if _, err := ParseSample("512,900"); err == nil {
		t.Fatal("accepted short line")
	}
	if _, err := ParseSample("a,b,c"); err == nil {
		t.Fatal("accepted non-numeric line")
	}
}

func TestMapDirections(t *testing.T) {
	cases := []struct {
		name string
		s    Sample
		cmd  ir.Command
		ok   bool
	}{
		{"neutral", Sample{X: 512, Y: 512}, 0, false},
		{"forward", Sample{X: 512, Y: 800}, ir.CmdForward, true},
		{"backward", Sample{X: 512, Y: 100}, ir.CmdBackward, true},
		{"left", Sample{X: 100, Y: 512}, ir.CmdLeft, true},
		{"right", Sample{X: 900, Y: 512}, ir.CmdRight, true},
		{"dead zone edge", Sample{X: 700, Y: 300}, 0, false},
	}
	for _, tc := range cases {
		m := NewMapper()
		cmd, ok := m.Map(tc.s)
		if ok != tc.ok || (ok && cmd != tc.cmd) {
			t.Errorf("%s: Map(%+v) = %v,%v, want %v,%v", tc.name, tc.s, cmd, ok, tc.cmd, tc.ok)
		}
	}
}

// A stick in a corner drives straight: forward outranks the lateral axis.
func TestForwardWinsOverLateral(t *testing.T) {
	m := NewMapper()
	cmd, ok := m.Map(Sample{X: 900, Y: 900})
	if !ok || cmd != ir.CmdForward {
		t.Fatalf("corner sample mapped to %v,%v, want forward", cmd, ok)
	}
	cmd, ok = m.Map(Sample{X: 100, Y: 100})
	if !ok || cmd != ir.CmdBackward {
		t.Fatalf("lower corner mapped to %v,%v, want backward", cmd, ok)
	}
}

func TestToggleIsEdgeTriggered(t *testing.T) {
	m := NewMapper()

	cmd, ok := m.Map(Sample{X: 512, Y: 512, Pressed: true})
	if !ok || cmd != ir.CmdToggleSmart {
		t.Fatalf("press: got %v,%v, want toggle", cmd, ok)
	}

	// Holding the switch down produces no further toggles.
	for i := 0; i < 3; i++ {
		if cmd, ok := m.Map(Sample{X: 512, Y: 512, Pressed: true}); ok {
			t.Fatalf("held press %d produced %v", i, cmd)
		}
	}

	// Release and press again: one more toggle.
	if _, ok := m.Map(Sample{X: 512, Y: 512}); ok {
		t.Fatal("release produced a command")
	}
	cmd, ok = m.Map(Sample{X: 512, Y: 512, Pressed: true})
	if !ok || cmd != ir.CmdToggleSmart {
		t.Fatalf("second press: got %v,%v, want toggle", cmd, ok)
	}
}

// The toggle outranks any deflection held at the same sample.
func TestTogglePriorityOverDeflection(t *testing.T) {
	m := NewMapper()
	cmd, ok := m.Map(Sample{X: 512, Y: 900, Pressed: true})
	if !ok || cmd != ir.CmdToggleSmart {
		t.Fatalf("press+forward: got %v,%v, want toggle", cmd, ok)
	}
	// Next sample, still deflected and still held: back to the direction.
	cmd, ok = m.Map(Sample{X: 512, Y: 900, Pressed: true})
	if !ok || cmd != ir.CmdForward {
		t.Fatalf("held forward: got %v,%v, want forward", cmd, ok)
	}
}
