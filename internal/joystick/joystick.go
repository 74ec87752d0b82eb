// Package joystick turns raw stick samples from the transmitter's ADC
// board into IR commands. The board reports one sample per line:
//
//	X,Y,SW
//
// with X and Y as 10-bit ADC values (0..1023, 512 centered) and SW the
// stick's push switch (1 = pressed).
package joystick

import (
	"fmt"
	"strconv"
	"strings"

	"IrCar/internal/ir"
)

// Sample is one reading of the stick.
type Sample struct {
	X, Y    int
	Pressed bool
}

// ParseSample parses one X,Y,SW line from the joystick board.
func ParseSample(line string) (Sample, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 3 {
		return Sample{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid x: %q", fields[0])
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid y: %q", fields[1])
	}
	sw, err := strconv.Atoi(fields[2])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid sw: %q", fields[2])
	}
	return Sample{X: x, Y: y, Pressed: sw != 0}, nil
}

// Mapper converts samples to commands. Axis priority is explicit and
// fixed: forward beats backward beats left beats right, so a stick
// pushed to a corner drives straight. The push switch is edge-detected;
// holding it down toggles smart-forward exactly once.
type Mapper struct {
	// Low and High bound the dead zone; deflection past either edge
	// registers as a direction.
	Low, High int

	prevPressed bool
}

// NewMapper returns a mapper with the stock 0..1023 thresholds.
func NewMapper() *Mapper {
	return &Mapper{Low: 300, High: 700}
}

// Map returns the command for one sample, if any. A centered stick with
// the switch untouched maps to nothing.
func (m *Mapper) Map(s Sample) (ir.Command, bool) {
	toggled := s.Pressed && !m.prevPressed
	m.prevPressed = s.Pressed
	if toggled {
		return ir.CmdToggleSmart, true
	}

	switch {
	case s.Y > m.High:
		return ir.CmdForward, true
	case s.Y < m.Low:
		return ir.CmdBackward, true
	case s.X < m.Low:
		return ir.CmdLeft, true
	case s.X > m.High:
		return ir.CmdRight, true
	}
	return 0, false
}
