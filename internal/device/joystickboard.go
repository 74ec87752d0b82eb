package device

import (
	"time"

	"IrCar/internal/joystick"
)

// JoystickBoard reads stick samples from the transmitter's ADC board,
// which streams one X,Y,SW line per sampling period.
type JoystickBoard struct {
	dev Device
}

// NewJoystickBoard wraps an opened device.
func NewJoystickBoard(dev Device) *JoystickBoard {
	return &JoystickBoard{dev: dev}
}

// ReadSample reads and parses the next sample line within timeout.
func (j *JoystickBoard) ReadSample(timeout time.Duration) (joystick.Sample, error) {
	line, err := j.dev.ReadLine(timeout)
	if err != nil {
		return joystick.Sample{}, err
	}
	return joystick.ParseSample(line)
}

// Close closes the underlying device.
func (j *JoystickBoard) Close() error { return j.dev.Close() }
