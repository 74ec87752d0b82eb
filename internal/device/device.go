// Package device talks to the car's serial-attached boards: the IR
// receiver/emitter module, the motor driver, the ultrasonic rangefinder
// and the transmitter's joystick sampler. Each board speaks a
// newline-delimited text protocol over a Device.
package device

import "time"

// Device is a line-oriented communication channel to a board.
type Device interface {
	// ReadLine reads a single line terminated by '\n'.
	// If timeout > 0, it must return after timeout even if no data available.
	ReadLine(timeout time.Duration) (string, error)

	// WriteLine writes s followed by '\n' to the device.
	WriteLine(s string) error

	// Close closes the device and releases underlying resources.
	Close() error
}
