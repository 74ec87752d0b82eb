package device

import (
	"strconv"
	"strings"
	"time"
)

// Sonar queries the ultrasonic rangefinder board. The exchange is one
// PING line out, one reply line back: either the distance in cm as a
// decimal number, or NOECHO when the board's own echo window expired.
// Every failure path (write error, read timeout, garbled reply) maps to
// ok=false, which the controller reads as "no obstacle".
type Sonar struct {
	// Timeout bounds the wait for the reply line.
	Timeout time.Duration

	dev Device
}

// DefaultSonarTimeout leaves room for the board's ~25ms echo window
// plus serial latency while keeping the control loop responsive.
const DefaultSonarTimeout = 60 * time.Millisecond

// NewSonar wraps an opened device.
func NewSonar(dev Device) *Sonar {
	return &Sonar{Timeout: DefaultSonarTimeout, dev: dev}
}

// Measure triggers one ranging cycle and returns the distance in cm.
// ok=false means no usable echo.
func (s *Sonar) Measure() (float64, bool) {
	if err := s.dev.WriteLine("PING"); err != nil {
		return 0, false
	}
	line, err := s.dev.ReadLine(s.Timeout)
	if err != nil {
		return 0, false
	}
	return parseEcho(line)
}

// parseEcho interprets one reply line from the rangefinder.
func parseEcho(line string) (float64, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.EqualFold(line, "NOECHO") {
		return 0, false
	}
	cm, err := strconv.ParseFloat(line, 64)
	if err != nil || cm < 0 {
		return 0, false
	}
	return cm, true
}

// Close closes the underlying device.
func (s *Sonar) Close() error { return s.dev.Close() }
