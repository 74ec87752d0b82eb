package device

import "log"

// Motor board wire tokens, one per line.
const (
	tokForward  = "FWD"
	tokBackward = "REV"
	tokLeft     = "LFT"
	tokRight    = "RGT"
	tokStop     = "STP"
	tokBuzzOn   = "BZ1"
	tokBuzzOff  = "BZ0"
)

// MotorBoard drives the motor/buzzer board. It satisfies both the
// actuator and buzzer contracts: every operation is a single token line
// and assumed to take effect immediately. Write failures are logged and
// swallowed; the board offers no failure signal and the controller has
// no use for one.
type MotorBoard struct {
	dev Device
}

// NewMotorBoard wraps an opened device.
func NewMotorBoard(dev Device) *MotorBoard {
	return &MotorBoard{dev: dev}
}

func (m *MotorBoard) send(tok string) {
	if err := m.dev.WriteLine(tok); err != nil {
		log.Printf("motor: write %s err: %v", tok, err)
	}
}

func (m *MotorBoard) Forward()  { m.send(tokForward) }
func (m *MotorBoard) Backward() { m.send(tokBackward) }
func (m *MotorBoard) Left()     { m.send(tokLeft) }
func (m *MotorBoard) Right()    { m.send(tokRight) }
func (m *MotorBoard) Stop()     { m.send(tokStop) }

func (m *MotorBoard) On()  { m.send(tokBuzzOn) }
func (m *MotorBoard) Off() { m.send(tokBuzzOff) }

// Close closes the underlying device.
func (m *MotorBoard) Close() error { return m.dev.Close() }
