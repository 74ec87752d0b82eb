// Serial implements Device on a physical serial port using
// go.bug.st/serial.
package device

import (
	"bufio"
	"errors"
	"time"

	serial "go.bug.st/serial"
)

// Serial wraps serial.Port and a buffered reader.
type Serial struct {
	port serial.Port
	r    *bufio.Reader
}

// OpenSerial opens a serial device (e.g. /dev/ttyUSB0) with the given baudrate.
func OpenSerial(dev string, baud int) (*Serial, error) {
	p, err := serial.Open(dev, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, err
	}
	return &Serial{port: p, r: bufio.NewReader(p)}, nil
}

// ReadLine reads a single line from the port. With timeout > 0 it
// returns a read-timeout error once the deadline passes.
func (s *Serial) ReadLine(timeout time.Duration) (string, error) {
	ch := make(chan struct {
		line string
		err  error
	}, 1)

	// reader goroutine
	go func() {
		line, err := s.r.ReadString('\n')
		ch <- struct {
			line string
			err  error
		}{line, err}
	}()

	if timeout <= 0 {
		res := <-ch
		return res.line, res.err
	}

	select {
	case res := <-ch:
		return res.line, res.err
	case <-time.After(timeout):
		return "", errors.New("read timeout")
	}
}

// WriteLine writes line + '\n' to the port.
func (s *Serial) WriteLine(line string) error {
	_, err := s.port.Write(append([]byte(line), '\n'))
	return err
}

// Close closes the underlying serial port.
func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
