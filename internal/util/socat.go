// Virtual serial management using socat, so the car, remote and
// simulator can run wired together on a dev machine without hardware.
package util

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// SocatManager manages lifecycle of socat-created virtual serial pairs.
type SocatManager struct {
	mu     sync.Mutex
	cmds   []*exec.Cmd
	links  []string
	closed bool
}

// NewSocatManager initializes an empty manager.
func NewSocatManager() *SocatManager {
	return &SocatManager{}
}

// CreatePair starts a socat process that links two PTYs (bidirectional).
func (m *SocatManager) CreatePair(left, right string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := exec.Command(
		"socat", "-d", "-d",
		fmt.Sprintf("pty,raw,echo=0,link=%s", left),
		fmt.Sprintf("pty,raw,echo=0,link=%s", right),
	)
	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start socat: %w", err)
	}

	log.Printf("[virt-serial] started socat (pid=%d): %s <-> %s", cmd.Process.Pid, left, right)

	m.cmds = append(m.cmds, cmd)
	m.links = append(m.links, left, right)
	return nil
}

// CarHarness holds the node-side link paths of a full virtual rig:
// one pair per board, node side and simulator side.
type CarHarness struct {
	IR       string // receiver <- decoded IR codes
	Motor    string // receiver -> motor/buzzer tokens
	Sonar    string // receiver <-> PING/echo
	Joystick string // transmitter <- stick samples
	TxIR     string // transmitter -> IR codes out

	SimIR       string
	SimMotor    string
	SimSonar    string
	SimJoystick string
	SimTxIR     string
}

// CreateCarHarness creates the five virtual pairs a complete
// car+remote+simulator rig needs, with links placed under dir.
func (m *SocatManager) CreateCarHarness(dir string) (*CarHarness, error) {
	h := &CarHarness{
		IR:          filepath.Join(dir, "ttyIR"),
		Motor:       filepath.Join(dir, "ttyMotor"),
		Sonar:       filepath.Join(dir, "ttySonar"),
		Joystick:    filepath.Join(dir, "ttyJoy"),
		TxIR:        filepath.Join(dir, "ttyTxIR"),
		SimIR:       filepath.Join(dir, "ttyIR.sim"),
		SimMotor:    filepath.Join(dir, "ttyMotor.sim"),
		SimSonar:    filepath.Join(dir, "ttySonar.sim"),
		SimJoystick: filepath.Join(dir, "ttyJoy.sim"),
		SimTxIR:     filepath.Join(dir, "ttyTxIR.sim"),
	}
	pairs := [][2]string{
		{h.IR, h.SimIR},
		{h.Motor, h.SimMotor},
		{h.Sonar, h.SimSonar},
		{h.Joystick, h.SimJoystick},
		{h.TxIR, h.SimTxIR},
	}
	for _, p := range pairs {
		if err := m.CreatePair(p[0], p[1]); err != nil {
			m.Cleanup()
			return nil, err
		}
	}
	return h, nil
}

// Cleanup stops all socat processes and removes created links.
func (m *SocatManager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true

	for _, cmd := range m.cmds {
		if cmd.Process != nil {
			log.Printf("[virt-serial] killing socat pid=%d", cmd.Process.Pid)
			_ = cmd.Process.Kill()
			_, _ = cmd.Process.Wait()
		}
	}

	for _, path := range m.links {
		if _, err := os.Lstat(path); err == nil {
			_ = os.Remove(path)
			log.Printf("[virt-serial] removed link: %s", path)
		}
	}

	log.Printf("[virt-serial] cleanup complete (%d pairs)", len(m.links)/2)
}
