package core

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"IrCar/internal/model"
)

// System manages the lifecycle of the configured nodes. It loads the
// YAML configuration and constructs a Car and/or Remote accordingly;
// either section may be absent when a machine runs a single role.
type System struct {
	cfgPath string
	cfg     *model.Config

	Car    *Car
	Remote *Remote

	started   bool
	startLock sync.Mutex
}

// NewSystem reads the YAML configuration at cfgPath and constructs the
// configured nodes.
func NewSystem(cfgPath string) (*System, error) {
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	var cfg model.Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	s := &System{cfgPath: cfgPath, cfg: &cfg}

	if cfg.Receiver != nil {
		car, err := NewCar(*cfg.Receiver)
		if err != nil {
			return nil, err
		}
		s.Car = car
	}
	if cfg.Transmitter != nil {
		remote, err := NewRemote(*cfg.Transmitter)
		if err != nil {
			if s.Car != nil {
				s.Car.Stop()
			}
			return nil, err
		}
		s.Remote = remote
	}
	return s, nil
}

// StartAll starts the configured nodes.
func (s *System) StartAll() error {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if s.started {
		return nil
	}
	if s.Car != nil {
		if err := s.Car.Start(); err != nil {
			log.Printf("car start err: %v", err)
		}
	}
	if s.Remote != nil {
		if err := s.Remote.Start(); err != nil {
			log.Printf("remote start err: %v", err)
		}
	}
	s.started = true
	return nil
}

// StopAll stops all running nodes gracefully.
func (s *System) StopAll() {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if !s.started {
		return
	}
	if s.Remote != nil {
		s.Remote.Stop()
	}
	if s.Car != nil {
		s.Car.Stop()
	}
	s.started = false
}
