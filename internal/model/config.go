// Package model defines shared configuration structures used to
// initialize the car system, plus the status/event structures the
// receiver publishes.
package model

// Config represents the root structure loaded from configs/config.yml.
// Either node section may be omitted when a binary only runs one role.
type Config struct {
	Receiver    *ReceiverConfig    `yaml:"receiver"`
	Transmitter *TransmitterConfig `yaml:"transmitter"`
}

// ReceiverConfig defines the car-side node: serial devices, control
// timings and the status server.
type ReceiverConfig struct {
	ID        string `yaml:"id"`
	IRDev     string `yaml:"ir_device"`
	IRBaud    int    `yaml:"ir_baud"`
	MotorDev  string `yaml:"motor_device"`
	MotorBaud int    `yaml:"motor_baud"`
	SonarDev  string `yaml:"sonar_device"`
	SonarBaud int    `yaml:"sonar_baud"`

	SilenceTimeoutMs        int     `yaml:"silence_timeout_ms"`         // manual-silence watchdog
	ObstacleCheckIntervalMs int     `yaml:"obstacle_check_interval_ms"` // avoidance cadence
	ObstacleThresholdCm     float64 `yaml:"obstacle_threshold_cm"`
	PollIntervalMs          int     `yaml:"poll_interval_ms"`

	StatusAddr  string `yaml:"status_addr"`  // empty disables the status server
	JournalPath string `yaml:"journal_path"` // empty disables the event journal
}

// TransmitterConfig defines the remote-side node.
type TransmitterConfig struct {
	ID            string `yaml:"id"`
	JoystickDev   string `yaml:"joystick_device"`
	JoystickBaud  int    `yaml:"joystick_baud"`
	IRDev         string `yaml:"ir_device"`
	IRBaud        int    `yaml:"ir_baud"`
	RepeatCount   int    `yaml:"repeat_count"`    // sends per command
	RepeatGapMs   int    `yaml:"repeat_gap_ms"`   // gap between repeats
	SampleEveryMs int    `yaml:"sample_every_ms"` // joystick sampling period
	HoldRepeatMs  int    `yaml:"hold_repeat_ms"`  // resend period for a held direction
}
