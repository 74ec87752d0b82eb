// Package ir defines the infrared command vocabulary shared by the
// transmitter and receiver nodes, and the newline-delimited wire codec
// used to move decoded codes over a serial link.
//
// Wire format (IR module <-> host): one code per line, e.g.
//
//	0x0046
//
// Lines that do not parse, or parse to a code outside the command
// table, are not commands and must be dropped by the reader.
package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one of the five discrete codes the remote can send.
// The values are the 16-bit codes carried on the IR link; equality
// comparison is the only operation the receiver performs on them.
type Command uint16

const (
	CmdForward     Command = 0x0046
	CmdBackward    Command = 0x0015
	CmdLeft        Command = 0x0044
	CmdRight       Command = 0x0043
	CmdToggleSmart Command = 0x0045
)

// RepeatCount and RepeatGapMs are the transmitter's send policy: every
// command goes out this many times with this gap, so a single corrupted
// burst does not lose the command.
const (
	RepeatCount = 3
	RepeatGapMs = 40
)

// String returns a short human-readable name for logs.
func (c Command) String() string {
	switch c {
	case CmdForward:
		return "forward"
	case CmdBackward:
		return "backward"
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdToggleSmart:
		return "toggle-smart"
	}
	return fmt.Sprintf("unknown(0x%04X)", uint16(c))
}

// Known reports whether c is one of the five commands in the table.
func Known(c Command) bool {
	switch c {
	case CmdForward, CmdBackward, CmdLeft, CmdRight, CmdToggleSmart:
		return true
	}
	return false
}

// Encode renders a command as a wire line (without the trailing newline).
func Encode(c Command) string {
	return fmt.Sprintf("0x%04X", uint16(c))
}

// Decode parses a wire line into a command. It returns false for empty
// lines, malformed hex and codes outside the command table.
func Decode(line string) (Command, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	c := Command(v)
	if !Known(c) {
		return 0, false
	}
	return c, true
}
