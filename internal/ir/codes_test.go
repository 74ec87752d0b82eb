package ir

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cmds := []Command{CmdForward, CmdBackward, CmdLeft, CmdRight, CmdToggleSmart}
	for _, c := range cmds {
		got, ok := Decode(Encode(c))
		if !ok {
			t.Fatalf("Decode(Encode(%s)) not ok", c)
		}
		if got != c {
			t.Fatalf("round trip %s: got %s", c, got)
		}
	}
}

func TestDecodeRejectsJunk(t *testing.T) {
	lines := []string{
		"",
		"\n",
		"hello",
		"0x",
		"0xZZ",
		"0x1234",  // well-formed but not in the command table
		"0x10046", // overflows 16 bits
		"70,70",
	}
	for _, line := range lines {
		if c, ok := Decode(line); ok {
			t.Fatalf("Decode(%q) = %s, want reject", line, c)
		}
	}
}

func TestDecodeToleratesFraming(t *testing.T) {
	for _, line := range []string{"0x0046", "0x0046\r\n", "  0x0046  ", "0X0046", "0046"} {
		c, ok := Decode(line)
		if !ok || c != CmdForward {
			t.Fatalf("Decode(%q) = %v,%v, want forward", line, c, ok)
		}
	}
}

func TestCommandCodesAreDistinct(t *testing.T) {
	seen := map[string]Command{}
	for _, c := range []Command{CmdForward, CmdBackward, CmdLeft, CmdRight, CmdToggleSmart} {
		w := Encode(c)
		if prev, dup := seen[w]; dup {
			t.Fatalf("%s and %s share wire code %s", prev, c, w)
		}
		seen[w] = c
	}
}
