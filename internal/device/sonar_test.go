package device

import "testing"

func TestParseEcho(t *testing.T) {
	cases := []struct {
		line string
		cm   float64
		ok   bool
	}{
		{"42.5\r\n", 42.5, true},
		{"0", 0, true},
		{"  17  ", 17, true},
		{"NOECHO", 0, false},
		{"noecho", 0, false},
		{"", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		cm, ok := parseEcho(tc.line)
		if ok != tc.ok || (ok && cm != tc.cm) {
			t.Errorf("parseEcho(%q) = %v,%v, want %v,%v", tc.line, cm, ok, tc.cm, tc.ok)
		}
	}
}
