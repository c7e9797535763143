package util

import (
	"strings"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"/dev/ttyUSB2", "/dev/ttyUSB10", true},
		{"/dev/ttyUSB10", "/dev/ttyUSB2", false},
		{"/dev/ttyACM0", "/dev/ttyUSB0", true},
		{"COM3", "COM3", false},
		{"COM", "COM1", true},
		{"COM1", "COM", false},
		{"x007", "x7", true},
	}

	for _, test := range tests {
		if got := NaturalLess(test.a, test.b); got != test.want {
			t.Errorf("NaturalLess(%q, %q) = %t, want %t", test.a, test.b, got, test.want)
		}
	}
}

func TestSortNatural(t *testing.T) {
	ports := []string{"/dev/ttyUSB10", "/dev/ttyACM1", "/dev/ttyUSB2", "/dev/ttyACM0"}
	SortNatural(ports)

	want := "/dev/ttyACM0 /dev/ttyACM1 /dev/ttyUSB2 /dev/ttyUSB10"
	if got := strings.Join(ports, " "); got != want {
		t.Fatalf("SortNatural = %q, want %q", got, want)
	}
}
