package square_test

import (
	"testing"

	"laptudirm.com/x/mechess/pkg/board/square"
)

func TestConstants(t *testing.T) {
	tests := []struct {
		sq   square.Square
		name string
	}{
		{square.A1, "a1"},
		{square.H1, "h1"},
		{square.E2, "e2"},
		{square.E4, "e4"},
		{square.A8, "a8"},
		{square.H8, "h8"},
		{square.None, "-"},
	}

	for _, test := range tests {
		if got := test.sq.String(); got != test.name {
			t.Errorf("square %d: got %q, want %q", test.sq, got, test.name)
		}
	}
}

func TestFromString(t *testing.T) {
	for sq := square.Square(0); sq < square.N; sq++ {
		parsed, err := square.FromString(sq.String())
		if err != nil || parsed != sq {
			t.Fatalf("FromString(%q) = %v, %v", sq.String(), parsed, err)
		}
	}

	for _, invalid := range []string{"", "e", "e9", "i1", "e44", "E4"} {
		if _, err := square.FromString(invalid); err == nil {
			t.Errorf("FromString(%q) succeeded", invalid)
		}
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		from   square.Square
		df, dr int
		want   square.Square
	}{
		{square.E4, 1, 2, square.F6},
		{square.A1, -1, 0, square.None},
		{square.H8, 0, 1, square.None},
		{square.H4, 1, 0, square.None},
		{square.B1, -1, 2, square.A3},
	}

	for _, test := range tests {
		if got := test.from.Offset(test.df, test.dr); got != test.want {
			t.Errorf("%s.Offset(%d, %d) = %s, want %s", test.from, test.df, test.dr, got, test.want)
		}
	}
}

func TestIsLight(t *testing.T) {
	if square.A1.IsLight() || !square.H1.IsLight() || !square.A8.IsLight() || square.H8.IsLight() {
		t.Fatal("wrong square colors in the corners")
	}
}
