package move_test

import (
	"testing"

	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

func TestString(t *testing.T) {
	tests := []struct {
		m    move.Move
		want string
	}{
		{move.New(square.E2, square.E4, move.DoublePush), "e2e4"},
		{move.New(square.E1, square.G1, move.CastleKingside), "e1g1"},
		{move.NewPromotion(square.E7, square.E8, piece.Queen), "e7e8q"},
		{move.NewPromotion(square.B2, square.A1, piece.Knight), "b2a1n"},
		{move.Null, "0000"},
	}

	for _, test := range tests {
		if got := test.m.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestLess(t *testing.T) {
	ordered := []move.Move{
		move.New(square.A2, square.A3, move.Normal),
		move.New(square.A2, square.A4, move.DoublePush),
		move.NewPromotion(square.B7, square.B8, piece.Knight),
		move.NewPromotion(square.B7, square.B8, piece.Queen),
		move.New(square.C1, square.D2, move.Normal),
	}

	for i := 1; i < len(ordered); i++ {
		if !ordered[i-1].Less(ordered[i]) || ordered[i].Less(ordered[i-1]) {
			t.Errorf("%s and %s are misordered", ordered[i-1], ordered[i])
		}
	}
}
