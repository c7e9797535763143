package piece_test

import (
	"testing"

	"laptudirm.com/x/mechess/pkg/board/piece"
)

func TestPieces(t *testing.T) {
	for c := piece.White; c < piece.ColorN; c++ {
		for ty := piece.Pawn; ty < piece.TypeN; ty++ {
			p := piece.New(ty, c)
			if p == piece.NoPiece {
				t.Fatalf("New(%s, %s) is NoPiece", ty, c)
			}

			if p.Type() != ty || p.Color() != c || !p.Is(ty, c) {
				t.Fatalf("New(%s, %s) = %s of type %s and color %s", ty, c, p, p.Type(), p.Color())
			}

			if back := piece.FromByte(p.Byte()); back != p {
				t.Fatalf("FromByte(%q) = %s, want %s", p.Byte(), back, p)
			}
		}
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		p    piece.Piece
		want byte
	}{
		{piece.New(piece.King, piece.White), 'K'},
		{piece.New(piece.Knight, piece.Black), 'n'},
		{piece.New(piece.Pawn, piece.Black), 'p'},
		{piece.NoPiece, '.'},
	}

	for _, test := range tests {
		if got := test.p.Byte(); got != test.want {
			t.Errorf("Byte() = %q, want %q", got, test.want)
		}
	}

	if piece.FromByte('x') != piece.NoPiece {
		t.Error("FromByte('x') is a piece")
	}
}

func TestOther(t *testing.T) {
	if piece.White.Other() != piece.Black || piece.Black.Other() != piece.White {
		t.Fatal("Other does not swap colors")
	}
}
