// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package board implements a chess position along with legal move
// generation for it. A Board is a plain value: copying it yields an
// independent position, which is how moves are simulated.
package board

import (
	"strings"

	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

// Board represents a single chess position.
type Board struct {
	Position [square.N]piece.Piece

	SideToMove piece.Color
	Castling   Castling
	EnPassant  square.Square

	// DrawClock is the number of half-moves since the last capture or
	// pawn move, used for the fifty-move rule.
	DrawClock int
	FullMoves int

	kings [piece.ColorN]square.Square
}

var backRank = [8]piece.Type{
	piece.Rook, piece.Knight, piece.Bishop, piece.Queen,
	piece.King, piece.Bishop, piece.Knight, piece.Rook,
}

// Start returns the standard starting position.
func Start() Board {
	var b Board
	for file := 0; file < 8; file++ {
		b.Position[square.New(file, 0)] = piece.New(backRank[file], piece.White)
		b.Position[square.New(file, 1)] = piece.New(piece.Pawn, piece.White)
		b.Position[square.New(file, 6)] = piece.New(piece.Pawn, piece.Black)
		b.Position[square.New(file, 7)] = piece.New(backRank[file], piece.Black)
	}

	b.SideToMove = piece.White
	b.Castling = CastleAll
	b.EnPassant = square.None
	b.FullMoves = 1
	b.kings = [piece.ColorN]square.Square{square.E1, square.E8}
	return b
}

// Empty returns a board with no pieces and white to move. Pieces can
// be added with Put, after which Validate should be called.
func Empty() Board {
	return Board{
		SideToMove: piece.White,
		EnPassant:  square.None,
		FullMoves:  1,
		kings:      [piece.ColorN]square.Square{square.None, square.None},
	}
}

// PieceAt returns the piece on the given square.
func (b *Board) PieceAt(sq square.Square) piece.Piece {
	return b.Position[sq]
}

// Turn returns the side to move.
func (b *Board) Turn() piece.Color {
	return b.SideToMove
}

// Put places the given piece on the given square, replacing whatever
// was there. It does not update any other state.
func (b *Board) Put(sq square.Square, p piece.Piece) {
	if old := b.Position[sq]; old.Type() == piece.King && b.kings[old.Color()] == sq {
		b.kings[old.Color()] = square.None
	}

	b.Position[sq] = p
	if p.Type() == piece.King {
		b.kings[p.Color()] = sq
	}
}

// King returns the square of the king of the given color.
func (b *Board) King(c piece.Color) square.Square {
	return b.kings[c]
}

// Validate checks that the position contains exactly one king of each
// color and that the side not to move is not in check.
func (b *Board) Validate() error {
	var count [piece.ColorN]int
	for sq, p := range b.Position {
		if p.Type() == piece.King {
			count[p.Color()]++
			b.kings[p.Color()] = square.Square(sq)
		}
	}

	if count[piece.White] != 1 || count[piece.Black] != 1 {
		return errInvalidKings
	}

	if b.IsAttacked(b.kings[b.SideToMove.Other()], b.SideToMove) {
		return errOpponentInCheck
	}

	return nil
}

// Key returns the repetition key of the position.
func (b *Board) Key() Key {
	key := Key{
		Position:   b.Position,
		SideToMove: b.SideToMove,
		Castling:   b.Castling,
		EnPassant:  square.None,
	}

	if b.EnPassant != square.None && b.canCaptureEnPassant() {
		key.EnPassant = b.EnPassant
	}

	return key
}

// Key identifies a position for the purpose of detecting repetitions.
// Two positions are the same if they have the same placement, side to
// move, castling rights, and available en-passant capture.
type Key struct {
	Position   [square.N]piece.Piece
	SideToMove piece.Color
	Castling   Castling
	EnPassant  square.Square
}

// String returns an 8x8 dump of the board from white's point of view.
func (b *Board) String() string {
	var str strings.Builder
	for rank := 7; rank >= 0; rank-- {
		str.WriteByte('1' + byte(rank))
		str.WriteByte(' ')
		for file := 0; file < 8; file++ {
			str.WriteByte(' ')
			str.WriteByte(b.Position[square.New(file, rank)].Byte())
		}
		str.WriteByte('\n')
	}

	str.WriteString("\n   a b c d e f g h\n")
	return str.String()
}
