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

// Package move implements the move record shared by the board, the
// notation codec, and the game.
package move

import (
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

// Flag marks the special kinds of moves which need extra handling when
// they are made on a board.
type Flag uint8

// constants representing the move flags
const (
	Normal Flag = iota
	CastleKingside
	CastleQueenside
	EnPassant
	DoublePush
)

// String returns the name of the flag.
func (f Flag) String() string {
	return [...]string{"normal", "O-O", "O-O-O", "en-passant", "double-push"}[f]
}

// Move represents a single chess move. Moves are plain values and can
// be compared with ==.
type Move struct {
	From, To  square.Square
	Promotion piece.Type
	Flag      Flag
}

// Null is the zero Move, which is never legal.
var Null Move

// New creates a new Move with the given squares and flag.
func New(from, to square.Square, flag Flag) Move {
	return Move{From: from, To: to, Flag: flag}
}

// NewPromotion creates a new pawn promotion.
func NewPromotion(from, to square.Square, promotion piece.Type) Move {
	return Move{From: from, To: to, Promotion: promotion}
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag == CastleKingside || m.Flag == CastleQueenside
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != piece.NoType
}

// Less orders moves by origin square, then destination square, then
// promotion piece.
func (m Move) Less(other Move) bool {
	switch {
	case m.From != other.From:
		return m.From < other.From
	case m.To != other.To:
		return m.To < other.To
	default:
		return m.Promotion < other.Promotion
	}
}

// String returns the coordinate representation of the move, like e2e4
// or e7e8q. Castling is represented by the king's movement.
func (m Move) String() string {
	if m == Null {
		return "0000"
	}

	str := m.From.String() + m.To.String()
	if m.IsPromotion() {
		str += string(m.Promotion.Letter() + 'a' - 'A')
	}

	return str
}
