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

// Package piece implements the colors, types, and colored pieces of a
// game of chess.
package piece

// Color represents the color of a piece or a side.
type Color uint8

// constants representing the two colors
const (
	White Color = iota
	Black

	ColorN = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the name of the color.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "none"
	}
}

// Type represents the kind of a piece, ignoring its color.
type Type uint8

// constants representing every piece type
const (
	NoType Type = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	TypeN = 7
)

// Promotions are the types a pawn may promote to, in the order they
// are generated.
var Promotions = []Type{Queen, Rook, Bishop, Knight}

// TypeFromLetter returns the piece type represented by the given SAN
// letter, case insensitively. Pawns have no letter.
func TypeFromLetter(letter byte) Type {
	switch letter {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return NoType
	}
}

// Letter returns the uppercase letter of the piece type, as used in SAN
// and in FEN for white pieces.
func (t Type) Letter() byte {
	return " PNBRQK"[t]
}

// String returns the name of the piece type.
func (t Type) String() string {
	return [...]string{"none", "pawn", "knight", "bishop", "rook", "queen", "king"}[t]
}

// Piece represents a colored chess piece. The zero value is NoPiece.
type Piece uint8

// NoPiece represents an empty square.
const NoPiece Piece = 0

// New creates a new Piece of the given color and type.
func New(t Type, c Color) Piece {
	return Piece(uint8(c)<<3 | uint8(t))
}

// FromByte parses a piece from its FEN letter, uppercase being white.
func FromByte(letter byte) Piece {
	t := TypeFromLetter(letter)
	if t == NoType {
		return NoPiece
	}

	if letter >= 'a' {
		return New(t, Black)
	}

	return New(t, White)
}

// Type returns the type of the piece.
func (p Piece) Type() Type {
	return Type(p & 7)
}

// Color returns the color of the piece.
func (p Piece) Color() Color {
	return Color(p >> 3)
}

// Is reports whether the piece has the given type and color.
func (p Piece) Is(t Type, c Color) bool {
	return p == New(t, c)
}

// Byte returns the FEN letter of the piece, or '.' for NoPiece.
func (p Piece) Byte() byte {
	if p == NoPiece {
		return '.'
	}

	letter := p.Type().Letter()
	if p.Color() == Black {
		letter += 'a' - 'A'
	}

	return letter
}

// String returns the FEN letter of the piece as a string.
func (p Piece) String() string {
	return string(p.Byte())
}
