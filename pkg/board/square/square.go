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

// Package square implements the squares of a chessboard.
package square

import "fmt"

// Square represents a single square on the chessboard. Squares are
// indexed rank by rank starting from a1, so a1 = 0, h1 = 7, a8 = 56
// and h8 = 63.
type Square uint8

// N is the number of squares on a chessboard.
const N = 64

// None represents the absence of a square, like a missing en-passant
// target.
const None Square = N

// constants representing every square
const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 8*iota + 0, 8*iota + 1, 8*iota + 2, 8*iota + 3, 8*iota + 4, 8*iota + 5, 8*iota + 6, 8*iota + 7
	A2, B2, C2, D2, E2, F2, G2, H2
	A3, B3, C3, D3, E3, F3, G3, H3
	A4, B4, C4, D4, E4, F4, G4, H4
	A5, B5, C5, D5, E5, F5, G5, H5
	A6, B6, C6, D6, E6, F6, G6, H6
	A7, B7, C7, D7, E7, F7, G7, H7
	A8, B8, C8, D8, E8, F8, G8, H8
)

// New creates a new Square from the given 0-indexed file and rank. It
// returns None if either of them is outside the board.
func New(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return None
	}

	return Square(rank*8 + file)
}

// FromString parses a square from its algebraic representation, like
// "e4".
func FromString(id string) (Square, error) {
	if len(id) != 2 {
		return None, fmt.Errorf("square: invalid square %q", id)
	}

	file, rank := int(id[0]-'a'), int(id[1]-'1')
	sq := New(file, rank)
	if sq == None {
		return None, fmt.Errorf("square: invalid square %q", id)
	}

	return sq, nil
}

// File returns the 0-indexed file of the square, 0 being the a-file.
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the 0-indexed rank of the square, 0 being the 1st rank.
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Offset returns the square which is df files and dr ranks away from
// the given one, or None if that lies off the board.
func (sq Square) Offset(df, dr int) Square {
	return New(sq.File()+df, sq.Rank()+dr)
}

// IsLight reports whether the square is a light square.
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

// FileByte returns the file letter of the square.
func (sq Square) FileByte() byte {
	return 'a' + byte(sq.File())
}

// RankByte returns the rank digit of the square.
func (sq Square) RankByte() byte {
	return '1' + byte(sq.Rank())
}

// String converts the square into its algebraic representation.
func (sq Square) String() string {
	if sq >= None {
		return "-"
	}

	return string([]byte{sq.FileByte(), sq.RankByte()})
}
