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

package board

import (
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

// Castling is the set of castling rights still available in a position.
type Castling uint8

// constants representing castling rights
const (
	WhiteKingside Castling = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	CastleNone Castling = 0
	CastleAll           = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Kingside returns the kingside right of the given color.
func Kingside(c piece.Color) Castling {
	return WhiteKingside << (2 * c)
}

// Queenside returns the queenside right of the given color.
func Queenside(c piece.Color) Castling {
	return WhiteQueenside << (2 * c)
}

// String returns the FEN representation of the rights.
func (c Castling) String() string {
	if c == CastleNone {
		return "-"
	}

	str := ""
	for i, letter := range "KQkq" {
		if c&(1<<i) != 0 {
			str += string(letter)
		}
	}

	return str
}

// rightsLost maps each square to the rights lost when a piece moves from
// or to it.
var rightsLost = func() (lost [square.N]Castling) {
	lost[square.E1] = WhiteKingside | WhiteQueenside
	lost[square.H1] = WhiteKingside
	lost[square.A1] = WhiteQueenside
	lost[square.E8] = BlackKingside | BlackQueenside
	lost[square.H8] = BlackKingside
	lost[square.A8] = BlackQueenside
	return lost
}()

// castle describes the squares involved in one kind of castling.
type castle struct {
	king, rook     square.Square // starting squares
	kingTo, rookTo square.Square

	empty []square.Square // squares between king and rook
	safe  []square.Square // squares the king starts on or crosses
}

var castles = [piece.ColorN][2]castle{
	piece.White: {
		{square.E1, square.H1, square.G1, square.F1, []square.Square{square.F1, square.G1}, []square.Square{square.E1, square.F1}},
		{square.E1, square.A1, square.C1, square.D1, []square.Square{square.D1, square.C1, square.B1}, []square.Square{square.E1, square.D1}},
	},
	piece.Black: {
		{square.E8, square.H8, square.G8, square.F8, []square.Square{square.F8, square.G8}, []square.Square{square.E8, square.F8}},
		{square.E8, square.A8, square.C8, square.D8, []square.Square{square.D8, square.C8, square.B8}, []square.Square{square.E8, square.D8}},
	},
}
