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

package notation

import (
	"strings"

	"laptudirm.com/x/mechess/pkg/board"
	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
)

// Format renders the given legal move, played from the given position,
// in the given notation.
func Format(m move.Move, b *board.Board, n Notation) string {
	switch n {
	case Coordinate:
		return m.String()
	case Long:
		return formatLong(m, b) + suffix(m, b)
	default:
		return formatSAN(m, b) + suffix(m, b)
	}
}

func formatSAN(m move.Move, b *board.Board) string {
	switch m.Flag {
	case move.CastleKingside:
		return "O-O"
	case move.CastleQueenside:
		return "O-O-O"
	}

	var str strings.Builder
	moving := b.PieceAt(m.From).Type()
	capture := isCapture(m, b)

	if moving == piece.Pawn {
		if capture {
			str.WriteByte(m.From.FileByte())
		}
	} else {
		str.WriteByte(moving.Letter())
		str.WriteString(disambiguate(m, b, moving))
	}

	if capture {
		str.WriteByte('x')
	}

	str.WriteString(m.To.String())
	if m.IsPromotion() {
		str.WriteByte('=')
		str.WriteByte(m.Promotion.Letter())
	}

	return str.String()
}

// disambiguate returns the shortest origin qualifier which tells the
// move apart from other legal moves of the same piece type to the same
// square: the file if that is enough, else the rank, else both.
func disambiguate(m move.Move, b *board.Board, moving piece.Type) string {
	rivals, sameFile, sameRank := false, false, false
	for _, other := range b.LegalMoves() {
		if other.To != m.To || other.From == m.From || b.PieceAt(other.From).Type() != moving {
			continue
		}

		rivals = true
		sameFile = sameFile || other.From.File() == m.From.File()
		sameRank = sameRank || other.From.Rank() == m.From.Rank()
	}

	switch {
	case !rivals:
		return ""
	case !sameFile:
		return string(m.From.FileByte())
	case !sameRank:
		return string(m.From.RankByte())
	default:
		return m.From.String()
	}
}

func formatLong(m move.Move, b *board.Board) string {
	switch m.Flag {
	case move.CastleKingside:
		return "O-O"
	case move.CastleQueenside:
		return "O-O-O"
	}

	var str strings.Builder
	if moving := b.PieceAt(m.From).Type(); moving != piece.Pawn {
		str.WriteByte(moving.Letter())
	}

	str.WriteString(m.From.String())
	if isCapture(m, b) {
		str.WriteByte('x')
	} else {
		str.WriteByte('-')
	}

	str.WriteString(m.To.String())
	if m.IsPromotion() {
		str.WriteByte('=')
		str.WriteByte(m.Promotion.Letter())
	}

	return str.String()
}

// suffix returns "#" if the move mates, "+" if it checks, and "" if it
// does neither.
func suffix(m move.Move, b *board.Board) string {
	next := *b
	next.MakeMove(m)

	if !next.IsInCheck(next.SideToMove) {
		return ""
	}

	if len(next.LegalMoves()) == 0 {
		return "#"
	}

	return "+"
}

func isCapture(m move.Move, b *board.Board) bool {
	return m.Flag == move.EnPassant || b.PieceAt(m.To) != piece.NoPiece
}
