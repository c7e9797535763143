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
	"regexp"
	"strings"

	"laptudirm.com/x/mechess/pkg/board"
	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

var (
	// [piece] origin [-x] destination [[=]promotion]
	coordinateRegexp = regexp.MustCompile(`^([NBRQK])?([a-h][1-8])([-x])?([a-h][1-8])=?([NBRQnbrq])?$`)

	// [piece] [file] [rank] [x] destination [=promotion]
	sanRegexp = regexp.MustCompile(`^([NBRQK])?([a-h])?([1-8])?(x)?([a-h][1-8])(=?([NBRQnbrq]))?$`)
)

// Parse converts the given text into a legal move of the given position.
// Check, mate, and annotation suffixes are ignored. A promotion which
// does not name its piece is ambiguous. When the text is well formed
// but no legal move matches it, the returned *board.Rejection explains
// why.
func Parse(text string, b *board.Board) (move.Move, error) {
	token := strings.TrimSpace(text)
	token = strings.TrimSuffix(token, "e.p.")
	token = strings.TrimRight(token, "+#!? ")

	switch token {
	case "O-O", "0-0":
		return parseCastle(text, b, move.CastleKingside)
	case "O-O-O", "0-0-0":
		return parseCastle(text, b, move.CastleQueenside)
	}

	if parts := coordinateRegexp.FindStringSubmatch(token); parts != nil {
		return parseCoordinate(text, b, parts)
	}

	if parts := sanRegexp.FindStringSubmatch(token); parts != nil {
		return parseSAN(text, b, parts)
	}

	return move.Null, board.Reject(board.Unparseable, text)
}

func parseCastle(text string, b *board.Board, flag move.Flag) (move.Move, error) {
	for _, m := range b.LegalMoves() {
		if m.Flag == flag {
			return m, nil
		}
	}

	for _, m := range b.PseudoMoves() {
		if m.Flag == flag {
			return move.Null, board.Reject(board.LeavesKingInCheck, text)
		}
	}

	return move.Null, board.Reject(board.NoMatchingMove, text)
}

// filter describes the constraints a text places on a move.
type filter struct {
	moving    piece.Type // NoType if any piece may move
	from      square.Square
	file      int // -1 if unconstrained
	rank      int // -1 if unconstrained
	to        square.Square
	promotion piece.Type // NoType matches every promotion piece

	capture  bool // the text marks the move as a capture
	noCastle bool // castling is only written as O-O or O-O-O
}

func (f filter) match(m move.Move, b *board.Board) bool {
	switch {
	case m.To != f.to:
		return false
	case f.from != square.None && m.From != f.from:
		return false
	case f.file >= 0 && m.From.File() != f.file:
		return false
	case f.rank >= 0 && m.From.Rank() != f.rank:
		return false
	case f.moving != piece.NoType && b.PieceAt(m.From).Type() != f.moving:
		return false
	case f.promotion != piece.NoType && m.Promotion != f.promotion:
		return false
	case f.capture && m.Flag != move.EnPassant && b.PieceAt(m.To) == piece.NoPiece:
		return false
	case f.noCastle && (m.Flag == move.CastleKingside || m.Flag == move.CastleQueenside):
		return false
	}

	return true
}

func (f filter) find(text string, b *board.Board) (move.Move, error) {
	var found []move.Move
	for _, m := range b.LegalMoves() {
		if f.match(m, b) {
			found = append(found, m)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return move.Null, board.Reject(f.diagnose(b), text)
	default:
		return move.Null, board.Reject(board.Ambiguous, text)
	}
}

// diagnose figures out why no legal move matched the filter.
func (f filter) diagnose(b *board.Board) board.Reason {
	if f.from != square.None {
		switch p := b.PieceAt(f.from); {
		case p == piece.NoPiece:
			return board.WrongPiece
		case p.Color() != b.SideToMove:
			return board.NotSideToMove
		case f.moving != piece.NoType && p.Type() != f.moving:
			return board.WrongPiece
		}
	}

	for _, m := range b.PseudoMoves() {
		if f.match(m, b) {
			return board.LeavesKingInCheck
		}
	}

	for sq := square.Square(0); sq < square.N; sq++ {
		p := b.PieceAt(sq)
		if p == piece.NoPiece || p.Color() != b.SideToMove {
			continue
		}

		candidate := move.New(sq, f.to, move.Normal)
		if f.match(candidate, b) && b.Obstructed(sq, f.to) {
			return board.BlockedPath
		}
	}

	if f.from != square.None {
		return board.WrongPiece
	}

	return board.NoMatchingMove
}

func parseCoordinate(text string, b *board.Board, parts []string) (move.Move, error) {
	from, _ := square.FromString(parts[2])
	to, _ := square.FromString(parts[4])

	f := filter{from: from, file: -1, rank: -1, to: to, capture: parts[3] == "x"}
	if parts[1] != "" {
		f.moving = piece.TypeFromLetter(parts[1][0])
	}

	if parts[5] != "" {
		f.promotion = piece.TypeFromLetter(parts[5][0])
	}

	return f.find(text, b)
}

func parseSAN(text string, b *board.Board, parts []string) (move.Move, error) {
	to, _ := square.FromString(parts[5])

	f := filter{
		moving: piece.Pawn, from: square.None, file: -1, rank: -1, to: to,
		capture: parts[4] != "", noCastle: true,
	}
	if parts[1] != "" {
		f.moving = piece.TypeFromLetter(parts[1][0])
	}

	if parts[2] != "" {
		f.file = int(parts[2][0] - 'a')
	}

	if parts[3] != "" {
		f.rank = int(parts[3][0] - '1')
	}

	// pawns only change files when they capture
	if f.moving == piece.Pawn && f.file < 0 {
		f.file = to.File()
	}

	if parts[7] != "" {
		if f.moving != piece.Pawn {
			return move.Null, board.Reject(board.Unparseable, text)
		}

		f.promotion = piece.TypeFromLetter(parts[7][0])
	}

	return f.find(text, b)
}
