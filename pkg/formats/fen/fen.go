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

// Package fen implements reading and writing of chess positions in
// Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"laptudirm.com/x/mechess/pkg/board"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

// StartFEN is the FEN string of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse parses the given FEN string into a validated position. The
// half-move clock and full-move number may be omitted.
func Parse(fen string) (board.Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 4 && len(fields) != 6 {
		return board.Board{}, fmt.Errorf("fen: expected 4 or 6 fields, got %d", len(fields))
	}

	b := board.Empty()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank, file := 7-i, 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			default:
				p := piece.FromByte(c)
				if p == piece.NoPiece || file > 7 {
					return b, fmt.Errorf("fen: invalid placement %q", rankStr)
				}

				b.Put(square.New(file, rank), p)
				file++
			}
		}

		if file != 8 {
			return b, fmt.Errorf("fen: rank %q does not have 8 files", rankStr)
		}
	}

	switch fields[1] {
	case "w":
		b.SideToMove = piece.White
	case "b":
		b.SideToMove = piece.Black
	default:
		return b, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			i := strings.IndexRune("KQkq", c)
			if i < 0 {
				return b, fmt.Errorf("fen: invalid castling rights %q", fields[2])
			}

			b.Castling |= board.WhiteKingside << i
		}
	}

	b.EnPassant = square.None
	if fields[3] != "-" {
		ep, err := square.FromString(fields[3])
		if err != nil {
			return b, fmt.Errorf("fen: invalid en-passant target: %w", err)
		}

		if !validEnPassant(&b, ep) {
			return b, fmt.Errorf("fen: impossible en-passant target %s", ep)
		}

		b.EnPassant = ep
	}

	if len(fields) == 6 {
		var err error
		if b.DrawClock, err = strconv.Atoi(fields[4]); err != nil || b.DrawClock < 0 {
			return b, fmt.Errorf("fen: invalid half-move clock %q", fields[4])
		}

		if b.FullMoves, err = strconv.Atoi(fields[5]); err != nil || b.FullMoves < 1 {
			return b, fmt.Errorf("fen: invalid full-move number %q", fields[5])
		}
	}

	if err := b.Validate(); err != nil {
		return b, err
	}

	return b, nil
}

// validEnPassant reports whether target could be the square skipped by
// the opponent's last double push: it and the pawn's origin are empty
// and the pawn stands just beyond it.
func validEnPassant(b *board.Board, target square.Square) bool {
	them := b.SideToMove.Other()

	rank, dir := 5, -1
	if b.SideToMove == piece.Black {
		rank, dir = 2, 1
	}

	if target.Rank() != rank {
		return false
	}

	origin := target.Offset(0, -dir)
	pawn := target.Offset(0, dir)
	return b.PieceAt(target) == piece.NoPiece &&
		b.PieceAt(origin) == piece.NoPiece &&
		b.PieceAt(pawn).Is(piece.Pawn, them)
}

// String converts the given position into a FEN string.
func String(b *board.Board) string {
	var placement strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceAt(square.New(file, rank))
			if p == piece.NoPiece {
				empty++
				continue
			}

			if empty > 0 {
				placement.WriteByte('0' + byte(empty))
				empty = 0
			}

			placement.WriteByte(p.Byte())
		}

		if empty > 0 {
			placement.WriteByte('0' + byte(empty))
		}

		if rank > 0 {
			placement.WriteByte('/')
		}
	}

	side := "w"
	if b.SideToMove == piece.Black {
		side = "b"
	}

	return fmt.Sprintf(
		"%s %s %s %s %d %d",
		placement.String(), side, b.Castling, b.EnPassant,
		b.DrawClock, b.FullMoves,
	)
}
