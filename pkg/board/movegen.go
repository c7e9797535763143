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
	"sort"

	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

type offset struct{ df, dr int }

var (
	knightOffsets = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = []offset{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}

	bishopRays = []offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookRays   = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	queenRays  = append(append([]offset{}, bishopRays...), rookRays...)
)

func rays(t piece.Type) []offset {
	switch t {
	case piece.Bishop:
		return bishopRays
	case piece.Rook:
		return rookRays
	case piece.Queen:
		return queenRays
	default:
		return nil
	}
}

// pawnPush returns the rank direction in which pawns of the given color
// move.
func pawnPush(c piece.Color) int {
	if c == piece.White {
		return 1
	}

	return -1
}

// LegalMoves generates every legal move for the side to move, sorted by
// origin square, destination square, and promotion piece.
func (b *Board) LegalMoves() []move.Move {
	pseudo := b.PseudoMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if b.IsLegal(m) {
			legal = append(legal, m)
		}
	}

	sort.Slice(legal, func(i, j int) bool {
		return legal[i].Less(legal[j])
	})

	return legal
}

// IsLegal reports whether the given pseudo-legal move keeps the mover's
// king out of check. The move is simulated on a copy of the board.
func (b *Board) IsLegal(m move.Move) bool {
	next := *b
	next.MakeMove(m)
	return !next.IsAttacked(next.King(b.SideToMove), next.SideToMove)
}

// PseudoMoves generates every move of the side to move which follows
// the movement rules of the pieces, without checking if the mover's
// king is left in check. Castling through or out of check is already
// excluded here.
func (b *Board) PseudoMoves() []move.Move {
	moves := make([]move.Move, 0, 64)
	for sq := square.Square(0); sq < square.N; sq++ {
		p := b.Position[sq]
		if p == piece.NoPiece || p.Color() != b.SideToMove {
			continue
		}

		switch t := p.Type(); t {
		case piece.Pawn:
			moves = b.pawnMoves(moves, sq)
		case piece.Knight:
			moves = b.stepMoves(moves, sq, knightOffsets)
		case piece.King:
			moves = b.stepMoves(moves, sq, kingOffsets)
			moves = b.castlingMoves(moves)
		default:
			moves = b.slideMoves(moves, sq, rays(t))
		}
	}

	return moves
}

func (b *Board) stepMoves(moves []move.Move, from square.Square, offsets []offset) []move.Move {
	for _, o := range offsets {
		to := from.Offset(o.df, o.dr)
		if to == square.None {
			continue
		}

		if target := b.Position[to]; target == piece.NoPiece || target.Color() != b.SideToMove {
			moves = append(moves, move.New(from, to, move.Normal))
		}
	}

	return moves
}

func (b *Board) slideMoves(moves []move.Move, from square.Square, rays []offset) []move.Move {
	for _, ray := range rays {
		for to := from.Offset(ray.df, ray.dr); to != square.None; to = to.Offset(ray.df, ray.dr) {
			target := b.Position[to]
			if target == piece.NoPiece {
				moves = append(moves, move.New(from, to, move.Normal))
				continue
			}

			if target.Color() != b.SideToMove {
				moves = append(moves, move.New(from, to, move.Normal))
			}

			break
		}
	}

	return moves
}

func (b *Board) pawnMoves(moves []move.Move, from square.Square) []move.Move {
	us := b.SideToMove
	dir := pawnPush(us)
	lastRank := 7
	startRank := 1
	if us == piece.Black {
		lastRank, startRank = 0, 6
	}

	add := func(to square.Square, flag move.Flag) {
		if to.Rank() == lastRank {
			for _, promotion := range piece.Promotions {
				moves = append(moves, move.NewPromotion(from, to, promotion))
			}
			return
		}

		moves = append(moves, move.New(from, to, flag))
	}

	if single := from.Offset(0, dir); single != square.None && b.Position[single] == piece.NoPiece {
		add(single, move.Normal)

		if double := single.Offset(0, dir); from.Rank() == startRank && b.Position[double] == piece.NoPiece {
			add(double, move.DoublePush)
		}
	}

	for _, df := range []int{-1, 1} {
		to := from.Offset(df, dir)
		switch {
		case to == square.None:
		case to == b.EnPassant && b.Position[to] == piece.NoPiece:
			add(to, move.EnPassant)
		case b.Position[to] != piece.NoPiece && b.Position[to].Color() != us:
			add(to, move.Normal)
		}
	}

	return moves
}

func (b *Board) castlingMoves(moves []move.Move) []move.Move {
	us := b.SideToMove
	for i, right := range [2]Castling{Kingside(us), Queenside(us)} {
		if b.Castling&right == 0 {
			continue
		}

		c := castles[us][i]
		if !b.Position[c.king].Is(piece.King, us) || !b.Position[c.rook].Is(piece.Rook, us) {
			continue
		}

		if !b.allEmpty(c.empty) || b.anyAttacked(c.safe, us.Other()) {
			continue
		}

		flag := move.CastleKingside
		if i == 1 {
			flag = move.CastleQueenside
		}

		moves = append(moves, move.New(c.king, c.kingTo, flag))
	}

	return moves
}

func (b *Board) allEmpty(squares []square.Square) bool {
	for _, sq := range squares {
		if b.Position[sq] != piece.NoPiece {
			return false
		}
	}

	return true
}

func (b *Board) anyAttacked(squares []square.Square, by piece.Color) bool {
	for _, sq := range squares {
		if b.IsAttacked(sq, by) {
			return true
		}
	}

	return false
}

// canCaptureEnPassant reports whether a pawn of the side to move stands
// next to the en-passant target, ready to capture it.
func (b *Board) canCaptureEnPassant() bool {
	dir := pawnPush(b.SideToMove)
	pawn := piece.New(piece.Pawn, b.SideToMove)
	for _, df := range []int{-1, 1} {
		if from := b.EnPassant.Offset(df, -dir); from != square.None && b.Position[from] == pawn {
			return true
		}
	}

	return false
}

// Obstructed reports whether the piece on from could move to to on an
// empty board but is blocked by a piece standing in between.
func (b *Board) Obstructed(from, to square.Square) bool {
	p := b.Position[from]
	switch p.Type() {
	case piece.Pawn:
		dir := pawnPush(p.Color())
		startRank := 1
		if p.Color() == piece.Black {
			startRank = 6
		}

		middle := from.Offset(0, dir)
		return from.Rank() == startRank && to == middle.Offset(0, dir) && b.Position[middle] != piece.NoPiece

	case piece.Bishop, piece.Rook, piece.Queen:
		for _, ray := range rays(p.Type()) {
			blocked := false
			for sq := from.Offset(ray.df, ray.dr); sq != square.None; sq = sq.Offset(ray.df, ray.dr) {
				if sq == to {
					return blocked
				}

				if b.Position[sq] != piece.NoPiece {
					blocked = true
				}
			}
		}
	}

	return false
}
