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

// IsAttacked reports whether any piece of the given color attacks the
// given square. Attacking a missing king is an internal error, since a
// position without a king can never arise from legal play.
func (b *Board) IsAttacked(sq square.Square, by piece.Color) bool {
	if sq == square.None {
		panic("board: king missing from position")
	}

	// pawns attack diagonally forward, so look diagonally backward
	dir := pawnPush(by)
	for _, df := range []int{-1, 1} {
		if from := sq.Offset(df, -dir); from != square.None && b.Position[from].Is(piece.Pawn, by) {
			return true
		}
	}

	if b.attackedBySteps(sq, by, piece.Knight, knightOffsets) ||
		b.attackedBySteps(sq, by, piece.King, kingOffsets) {
		return true
	}

	return b.attackedBySlider(sq, by, bishopRays, piece.Bishop) ||
		b.attackedBySlider(sq, by, rookRays, piece.Rook)
}

// IsInCheck reports whether the king of the given color is attacked.
func (b *Board) IsInCheck(c piece.Color) bool {
	return b.IsAttacked(b.kings[c], c.Other())
}

func (b *Board) attackedBySteps(sq square.Square, by piece.Color, t piece.Type, offsets []offset) bool {
	attacker := piece.New(t, by)
	for _, o := range offsets {
		if from := sq.Offset(o.df, o.dr); from != square.None && b.Position[from] == attacker {
			return true
		}
	}

	return false
}

// attackedBySlider looks along the given rays for the first piece, which
// attacks if it is of the given slider type or a queen.
func (b *Board) attackedBySlider(sq square.Square, by piece.Color, rays []offset, t piece.Type) bool {
	for _, ray := range rays {
		for from := sq.Offset(ray.df, ray.dr); from != square.None; from = from.Offset(ray.df, ray.dr) {
			p := b.Position[from]
			if p == piece.NoPiece {
				continue
			}

			if p.Is(t, by) || p.Is(piece.Queen, by) {
				return true
			}

			break
		}
	}

	return false
}
