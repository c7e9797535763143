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
	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

// MakeMove plays the given move on the board. The move is assumed to be
// at least pseudo-legal; legality is the caller's concern.
func (b *Board) MakeMove(m move.Move) {
	us := b.SideToMove
	moving := b.Position[m.From]
	captured := b.Position[m.To]

	b.DrawClock++
	if moving.Type() == piece.Pawn || captured != piece.NoPiece {
		b.DrawClock = 0
	}

	b.Put(m.From, piece.NoPiece)
	switch {
	case m.IsPromotion():
		b.Put(m.To, piece.New(m.Promotion, us))
	default:
		b.Put(m.To, moving)
	}

	switch m.Flag {
	case move.EnPassant:
		// the captured pawn stands beside the origin, not on the target
		b.Put(square.New(m.To.File(), m.From.Rank()), piece.NoPiece)

	case move.CastleKingside, move.CastleQueenside:
		c := castles[us][0]
		if m.Flag == move.CastleQueenside {
			c = castles[us][1]
		}

		b.Put(c.rook, piece.NoPiece)
		b.Put(c.rookTo, piece.New(piece.Rook, us))
	}

	b.EnPassant = square.None
	if m.Flag == move.DoublePush {
		b.EnPassant = square.New(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	b.Castling &^= rightsLost[m.From] | rightsLost[m.To]

	if us == piece.Black {
		b.FullMoves++
	}

	b.SideToMove = us.Other()
}
