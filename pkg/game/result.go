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

package game

import "laptudirm.com/x/mechess/pkg/board/piece"

// Outcome is the state a game is in.
type Outcome int

// constants representing every outcome
const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	Draw
)

// DrawReason describes why a game was drawn, other than by stalemate.
type DrawReason int

// constants representing every draw reason
const (
	NoDraw DrawReason = iota
	FiftyMove
	InsufficientMaterial
	ThreefoldRepetition
)

// Result represents the result of a game. Winner is only meaningful for
// a Checkmate and Reason only for a Draw.
type Result struct {
	Outcome Outcome
	Winner  piece.Color
	Reason  DrawReason
}

// IsOver reports whether no more moves can be played.
func (result Result) IsOver() bool {
	return result.Outcome != Ongoing
}

// String returns the score of the result, like "1-0".
func (result Result) String() string {
	switch result.Outcome {
	case Checkmate:
		if result.Winner == piece.White {
			return "1-0"
		}

		return "0-1"
	case Stalemate, Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Description returns a human readable explanation of the result.
func (result Result) Description() string {
	switch result.Outcome {
	case Checkmate:
		return "Checkmate, " + result.Winner.String() + " wins"
	case Stalemate:
		return "Stalemate"
	case Draw:
		switch result.Reason {
		case FiftyMove:
			return "50-move Rule"
		case InsufficientMaterial:
			return "Insufficient Material"
		case ThreefoldRepetition:
			return "Threefold Repetition"
		}
	}

	return "Ongoing"
}

// Result computes the result of the game from its current state.
func (game *Game) Result() Result {
	stm := game.board.SideToMove

	switch {
	case len(game.LegalMoves()) == 0:
		if game.board.IsInCheck(stm) {
			return Result{Outcome: Checkmate, Winner: stm.Other()}
		}

		return Result{Outcome: Stalemate}

	case game.board.DrawClock >= 100:
		return Result{Outcome: Draw, Reason: FiftyMove}
	case game.seen[game.board.Key()] >= 3:
		return Result{Outcome: Draw, Reason: ThreefoldRepetition}
	case game.board.IsInsufficientMaterial():
		return Result{Outcome: Draw, Reason: InsufficientMaterial}
	}

	return Result{Outcome: Ongoing}
}
