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
	"errors"
	"fmt"
)

var (
	errInvalidKings    = errors.New("board: position must have exactly one king of each color")
	errOpponentInCheck = errors.New("board: side not to move is in check")
)

// Reason describes why a candidate move was rejected.
type Reason int

// constants representing every rejection reason
const (
	NoReason Reason = iota
	Unparseable
	Ambiguous
	NoMatchingMove
	WrongPiece
	BlockedPath
	LeavesKingInCheck
	NotSideToMove
	GameOver
)

// String returns a human readable explanation of the reason.
func (reason Reason) String() string {
	switch reason {
	case NoReason:
		return "no rejection"
	case Unparseable:
		return "move notation could not be parsed"
	case Ambiguous:
		return "move notation matches more than one legal move"
	case NoMatchingMove:
		return "no legal move matches the notation"
	case WrongPiece:
		return "that piece cannot move that way"
	case BlockedPath:
		return "the path of the piece is blocked"
	case LeavesKingInCheck:
		return "the move leaves the king in check"
	case NotSideToMove:
		return "that piece does not belong to the side to move"
	case GameOver:
		return "the game is already over"
	default:
		return "unknown rejection"
	}
}

// Rejection is the error returned when a move is refused. It carries the
// Reason along with the text of the offending move.
type Rejection struct {
	Reason Reason
	Move   string
}

// Reject creates a new Rejection of the given move text.
func Reject(reason Reason, text string) *Rejection {
	return &Rejection{Reason: reason, Move: text}
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("move %q rejected: %s", r.Move, r.Reason)
}

// Is makes errors.Is match any Rejection with the same Reason.
func (r *Rejection) Is(target error) bool {
	other, ok := target.(*Rejection)
	return ok && (other.Move == "" || other.Move == r.Move) && other.Reason == r.Reason
}
