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

// Package game implements the state of a single game of chess: the
// position, the history of moves played, and the checks deciding which
// moves may be played next and when the game is over. A Game is only
// ever mutated by applying legal moves to it.
package game

import (
	"errors"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mechess/pkg/board"
	"laptudirm.com/x/mechess/pkg/board/move"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/formats/fen"
	"laptudirm.com/x/mechess/pkg/formats/notation"
)

// Game represents a game of chess in progress.
type Game struct {
	board   board.Board
	history []entry

	// number of times each position has occurred
	seen map[board.Key]int

	// legal moves of the current position, nil if not yet generated
	legal []move.Move

	rejection *board.Rejection
}

// entry is a single move of the history along with the position it was
// played from, so that it can be formatted later.
type entry struct {
	move   move.Move
	before board.Board
}

// New creates a new Game from the standard starting position.
func New() *Game {
	var game Game
	game.Reset()
	return &game
}

// FromFEN creates a new Game from the given position.
func FromFEN(fenstr string) (*Game, error) {
	position, err := fen.Parse(fenstr)
	if err != nil {
		return nil, err
	}

	game := New()
	game.setup(position)
	return game, nil
}

// Reset reinitializes the game to the standard starting position and
// clears its history.
func (game *Game) Reset() {
	game.setup(board.Start())
}

func (game *Game) setup(position board.Board) {
	game.board = position
	game.history = nil
	game.seen = map[board.Key]int{position.Key(): 1}
	game.legal = nil
	game.rejection = nil
}

// LegalMoves returns every legal move of the side to move, ordered by
// origin square, then destination square, then promotion piece.
func (game *Game) LegalMoves() []move.Move {
	if game.legal == nil {
		game.legal = game.board.LegalMoves()
	}

	return append([]move.Move(nil), game.legal...)
}

// Apply parses the given text as a move of the current position and
// plays it if it is legal. On failure the game is left untouched, and
// the returned *board.Rejection is also available from LastRejection.
func (game *Game) Apply(text string) error {
	m, err := game.Check(text)
	if err != nil {
		return err
	}

	game.commit(m)
	return nil
}

// Check parses the given text as a move of the current position and
// returns it if it is legal, without playing it. A refused move is
// recorded like one refused by Apply.
func (game *Game) Check(text string) (move.Move, error) {
	if game.Result().IsOver() {
		return move.Move{}, game.reject(board.Reject(board.GameOver, text))
	}

	m, err := notation.Parse(text, &game.board)
	if err != nil {
		var rejection *board.Rejection
		if !errors.As(err, &rejection) {
			rejection = board.Reject(board.Unparseable, text)
		}

		return move.Move{}, game.reject(rejection)
	}

	if err := game.verify(m, text); err != nil {
		return move.Move{}, err
	}

	return m, nil
}

// ApplyMove plays the given move if it is legal in the current position.
func (game *Game) ApplyMove(m move.Move) error {
	text := m.String()
	if game.Result().IsOver() {
		return game.reject(board.Reject(board.GameOver, text))
	}

	if err := game.verify(m, text); err != nil {
		return err
	}

	game.commit(m)
	return nil
}

func (game *Game) verify(m move.Move, text string) error {
	if game.isLegal(m) {
		game.rejection = nil
		return nil
	}

	// let the codec explain what is wrong with the move
	_, err := notation.Parse(m.String(), &game.board)
	var rejection *board.Rejection
	if !errors.As(err, &rejection) {
		rejection = board.Reject(board.NoMatchingMove, text)
	}

	return game.reject(rejection)
}

func (game *Game) commit(m move.Move) {
	before := game.board
	game.board.MakeMove(m)
	game.history = append(game.history, entry{move: m, before: before})
	game.seen[game.board.Key()]++
	game.legal = nil
	game.rejection = nil

	logrus.WithFields(logrus.Fields{
		"move": notation.Format(m, &before, notation.SAN),
		"ply":  len(game.history),
	}).Trace("Applied move")
}

func (game *Game) isLegal(m move.Move) bool {
	for _, legal := range game.LegalMoves() {
		if legal == m {
			return true
		}
	}

	return false
}

func (game *Game) reject(rejection *board.Rejection) error {
	game.rejection = rejection
	logrus.WithField("reason", rejection.Reason).Debug(rejection)
	return rejection
}

// LastRejection returns why the most recent move was refused, or nil if
// the most recent move was played.
func (game *Game) LastRejection() *board.Rejection {
	return game.rejection
}

// LastMove returns the SAN of the most recently played move.
func (game *Game) LastMove() string {
	return game.LastText(notation.SAN)
}

// LastText formats the most recently played move against the position
// it was played from. It returns an empty string if no move was played.
func (game *Game) LastText(n notation.Notation) string {
	if len(game.history) == 0 {
		return ""
	}

	last := game.history[len(game.history)-1]
	return notation.Format(last.move, &last.before, n)
}

// AllText formats every move played so far, in order, each against the
// position it was played from.
func (game *Game) AllText(n notation.Notation) []string {
	moves := make([]string, len(game.history))
	for i, played := range game.history {
		moves[i] = notation.Format(played.move, &played.before, n)
	}

	return moves
}

// History returns the moves played so far.
func (game *Game) History() []move.Move {
	moves := make([]move.Move, len(game.history))
	for i, played := range game.history {
		moves[i] = played.move
	}

	return moves
}

// Plys returns the number of moves played so far.
func (game *Game) Plys() int {
	return len(game.history)
}

// SideToMove returns the color of the side to move.
func (game *Game) SideToMove() piece.Color {
	return game.board.SideToMove
}

// Board returns a copy of the current position.
func (game *Game) Board() board.Board {
	return game.board
}

// FEN returns the current position as a FEN string.
func (game *Game) FEN() string {
	return fen.String(&game.board)
}

// String returns a debug dump of the current position.
func (game *Game) String() string {
	return game.board.String() + "\n" +
		game.board.SideToMove.String() + " to move\n" +
		game.FEN() + "\n"
}
