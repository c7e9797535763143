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

// Package session implements the loops which drive a game on the
// physical board: a human against an oracle, two oracles against each
// other, and series of oracle games used to calibrate them.
//
// Every loop keeps the same order of events: a move is validated by the
// game, then transmitted to the board, and the next move is only looked
// for once the board acknowledged the previous one.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mechess/pkg/actuator"
	"laptudirm.com/x/mechess/pkg/formats/notation"
	"laptudirm.com/x/mechess/pkg/game"
	"laptudirm.com/x/mechess/internal/util"
	"laptudirm.com/x/mechess/pkg/oracle"
)

// Actuator moves the pieces on the physical board.
// *actuator.Coordinator satisfies Actuator.
type Actuator interface {
	SendMove(coordinate string) error
	SendReset() error
}

// Oracle picks moves for the computer side. *oracle.Engine satisfies
// Oracle.
type Oracle interface {
	Name() string
	NewGame() error
	Limits() oracle.Search
	BestMove(fen string, moves []string, side int, search oracle.Search) (string, error)
}

// Session couples a game with the board it is played on.
type Session struct {
	Game *game.Game

	// Board may be nil, in which case moves are only validated.
	Board Actuator

	// Retries is the number of times a timed out command is resent.
	Retries int

	// StartFEN is the position the game was started from, or "" for
	// the standard starting position.
	StartFEN string

	// Out receives the debug dump of the board after every move.
	Out io.Writer
}

// New creates a new Session of a fresh game on the given board.
func New(board Actuator, retries int) *Session {
	return &Session{
		Game:    game.New(),
		Board:   board,
		Retries: retries,
		Out:     io.Discard,
	}
}

// Play validates the given move and, if it is legal, transmits it to the
// board. The move is only played on the game once the board has
// acknowledged it, so after a transport error the game still matches the
// board and the same move may be played again. A rejected move is never
// transmitted.
func (session *Session) Play(text string) error {
	m, err := session.Game.Check(text)
	if err != nil {
		return err
	}

	position := session.Game.Board()
	if err := session.transmit(notation.Format(m, &position, notation.Coordinate)); err != nil {
		return err
	}

	return session.Game.ApplyMove(m)
}

// Home parks the head of the board.
func (session *Session) Home() error {
	if session.Board == nil {
		return nil
	}

	return session.retry(session.Board.SendReset)
}

func (session *Session) transmit(coordinate string) error {
	if session.Board == nil {
		return nil
	}

	_, err := util.Busy("Moving "+coordinate, func() (struct{}, error) {
		return struct{}{}, session.retry(func() error {
			return session.Board.SendMove(coordinate)
		})
	})

	return err
}

// retry runs the given command, retrying it while it times out.
func (session *Session) retry(command func() error) error {
	for attempt := 0; ; attempt++ {
		err := command()
		if err == nil || !errors.Is(err, actuator.ErrTimeout) || attempt >= session.Retries {
			return err
		}

		logrus.WithField("attempt", attempt+1).Warn("Retrying unacknowledged command")
	}
}

// Think asks the given oracle for its move in the current position and
// plays it.
func (session *Session) Think(engine Oracle, search oracle.Search) (string, error) {
	side := int(session.Game.SideToMove())
	moves := session.Game.AllText(notation.Coordinate)

	best, err := util.Busy(engine.Name()+" is thinking", func() (string, error) {
		return engine.BestMove(session.StartFEN, moves, side, search)
	})
	if err != nil {
		return "", err
	}

	if err := session.Play(best); err != nil {
		return "", fmt.Errorf("%s played %s: %w", engine.Name(), best, err)
	}

	return session.Game.LastMove(), nil
}

// dump writes the debug dump of the game and its result to the output.
func (session *Session) dump() {
	if session.Out == nil {
		return
	}

	result := session.Game.Result()
	fmt.Fprintln(session.Out, session.Game)
	fmt.Fprintf(session.Out, "%s (%s)\n", result, result.Description())
}
