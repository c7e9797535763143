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

package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mechess/pkg/board"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/game"
)

// ErrQuit is returned when the human leaves the game.
var ErrQuit = errors.New("session: game abandoned")

// Human plays a game between a human, who types moves into in, and the
// given oracle. The oracle is nil when both sides are human. Invalid
// moves are explained and asked for again.
func (session *Session) Human(engine Oracle, human piece.Color, in io.Reader) (game.Result, error) {
	scanner := bufio.NewScanner(in)

	session.dump()
	for {
		result := session.Game.Result()
		if result.IsOver() {
			logrus.WithField("result", result.String()).Info(result.Description())
			return result, nil
		}

		if engine != nil && session.Game.SideToMove() != human {
			played, err := session.Think(engine, engine.Limits())
			if err != nil {
				return result, err
			}

			fmt.Fprintf(session.Out, "%s plays %s\n", engine.Name(), played)
			session.dump()
			continue
		}

		fmt.Fprint(session.Out, "Enter move: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return result, err
			}

			return result, ErrQuit
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "quit", "resign":
			return result, ErrQuit
		}

		if err := session.Play(text); err != nil {
			var rejection *board.Rejection
			if !errors.As(err, &rejection) {
				// the move was accepted but the board failed
				return result, err
			}

			fmt.Fprintf(session.Out, "That's an invalid move! %s\n", session.Game.LastRejection().Reason)

			// the player may have moved pieces by hand, so bring the
			// head back to rest before they try again
			if err := session.Home(); err != nil {
				return result, err
			}

			continue
		}

		session.dump()
	}
}
