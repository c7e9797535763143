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

package oracle

import (
	"fmt"
	"strings"
	"time"
)

// Search holds the limits of a single search. Zero fields are left out
// of the go command.
type Search struct {
	Depth    int
	Nodes    int
	MoveTime time.Duration

	// Clock is the remaining time of white and black, if the game is
	// played with clocks.
	Clock *[2]TimeControl
}

// Limits returns the search limits configured for the engine.
func (engine *Engine) Limits() Search {
	return Search{
		Depth:    engine.config.Depth,
		Nodes:    engine.config.Nodes,
		MoveTime: engine.config.MoveTime,
	}
}

// Command returns the go command for the search, side being the side to
// move as in BestMove.
func (search Search) Command(side int) string {
	cmd := "go"
	if search.Clock != nil {
		white, black := search.Clock[0], search.Clock[1]
		cmd += fmt.Sprintf(
			" wtime %d btime %d winc %d binc %d",
			white.Base.Milliseconds(), black.Base.Milliseconds(),
			white.Inc.Milliseconds(), black.Inc.Milliseconds(),
		)

		if togo := search.Clock[side].MovesToGo; togo > 0 {
			cmd += fmt.Sprintf(" movestogo %d", togo)
		}
	}

	if search.Depth > 0 {
		cmd += fmt.Sprintf(" depth %d", search.Depth)
	}

	if search.Nodes > 0 {
		cmd += fmt.Sprintf(" nodes %d", search.Nodes)
	}

	if search.MoveTime > 0 {
		cmd += fmt.Sprintf(" movetime %d", search.MoveTime.Milliseconds())
	}

	if cmd == "go" {
		// never send an unbounded search
		cmd += " depth 10"
	}

	return cmd
}

// timeout returns how long to wait for a bestmove from the given side.
func (search Search) timeout(side int) time.Duration {
	const margin = 5 * time.Second

	switch {
	case search.Clock != nil:
		return search.Clock[side].Base + margin
	case search.MoveTime > 0:
		return search.MoveTime + margin
	default:
		return time.Minute
	}
}

// BestMove asks the engine for its move in the position reached by
// playing the given coordinate notation moves from the given FEN, or
// from the starting position if fen is empty. side is 0 if white is to
// move and 1 otherwise.
func (engine *Engine) BestMove(fen string, moves []string, side int, search Search) (string, error) {
	position := "position startpos"
	if fen != "" {
		position = "position fen " + fen
	}

	if len(moves) > 0 {
		position += " moves " + strings.Join(moves, " ")
	}

	if err := engine.Write(position); err != nil {
		return "", err
	}

	if err := engine.Synchronize(); err != nil {
		return "", err
	}

	if err := engine.Write(search.Command(side)); err != nil {
		return "", err
	}

	line, err := engine.Await("^bestmove", search.timeout(side))
	if err != nil {
		return "", fmt.Errorf("%s: %w", engine.config.Name, err)
	}

	words := strings.Fields(line)
	if len(words) < 2 || words[1] == "(none)" || words[1] == "0000" {
		return "", ErrNoMove
	}

	return words[1], nil
}
