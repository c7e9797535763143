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
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/game"
	"laptudirm.com/x/mechess/pkg/oracle"
	"laptudirm.com/x/mechess/pkg/stats"
)

// Series configures a series of games between two oracles, played
// without a board. It is used to find out how the strength of an oracle
// depends on its limits.
type Series struct {
	Engines  [2]Oracle
	Games    int
	MaxPlies int
	Clock    *oracle.TimeControl

	// Book, if not nil, provides the opening of every game pair.
	Book *Book

	// SPRT, if not nil, stops the series early once it accepts a
	// hypothesis at the end of a game pair.
	SPRT *stats.SPRT
}

// Run plays the series, with the engines swapping colors every game,
// and returns the score of the first engine. Games which reach the ply
// limit are scored as draws. A series may end before all its games are
// played if an SPRT is configured.
func (series Series) Run() (stats.Score, error) {
	var score stats.Score

	for number := 0; number < series.Games; number++ {
		// engine index playing white
		white := number % 2

		session := New(nil, 0)
		for _, engine := range series.Engines {
			if err := engine.NewGame(); err != nil {
				return score, err
			}
		}

		if series.Book != nil {
			if number%2 == 0 {
				series.Book.Next()
			}

			if err := series.Book.Play(session.Game); err != nil {
				return score, err
			}
		}

		logrus.Infof(
			"\x1b[33mStarting\x1b[0m Game #%d: %s vs %s",
			number+1,
			series.Engines[white].Name(),
			series.Engines[1-white].Name(),
		)

		result, err := session.Demo(Demo{
			Engines:  [2]Oracle{series.Engines[white], series.Engines[1-white]},
			MaxPlies: series.MaxPlies,
			Clock:    series.Clock,
		})

		var forfeit *Forfeit
		switch {
		case errors.As(err, &forfeit):
			logrus.Warn(err)
			tally(&score, engineOf(forfeit.Loser.Other(), white))
		case errors.Is(err, ErrPlyLimit):
			score.Draws++
		case err != nil:
			return score, err
		case result.Outcome == game.Checkmate:
			tally(&score, engineOf(result.Winner, white))
		default:
			score.Draws++
		}

		logrus.Infof(
			"\x1b[32mFinished\x1b[0m Game #%d: %s (%s), score %.1f/%d",
			number+1, result, result.Description(),
			score.Points(), score.Games(),
		)

		if series.SPRT != nil && number%2 == 1 {
			if h := series.SPRT.Decide(score); h != stats.Undecided {
				logrus.WithField("llr", fmt.Sprintf("%.2f", series.SPRT.LLR(score))).Info(h)
				break
			}
		}
	}

	return score, nil
}

// engineOf returns the index of the engine playing the given color.
func engineOf(color piece.Color, white int) int {
	if color == piece.White {
		return white
	}

	return 1 - white
}

// tally adds a win for the given engine to the first engine's score.
func tally(score *stats.Score, winner int) {
	if winner == 0 {
		score.Wins++
	} else {
		score.Losses++
	}
}

// Report writes a table of the score of the series to w, from the point
// of view of both engines.
func (series Series) Report(w io.Writer, score stats.Score) {
	mirror := stats.Score{Wins: score.Losses, Draws: score.Draws, Losses: score.Wins}

	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════╣")
	for i, score := range [2]stats.Score{score, mirror} {
		elo, margin := score.Elo()

		format := "║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n"
		if i == 0 {
			if elo >= 0 {
				format = "║ \x1b[32m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			} else {
				format = "║ \x1b[31m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			}
		}

		fmt.Fprintf(
			w, format,
			i+1, series.Engines[i].Name(),
			elo, margin,
			score.Wins, score.Losses, score.Draws,
			score.Games())
	}
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════╝")
}
