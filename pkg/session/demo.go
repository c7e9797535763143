// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/mechess/pkg/actuator"
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/game"
	"laptudirm.com/x/mechess/pkg/oracle"
)

// ErrPlyLimit is returned when a demo game reaches its ply limit before
// it is decided.
var ErrPlyLimit = errors.New("session: ply limit reached")

// ErrFlagFell is returned when an oracle runs out of time.
var ErrFlagFell = errors.New("session: flag fell")

// Demo configures a game between two oracles.
type Demo struct {
	// Engines[0] plays white and Engines[1] plays black.
	Engines [2]Oracle

	// MaxPlies stops the game after so many plies, if positive.
	MaxPlies int

	// Clock gives both oracles a clock, if not nil.
	Clock *oracle.TimeControl
}

// Forfeit is the error returned when an oracle fails to produce a legal
// move in time, losing the game.
type Forfeit struct {
	Loser piece.Color
	Err   error
}

func (forfeit *Forfeit) Error() string {
	return fmt.Sprintf("%s forfeits: %v", forfeit.Loser, forfeit.Err)
}

func (forfeit *Forfeit) Unwrap() error {
	return forfeit.Err
}

// Demo plays a game between two oracles on the board until it is over,
// the ply limit is reached, or an oracle fails. A failing or flagging
// oracle forfeits the game.
func (session *Session) Demo(demo Demo) (game.Result, error) {
	var clock *[2]oracle.TimeControl
	if demo.Clock != nil {
		clock = &[2]oracle.TimeControl{*demo.Clock, *demo.Clock}
	}

	session.dump()
	for plies := 0; ; plies++ {
		result := session.Game.Result()
		if result.IsOver() {
			return result, nil
		}

		if demo.MaxPlies > 0 && plies >= demo.MaxPlies {
			return result, ErrPlyLimit
		}

		side := session.Game.SideToMove()
		engine := demo.Engines[side]

		search := engine.Limits()
		search.Clock = clock

		startTime := time.Now()
		played, err := session.Think(engine, search)
		var linkErr *actuator.Error
		switch {
		case errors.As(err, &linkErr):
			// the board failed, not the oracle
			return result, err
		case err != nil:
			return result, &Forfeit{Loser: side, Err: err}
		}

		if clock != nil && clock[side].Spend(time.Since(startTime)) {
			return result, &Forfeit{Loser: side, Err: fmt.Errorf("%s: %w", engine.Name(), ErrFlagFell)}
		}

		logrus.WithFields(logrus.Fields{
			"engine": engine.Name(),
			"move":   played,
		}).Info("Oracle moved")
		session.dump()
	}
}
