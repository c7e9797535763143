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

package oracle

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// TimeControl is the clock of one side of a game.
type TimeControl struct {
	// MovesToGo is the number of moves left in the current period, or
	// -1 if the whole game is a single period.
	MovesToGo int

	Base, Inc time.Duration

	// Moves is the length of a period in moves, and Period the time
	// added to the clock at the start of every period after the first.
	Moves  int
	Period time.Duration
}

// ParseTime parses a time control of the form [moves/]time+increment,
// both time and increment in seconds, like 40/60+0.5 or 10+0.1.
func ParseTime(str string) (TimeControl, error) {
	var tc TimeControl

	movesStr, timeStr, found := strings.Cut(str, "/")
	tc.MovesToGo = -1
	var err error
	if found {
		tc.MovesToGo, err = strconv.Atoi(movesStr)
		if err != nil {
			return TimeControl{}, err
		}

		if tc.MovesToGo <= 0 {
			return TimeControl{}, errors.New("parse tc: moves per period must be positive")
		}
	} else {
		timeStr = movesStr
	}

	timeStr, incStr, found := strings.Cut(timeStr, "+")
	if !found {
		return TimeControl{}, errors.New("parse tc: increment not found")
	}

	incs, err := strconv.ParseFloat(incStr, 64)
	if err != nil {
		return TimeControl{}, err
	}

	secs, err := strconv.ParseFloat(timeStr, 64)
	if err != nil {
		return TimeControl{}, err
	}

	tc.Inc = time.Millisecond * time.Duration(incs*1000)
	tc.Base = time.Millisecond * time.Duration(secs*1000)
	if tc.MovesToGo > 0 {
		tc.Moves = tc.MovesToGo
		tc.Period = tc.Base
	}

	return tc, nil
}

// Spend deducts the time spent on a move from the clock and adds the
// increment, starting a new period once the current one is over. It
// reports whether the flag fell.
func (tc *TimeControl) Spend(spent time.Duration) bool {
	tc.Base -= spent
	if tc.Base < 0 {
		return true
	}

	tc.Base += tc.Inc

	if tc.MovesToGo > 0 {
		tc.MovesToGo--
		if tc.MovesToGo == 0 && tc.Moves > 0 {
			tc.MovesToGo = tc.Moves
			tc.Base += tc.Period
		}
	}

	return false
}
