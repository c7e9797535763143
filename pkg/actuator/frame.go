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

package actuator

import (
	"fmt"
	"regexp"
)

// Frame describes the layout of the commands understood by the board
// controller. A move command is Prefix followed by the move in
// coordinate notation; a reset command is Prefix followed by Reset,
// an off-board coordinate pair which tells the controller to park its
// head without moving any piece.
type Frame struct {
	Prefix string `yaml:"prefix"`
	Reset  string `yaml:"reset"`

	// Promotion appends the promotion letter to promoting moves. The
	// stock firmware reads exactly four coordinate characters, so this
	// is off by default.
	Promotion bool `yaml:"promotion"`
}

// DefaultFrame is the framing of the stock firmware: "m" + "e2e4" for
// moves and "mx9x9" for resets.
var DefaultFrame = Frame{
	Prefix: "m",
	Reset:  "x9x9",
}

var coordinateRegexp = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][nbrq]?$`)

// Move frames the given coordinate notation move.
func (frame Frame) Move(coordinate string) ([]byte, error) {
	if !coordinateRegexp.MatchString(coordinate) {
		return nil, fmt.Errorf("%w: %q is not a coordinate move", ErrInvalidFrame, coordinate)
	}

	if !frame.Promotion {
		coordinate = coordinate[:4]
	}

	return []byte(frame.Prefix + coordinate), nil
}

// Home frames the reset command.
func (frame Frame) Home() []byte {
	return []byte(frame.Prefix + frame.Reset)
}
