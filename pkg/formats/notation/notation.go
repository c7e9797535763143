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

// Package notation converts chess moves to and from text. Three
// notations are supported:
//
//   - SAN: standard algebraic notation, like Nf3, exd5, e8=Q+, O-O.
//   - Coordinate: origin and destination squares, like e2e4 or e7e8q.
//     This is what UCI engines speak and what the actuator receives.
//   - Long: long algebraic notation, like Ng1-f3 or e4xd5.
//
// Parsing detects the notation by itself, and always needs the position
// the move is played from.
package notation

import "fmt"

// Notation selects the output format of Format.
type Notation int

// constants representing the supported notations
const (
	SAN Notation = iota
	Coordinate
	Long
)

// FromString parses the name of a notation. Both "an" and "uci" refer
// to the coordinate notation.
func FromString(name string) (Notation, error) {
	switch name {
	case "san", "":
		return SAN, nil
	case "an", "uci", "coordinate":
		return Coordinate, nil
	case "lan", "long":
		return Long, nil
	default:
		return SAN, fmt.Errorf("notation: unknown notation %q", name)
	}
}

// String returns the short name of the notation.
func (n Notation) String() string {
	switch n {
	case SAN:
		return "san"
	case Coordinate:
		return "an"
	case Long:
		return "lan"
	default:
		return "unknown"
	}
}
