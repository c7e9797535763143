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
	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/board/square"
)

// IsInsufficientMaterial reports whether neither side has enough
// material left to deliver mate. The recognized cases are K v K, K+B v K,
// K+N v K, and K+B v K+B with both bishops on squares of the same color.
func (b *Board) IsInsufficientMaterial() bool {
	var minors []square.Square
	for sq, p := range b.Position {
		switch p.Type() {
		case piece.NoType, piece.King:
		case piece.Bishop, piece.Knight:
			minors = append(minors, square.Square(sq))
		default:
			// pawns, rooks, and queens can always mate
			return false
		}
	}

	switch len(minors) {
	case 0, 1:
		return true

	case 2:
		first, second := b.Position[minors[0]], b.Position[minors[1]]
		return first.Type() == piece.Bishop && second.Type() == piece.Bishop &&
			first.Color() != second.Color() &&
			minors[0].IsLight() == minors[1].IsLight()

	default:
		return false
	}
}
