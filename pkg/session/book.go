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
	"math/rand"
	"os"
	"strings"

	"laptudirm.com/x/mechess/pkg/game"
)

// BookConfig selects an opening book file and the order in which its
// lines are played. Order is either "random" or "sequential".
type BookConfig struct {
	File  string `yaml:"file"`
	Order string `yaml:"order"`
}

// NewBook reads an opening book. Every non-empty line of the file is an
// opening: a sequence of moves in any notation, optionally numbered,
// like "1. e4 e5 2. Nf3".
func NewBook(config BookConfig) (*Book, error) {
	var book Book
	file, err := os.ReadFile(config.File)
	if err != nil {
		return nil, err
	}

	for _, entry := range strings.Split(string(file), "\n") {
		entry = strings.Trim(entry, "\n\r\t ")
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}

		book.entries = append(book.entries, entry)
	}
	book.strategy = config.Order

	return &book, nil
}

type Book struct {
	entries  []string
	strategy string
	current  int
	played   int
}

// Next moves on to the next opening of the book. The first call selects
// the first opening unless the order is random.
func (book *Book) Next() {
	if len(book.entries) == 0 {
		return
	}

	switch book.strategy {
	case "random":
		book.current = rand.Int() % len(book.entries)
	default:
		book.current = book.played % len(book.entries)
	}

	book.played++
}

func (book *Book) Current() string {
	if len(book.entries) == 0 {
		return ""
	}

	return book.entries[book.current]
}

// Moves returns the moves of the current opening, without move numbers.
func (book *Book) Moves() []string {
	var moves []string
	for _, token := range strings.Fields(book.Current()) {
		// strip move numbers like "1." or "1...", even if glued to a move
		if i := strings.LastIndexByte(token, '.'); i >= 0 {
			token = token[i+1:]
		}

		switch token {
		case "", "*", "1-0", "0-1", "1/2-1/2":
		default:
			moves = append(moves, token)
		}
	}

	return moves
}

// Play plays the current opening on the given game.
func (book *Book) Play(g *game.Game) error {
	for _, mov := range book.Moves() {
		if err := g.Apply(mov); err != nil {
			return err
		}
	}

	return nil
}
