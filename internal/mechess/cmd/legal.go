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

package cmd

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mechess/pkg/formats/notation"
	"laptudirm.com/x/mechess/pkg/game"
)

func Legal() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legal [fen] [moves...]",
		Short: "Lists the legal moves of a position",
		Args:  cobra.ArbitraryArgs,
		Long: heredoc.Doc(`legal prints the legal moves of the given position, and
			the result of the game if it is over. The position is given
			as a FEN string, or "startpos", followed by any number of
			moves played from it.

			The moves are printed in the notation chosen by --notation,
			or the one in the configuration file.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			name := cfg.Notation
			if flag := cmd.Flag("notation"); flag.Changed {
				name = flag.Value.String()
			}

			n, err := notation.FromString(name)
			if err != nil {
				return err
			}

			g := game.New()
			if len(args) > 0 && args[0] != "startpos" {
				if g, err = game.FromFEN(args[0]); err != nil {
					return err
				}
			}

			if len(args) > 1 {
				for _, mov := range args[1:] {
					if err := g.Apply(mov); err != nil {
						return err
					}
				}
			}

			fmt.Println(g)

			if result := g.Result(); result.IsOver() {
				fmt.Printf("%s (%s)\n", result, result.Description())
				return nil
			}

			board := g.Board()
			var moves []string
			for _, m := range g.LegalMoves() {
				moves = append(moves, notation.Format(m, &board, n))
			}

			fmt.Printf("%d legal moves: %s\n", len(moves), strings.Join(moves, " "))
			return nil
		},
	}

	cmd.Flags().StringP("notation", "n", "", "Notation of the printed moves")
	return cmd
}
