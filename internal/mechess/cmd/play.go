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
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mechess/pkg/board/piece"
	"laptudirm.com/x/mechess/pkg/game"
	"laptudirm.com/x/mechess/pkg/session"
)

func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against an engine on the board",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game between you and a UCI engine on the
			physical board. Your moves are typed in when prompted, in
			standard algebraic notation (Nf3), coordinate notation
			(g1f3) or long algebraic notation (Ng1-f3), and the
			engine's replies are carried out by the board.

			An invalid move is explained and the head of the board is
			sent back to rest before you are asked for a move again.
			Type quit or resign to leave the game.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			color, _ := cmd.Flags().GetString("color")
			var human piece.Color
			switch color {
			case "white", "w":
				human = piece.White
			case "black", "b":
				human = piece.Black
			default:
				return fmt.Errorf("invalid color %q", color)
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			board, closeBoard, err := openBoard(cfg, dryRun)
			if err != nil {
				return err
			}
			defer closeBoard()

			s := session.New(board, cfg.Link.Retries)
			s.Out = os.Stdout

			if fen, _ := cmd.Flags().GetString("fen"); fen != "" {
				if s.Game, err = game.FromFEN(fen); err != nil {
					return err
				}
				s.StartFEN = fen
			}

			var engine session.Oracle
			if both, _ := cmd.Flags().GetBool("both"); !both {
				name, _ := cmd.Flags().GetString("engine")
				oracle, err := startEngine(cfg, name)
				if err != nil {
					return err
				}
				defer killEngine(oracle)

				engine = oracle
			}

			if err := s.Home(); err != nil {
				return err
			}

			_, err = s.Human(engine, human, os.Stdin)
			if errors.Is(err, session.ErrQuit) {
				logrus.Info("Game abandoned")
				return nil
			}

			return err
		},
	}

	cmd.Flags().StringP("engine", "e", "", "Engine to play against")
	cmd.Flags().String("color", "white", "Color you play with")
	cmd.Flags().String("fen", "", "Position to start the game from")
	cmd.Flags().String("port", "", "Serial port of the board")
	cmd.Flags().Bool("both", false, "Play both sides yourself")
	cmd.Flags().Bool("dry-run", false, "Don't send moves to the board")

	return cmd
}
