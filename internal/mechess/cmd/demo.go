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
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mechess/pkg/session"
)

func Demo() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Let two engines play each other on the board",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`demo lets two UCI engines play a game against each other
			on the physical board, which carries out every move once it
			has been checked to be legal.

			The engines are named by the --white and --black flags, and
			default to the first engine in the configuration. If an
			opening book is configured, the game starts from its first
			line. The game is stopped after --plies plies, if positive.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			board, closeBoard, err := openBoard(cfg, dryRun)
			if err != nil {
				return err
			}
			defer closeBoard()

			var demo session.Demo
			for i, flag := range []string{"white", "black"} {
				name, _ := cmd.Flags().GetString(flag)
				engine, err := startEngine(cfg, name)
				if err != nil {
					return err
				}
				defer killEngine(engine)

				demo.Engines[i] = engine
			}

			demo.MaxPlies, _ = cmd.Flags().GetInt("plies")

			white, _ := cmd.Flags().GetString("white")
			engineConfig, _ := cfg.Engine(white)
			tc, _ := cmd.Flags().GetString("tc")
			if demo.Clock, err = clock(tc, engineConfig); err != nil {
				return err
			}

			s := session.New(board, cfg.Link.Retries)
			s.Out = os.Stdout

			if err := s.Home(); err != nil {
				return err
			}

			openings, err := book(cfg)
			if err != nil {
				return err
			}

			if openings != nil {
				for _, mov := range openings.Moves() {
					if err := s.Play(mov); err != nil {
						return err
					}
				}
			}

			result, err := s.Demo(demo)
			if errors.Is(err, session.ErrPlyLimit) {
				logrus.Info("Ply limit reached")
				return nil
			}

			var forfeit *session.Forfeit
			if errors.As(err, &forfeit) {
				logrus.WithField("loser", forfeit.Loser).Warn(forfeit.Err)
				return nil
			}

			if err != nil {
				return err
			}

			logrus.WithField("result", result.String()).Info(result.Description())
			return nil
		},
	}

	cmd.Flags().String("white", "", "Engine playing white")
	cmd.Flags().String("black", "", "Engine playing black")
	cmd.Flags().Int("plies", 0, "Maximum number of plies to play")
	cmd.Flags().String("tc", "", "Time control, like 40/60+0.5")
	cmd.Flags().String("port", "", "Serial port of the board")
	cmd.Flags().Bool("dry-run", false, "Don't send moves to the board")

	return cmd
}
