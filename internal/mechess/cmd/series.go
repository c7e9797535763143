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
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mechess/pkg/session"
	"laptudirm.com/x/mechess/pkg/stats"
)

func Series() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series engine1 engine2",
		Short: "Play a series of games between two engines",
		Args:  cobra.ExactArgs(2),
		Long: heredoc.Doc(`series plays a number of games between two configured
			engines without using the board, with the engines swapping
			colors every game, and reports the score and the estimated
			elo difference between them.

			It is meant for calibrating the engines before they are
			used on the board, for example to pick the depth of an
			engine which is a fair opponent.

			With --sprt elo0,elo1 the series stops as soon as a
			sequential probability ratio test decides whether the
			first engine is elo0 or elo1 stronger.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var series session.Series
			for i, name := range args {
				engine, err := startEngine(cfg, name)
				if err != nil {
					return err
				}
				defer killEngine(engine)

				series.Engines[i] = engine
			}

			series.Games, _ = cmd.Flags().GetInt("games")
			series.MaxPlies, _ = cmd.Flags().GetInt("plies")

			engineConfig, _ := cfg.Engine(args[0])
			tc, _ := cmd.Flags().GetString("tc")
			if series.Clock, err = clock(tc, engineConfig); err != nil {
				return err
			}

			if series.Book, err = book(cfg); err != nil {
				return err
			}

			if cmd.Flags().Changed("sprt") {
				bounds, _ := cmd.Flags().GetFloat64Slice("sprt")
				if len(bounds) != 2 {
					return fmt.Errorf("series: --sprt takes elo0,elo1")
				}

				alpha, _ := cmd.Flags().GetFloat64("alpha")
				beta, _ := cmd.Flags().GetFloat64("beta")
				series.SPRT = &stats.SPRT{
					Elo0: bounds[0], Elo1: bounds[1],
					Alpha: alpha, Beta: beta,
				}
			}

			score, err := series.Run()
			series.Report(os.Stdout, score)
			return err
		},
	}

	cmd.Flags().IntP("games", "n", 10, "Number of games to play")
	cmd.Flags().Int("plies", 400, "Plies after which a game is drawn")
	cmd.Flags().String("tc", "", "Time control, like 40/60+0.5")
	cmd.Flags().Float64Slice("sprt", nil, "Stop early once an SPRT of elo0,elo1 is decided")
	cmd.Flags().Float64("alpha", 0.05, "SPRT type I error rate")
	cmd.Flags().Float64("beta", 0.05, "SPRT type II error rate")

	return cmd
}
