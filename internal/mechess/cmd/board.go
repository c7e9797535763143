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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mechess/pkg/actuator"
	"laptudirm.com/x/mechess/internal/util"
)

func Reset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Send the head of the board back to rest",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			coordinator, err := actuator.Open(cfg.Link)
			if err != nil {
				return err
			}
			defer coordinator.Close()

			_, err = util.Busy("Resetting", func() (struct{}, error) {
				return struct{}{}, coordinator.SendReset()
			})
			return err
		},
	}

	cmd.Flags().String("port", "", "Serial port of the board")
	return cmd
}

func Send() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send frame...",
		Short: "Send raw frames to the board",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`send writes each of the given frames to the board as is,
			waiting for every frame to be acknowledged before sending
			the next one. Nothing is checked against a game, so the
			pieces on the board may end up out of sync.

			For example, "me2e4" moves the piece on e2 to e4 and
			"mx9x9" parks the head with the stock firmware.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			coordinator, err := actuator.Open(cfg.Link)
			if err != nil {
				return err
			}
			defer coordinator.Close()

			for _, frame := range args {
				if err := coordinator.SendRaw(frame); err != nil {
					return err
				}

				logrus.WithField("frame", frame).Info("Acknowledged")
			}

			return nil
		},
	}

	cmd.Flags().String("port", "", "Serial port of the board")
	return cmd
}

func Ports() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "Lists the available serial ports",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := actuator.Ports()
			if err != nil {
				return err
			}

			if len(ports) == 0 {
				fmt.Println("\x1b[31mNo Serial Ports Found.\x1b[0m")
				return nil
			}

			util.SortNatural(ports)

			fmt.Print("\u001B[32mSerial Ports\u001B[0m:\n\n")
			for _, port := range ports {
				fmt.Printf("- \x1b[34m%s\x1b[0m\n", port)
			}

			return nil
		},
	}
}
