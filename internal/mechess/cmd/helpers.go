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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/mechess/pkg/actuator"
	"laptudirm.com/x/mechess/pkg/config"
	"laptudirm.com/x/mechess/internal/util"
	"laptudirm.com/x/mechess/pkg/oracle"
	"laptudirm.com/x/mechess/pkg/session"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	// the port flag, where a command has one, beats the file and the
	// environment
	if flag := cmd.Flags().Lookup("port"); flag != nil && flag.Changed {
		cfg.Link.Port = flag.Value.String()
	}

	return cfg, nil
}

// openBoard opens the coordinator of the board, or returns a nil
// Actuator if the board is not to be used. The returned function
// closes the board.
func openBoard(cfg config.Config, dryRun bool) (session.Actuator, func(), error) {
	if dryRun {
		logrus.Info("Dry run, moves are not sent to the board")
		return nil, func() {}, nil
	}

	coordinator, err := util.Busy("Connecting to "+cfg.Link.Port, func() (*actuator.Coordinator, error) {
		return actuator.Open(cfg.Link)
	})
	if err != nil {
		return nil, nil, err
	}

	return coordinator, func() {
		if err := coordinator.Close(); err != nil {
			logrus.Warn(err)
		}
	}, nil
}

// startEngine starts the named engine from the configuration.
func startEngine(cfg config.Config, name string) (*oracle.Engine, error) {
	engineConfig, err := cfg.Engine(name)
	if err != nil {
		return nil, err
	}

	return util.Busy("Starting "+engineConfig.Name, func() (*oracle.Engine, error) {
		return oracle.Start(engineConfig)
	})
}

func killEngine(engine *oracle.Engine) {
	if err := engine.Kill(); err != nil {
		logrus.WithField("engine", engine.Name()).Warn(err)
	}
}

// clock parses a time control flag, falling back to the one configured
// for the engine.
func clock(tc string, engine oracle.EngineConfig) (*oracle.TimeControl, error) {
	if tc == "" {
		tc = engine.TimeC
	}

	if tc == "" {
		return nil, nil
	}

	control, err := oracle.ParseTime(tc)
	if err != nil {
		return nil, err
	}

	return &control, nil
}

// book loads the opening book from the configuration, if one is set.
func book(cfg config.Config) (*session.Book, error) {
	if cfg.Book.File == "" {
		return nil, nil
	}

	return session.NewBook(cfg.Book)
}
