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

// Package config loads the mechess configuration file. Values missing
// from the file keep their defaults, and the link section can be
// overridden from the environment.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/mechess/pkg/actuator"
	"laptudirm.com/x/mechess/pkg/common"
	"laptudirm.com/x/mechess/pkg/formats/notation"
	"laptudirm.com/x/mechess/pkg/oracle"
	"laptudirm.com/x/mechess/pkg/session"
)

// Config is the configuration of mechess, read from the config file.
type Config struct {
	Link    actuator.Config       `yaml:"link"`
	Engines []oracle.EngineConfig `yaml:"engines"`
	Book    session.BookConfig    `yaml:"book"`

	// Notation is the notation moves are printed in.
	Notation string `yaml:"notation"`
}

// Default returns the default configuration, which drives the stock
// controller with a single stockfish oracle.
func Default() Config {
	return Config{
		Link: actuator.DefaultConfig,
		Engines: []oracle.EngineConfig{
			{
				Name:  "stockfish",
				Cmd:   "stockfish",
				Depth: 10,
			},
		},
		Book:     session.BookConfig{Order: "sequential"},
		Notation: notation.SAN.String(),
	}
}

// Load reads the configuration file at the given path, creating it with
// the default configuration if it does not exist.
func Load(path string) (Config, error) {
	config := Default()

	data, err := yaml.Marshal(config)
	if err != nil {
		return config, err
	}

	created, err := common.TryCreate(path, data)
	if err != nil {
		return config, fmt.Errorf("config: creating %s: %w", path, err)
	}

	if created {
		logrus.WithField("path", path).Info("Created default configuration")
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return config, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := env.Parse(&config.Link); err != nil {
		return config, fmt.Errorf("config: environment: %w", err)
	}

	return config, config.Validate()
}

// Validate checks the configuration for values which can't be used.
func (config *Config) Validate() error {
	if config.Link.Baud <= 0 {
		return fmt.Errorf("config: invalid baud rate %d", config.Link.Baud)
	}

	if config.Link.AckTimeout <= 0 {
		return fmt.Errorf("config: invalid ack timeout %s", config.Link.AckTimeout)
	}

	if config.Link.Retries < 0 {
		return fmt.Errorf("config: negative retry count %d", config.Link.Retries)
	}

	if config.Link.Frame.Reset == "" {
		return fmt.Errorf("config: empty reset frame")
	}

	if _, err := notation.FromString(config.Notation); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	seen := make(map[string]bool)
	for _, engine := range config.Engines {
		if engine.Name == "" || engine.Cmd == "" {
			return fmt.Errorf("config: engine needs both a name and a cmd")
		}

		if seen[engine.Name] {
			return fmt.Errorf("config: duplicate engine %q", engine.Name)
		}

		seen[engine.Name] = true
	}

	return nil
}

// Engine returns the configuration of the engine with the given name.
// The first engine is returned for an empty name.
func (config *Config) Engine(name string) (oracle.EngineConfig, error) {
	if name == "" && len(config.Engines) > 0 {
		return config.Engines[0], nil
	}

	for _, engine := range config.Engines {
		if engine.Name == name {
			return engine, nil
		}
	}

	return oracle.EngineConfig{}, fmt.Errorf("config: unknown engine %q", name)
}

// Dump writes the configuration to w as YAML.
func (config *Config) Dump(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(config); err != nil {
		return err
	}

	return encoder.Close()
}
