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

// Package oracle implements a client for UCI chess engines, which are
// consulted for the moves of the computer side.
package oracle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineConfig describes how to run an engine and how it should search.
type EngineConfig struct {
	Name string `yaml:"name"`
	Cmd  string `yaml:"cmd"`
	Dir  string `yaml:"dir"`
	Arg  string `yaml:"arg"`

	Stderr string `yaml:"stderr"`

	InitStr string `yaml:"init-string"`

	Options map[string]string `yaml:"options"`

	TimeC    string        `yaml:"tc,omitempty"`
	Depth    int           `yaml:"depth,omitempty"`
	Nodes    int           `yaml:"nodes,omitempty"`
	MoveTime time.Duration `yaml:"movetime,omitempty"`
}

// Start starts the engine described by the config and readies it for a
// new game.
func Start(config EngineConfig) (*Engine, error) {
	var engine Engine
	process := exec.Command(config.Cmd, strings.Fields(config.Arg)...)

	engine.config = config

	process.Dir = config.Dir

	stdin, err := process.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := process.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if config.Stderr != "" {
		stderr, err := os.Create(config.Stderr)
		if err != nil {
			return nil, err
		}

		process.Stderr = stderr
		engine.stderr = stderr
	}

	engine.writer = bufio.NewWriter(stdin)
	engine.reader = bufio.NewReader(stdout)
	engine.lines = make(chan string)

	engine.Cmd = process

	if err := engine.Cmd.Start(); err != nil {
		if engine.stderr != nil {
			engine.stderr.Close()
		}

		return nil, fmt.Errorf("oracle: starting %s: %w", config.Name, err)
	}

	go engine.readLines()

	if err := engine.handshake(); err != nil {
		_ = engine.Kill()
		return nil, fmt.Errorf("oracle: starting %s: %w", config.Name, err)
	}

	return &engine, nil
}

func (engine *Engine) handshake() error {
	if engine.config.InitStr != "" {
		if err := engine.Write(engine.config.InitStr); err != nil {
			return err
		}
	}

	if err := engine.Initialize(); err != nil {
		return err
	}

	return engine.NewGame()
}

// Engine is a running UCI engine process.
type Engine struct {
	config EngineConfig

	*exec.Cmd

	writer *bufio.Writer
	reader *bufio.Reader
	stderr *os.File

	lines chan string

	err error
}

// readLines forwards every line the engine prints to the lines channel
// until the engine's output is closed.
func (engine *Engine) readLines() {
	for {
		line, err := engine.reader.ReadString('\n')
		if err != nil {
			engine.err = err
			close(engine.lines)
			return
		}

		line = strings.Trim(line, " \n\t\r")

		logrus.Tracef("info: (%s)> %s", engine.config.Name, line)
		engine.lines <- line
	}
}

// Name returns the configured name of the engine.
func (engine *Engine) Name() string {
	return engine.config.Name
}

// Initialize initializes the engine on startup and sets its options.
func (engine *Engine) Initialize() error {
	if err := engine.Write("uci"); err != nil {
		return err
	}

	if _, err := engine.Await("uciok", 5*time.Second); err != nil {
		return err
	}

	for name, value := range engine.config.Options {
		if err := engine.Write("setoption name %s value %s", name, value); err != nil {
			return err
		}
	}

	return nil
}

// NewGame prepares the engine for a new game of chess.
func (engine *Engine) NewGame() error {
	if err := engine.Write("ucinewgame"); err != nil {
		return err
	}

	return engine.Synchronize()
}

// Synchronize waits for the engine to complete some time consuming task
// and synchronizes the interface with it.
func (engine *Engine) Synchronize() error {
	if err := engine.Write("isready"); err != nil {
		return err
	}

	_, err := engine.Await("readyok", 5*time.Second)
	return err
}

// Kill kills the engine and waits for it to exit.
func (engine *Engine) Kill() error {
	// the engine may have exited already
	_ = engine.Write("quit")

	if err := engine.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}

	// the output has to be read to its end before Wait closes it
	for range engine.lines {
	}

	err := engine.Wait()
	if engine.stderr != nil {
		engine.stderr.Close()
	}

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		// killed
		return nil
	}

	return err
}

var (
	// ErrReadTimeout is returned when the engine does not answer in time.
	ErrReadTimeout = errors.New("oracle: read i/o timeout")

	// ErrNoMove is returned when the engine has no move to play.
	ErrNoMove = errors.New("oracle: engine has no move")
)

// Await is a utility function which waits for a particular string from
// the engine with a fixed timeout.
func (engine *Engine) Await(pattern string, timeout time.Duration) (string, error) {
	regex := regexp.MustCompile(pattern)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			// timer ran out: wait timeout
			return "", ErrReadTimeout

		case line, ok := <-engine.lines:
			if !ok {
				// engine closed its output
				if engine.err == io.EOF {
					return "", fmt.Errorf("oracle: %s exited", engine.config.Name)
				}

				return "", engine.err
			}

			if regex.MatchString(line) {
				// line is the expected line
				return line, nil
			}
		}
	}
}

// Write sends a formatted line to the engine.
func (engine *Engine) Write(format string, a ...any) error {
	logrus.Tracef("info: (%s)< "+format, append([]any{engine.config.Name}, a...)...)

	if _, err := fmt.Fprintf(engine.writer, format+"\n", a...); err != nil {
		return err
	}

	return engine.writer.Flush()
}
