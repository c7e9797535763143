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

package actuator

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// Link is the byte channel to the board controller. A Read which times
// out returns 0 bytes and a nil error. serial.Port satisfies Link.
type Link interface {
	io.ReadWriteCloser

	SetReadTimeout(timeout time.Duration) error
	ResetInputBuffer() error
}

// Config configures the serial link and the command protocol.
type Config struct {
	Port string `yaml:"port" env:"MECHESS_PORT"`
	Baud int    `yaml:"baud" env:"MECHESS_BAUD"`

	// AckTimeout bounds the wait for each acknowledgment.
	AckTimeout time.Duration `yaml:"ack-timeout" env:"MECHESS_ACK_TIMEOUT"`

	// Retries is the number of times a command which timed out is
	// resent before giving up.
	Retries int `yaml:"retries"`

	// Settle is how long to wait after opening the port, since the
	// controller resets itself when the port is opened.
	Settle time.Duration `yaml:"settle"`

	Frame Frame `yaml:"frame"`
}

// DefaultConfig is the configuration of the stock controller.
var DefaultConfig = Config{
	Port:       "/dev/ttyACM0",
	Baud:       115200,
	AckTimeout: 5 * time.Second,
	Retries:    1,
	Settle:     2 * time.Second,
	Frame:      DefaultFrame,
}

// Open opens the serial port named in the config and returns a
// Coordinator speaking over it.
func Open(config Config) (*Coordinator, error) {
	logrus.WithFields(logrus.Fields{
		"port": config.Port,
		"baud": config.Baud,
	}).Debug("Opening serial link")

	port, err := serial.Open(config.Port, &serial.Mode{
		BaudRate: config.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("actuator: opening %s: %w", config.Port, err)
	}

	if config.Settle > 0 {
		time.Sleep(config.Settle)
	}

	return New(port, config), nil
}

// Ports lists the serial ports available on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
