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

// Package actuator implements the host side of the protocol spoken with
// the motor controller of the board. The protocol is half-duplex: every
// command is acknowledged by a single byte once the controller is done
// moving, and the controller can't queue commands, so a command is only
// sent once the previous one has been acknowledged or has timed out.
package actuator

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Coordinator sends commands over a Link and waits for them to be
// acknowledged. It is safe for concurrent use, but commands are always
// sent one at a time.
type Coordinator struct {
	link    Link
	frame   Frame
	timeout time.Duration

	mu sync.Mutex
}

// New creates a new Coordinator speaking over the given link.
func New(link Link, config Config) *Coordinator {
	return &Coordinator{
		link:    link,
		frame:   config.Frame,
		timeout: config.AckTimeout,
	}
}

// SendMove sends the given coordinate notation move to the controller
// and waits for it to be acknowledged.
func (c *Coordinator) SendMove(coordinate string) error {
	frame, err := c.frame.Move(coordinate)
	if err != nil {
		return err
	}

	return c.send(frame)
}

// SendReset tells the controller to park its head off the board and
// waits for it to be acknowledged.
func (c *Coordinator) SendReset() error {
	return c.send(c.frame.Home())
}

// SendRaw sends the given frame unchanged and waits for it to be
// acknowledged. It is meant for exercising the controller by hand.
func (c *Coordinator) SendRaw(frame string) error {
	if frame == "" {
		return fmt.Errorf("%w: empty frame", ErrInvalidFrame)
	}

	return c.send([]byte(frame))
}

// Close closes the underlying link.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.link.Close()
}

func (c *Coordinator) send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	command := string(frame)

	// An acknowledgment which arrived after its command timed out must
	// not be credited to this command.
	if err := c.link.ResetInputBuffer(); err != nil {
		return &Error{Command: command, Kind: ErrLinkClosed, Cause: err}
	}

	logrus.WithField("frame", command).Debug("Sending command")
	if _, err := c.link.Write(frame); err != nil {
		return &Error{Command: command, Kind: ErrLinkClosed, Cause: err}
	}

	start := time.Now()
	ack, err := c.await(command, start)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"frame":  command,
			"waited": time.Since(start),
		}).Warn(err)
		return err
	}

	logrus.WithFields(logrus.Fields{
		"frame": command,
		"ack":   string(ack),
		"took":  time.Since(start),
	}).Debug("Command acknowledged")
	return nil
}

// await waits for a single acknowledgment byte until the timeout runs
// out, starting from the given time.
func (c *Coordinator) await(command string, start time.Time) (byte, error) {
	deadline := start.Add(c.timeout)
	buffer := make([]byte, 1)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, &Error{Command: command, Waited: time.Since(start), Kind: ErrTimeout}
		}

		if err := c.link.SetReadTimeout(remaining); err != nil {
			return 0, &Error{Command: command, Waited: time.Since(start), Kind: ErrLinkClosed, Cause: err}
		}

		n, err := c.link.Read(buffer)
		switch {
		case n == 1:
			return buffer[0], nil
		case err != nil:
			return 0, &Error{Command: command, Waited: time.Since(start), Kind: ErrLinkClosed, Cause: err}
		}

		// read timed out, try again until the deadline
	}
}
