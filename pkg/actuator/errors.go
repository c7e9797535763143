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
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout is returned when the controller does not acknowledge
	// a command in time.
	ErrTimeout = errors.New("actuator: acknowledgment timeout")

	// ErrLinkClosed is returned when the serial link reports that it
	// has been closed or has otherwise failed.
	ErrLinkClosed = errors.New("actuator: link closed")

	// ErrInvalidFrame is returned when a move can't be framed.
	ErrInvalidFrame = errors.New("actuator: invalid frame")
)

// Error is the error returned by a failed command. It records which
// command failed and how long the coordinator waited for it, so that the
// caller can decide whether to retry.
type Error struct {
	Command string
	Waited  time.Duration

	Kind  error // ErrTimeout or ErrLinkClosed
	Cause error // error reported by the link, if any
}

func (err *Error) Error() string {
	msg := fmt.Sprintf("%s: command %q after %s", err.Kind, err.Command, err.Waited.Round(time.Millisecond))
	if err.Cause != nil {
		msg += ": " + err.Cause.Error()
	}

	return msg
}

// Unwrap makes errors.Is match both the kind and the cause.
func (err *Error) Unwrap() []error {
	if err.Cause == nil {
		return []error{err.Kind}
	}

	return []error{err.Kind, err.Cause}
}
