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

package util

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
)

const SPIN = 31

var working = spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond)

// StartSpinner shows the ~working~ spinner with the given message next
// to it. The spinner is hidden when tracing, since it would garble the
// trace output.
func StartSpinner(message string) {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	working.Suffix = " " + message
	working.Start()
}

// PauseSpinner hides the ~working~ spinner.
func PauseSpinner() {
	working.Stop()
}

// Busy runs the given function with the spinner shown.
func Busy[T any](message string, fn func() (T, error)) (T, error) {
	StartSpinner(message)
	defer PauseSpinner()

	return fn()
}
