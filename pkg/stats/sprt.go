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

package stats

import "math"

// Hypothesis is the outcome of a sequential probability ratio test.
type Hypothesis int

const (
	Undecided Hypothesis = iota
	H0                   // the first player is at most Elo0 stronger
	H1                   // the first player is at least Elo1 stronger
)

func (h Hypothesis) String() string {
	switch h {
	case H0:
		return "H0 Accepted"
	case H1:
		return "H1 Accepted"
	default:
		return "Undecided"
	}
}

// SPRT configures a sequential probability ratio test between the
// hypotheses that the first player is Elo0 or Elo1 stronger, with the
// given type I and type II error rates.
type SPRT struct {
	Elo0  float64 `yaml:"elo0"`
	Elo1  float64 `yaml:"elo1"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// Bounds returns the log-likelihood ratios below which H0 and above
// which H1 are accepted.
func (sprt SPRT) Bounds() (lower float64, upper float64) {
	lower = math.Log(sprt.Beta / (1 - sprt.Alpha))
	upper = math.Log((1 - sprt.Beta) / sprt.Alpha)
	return
}

// LLR returns the log-likelihood ratio of H1 against H0 for the score.
func (sprt SPRT) LLR(score Score) float64 {
	// every result is offset by half a game so that a missing result
	// does not make a probability zero
	w := float64(score.Wins) + 0.5
	d := float64(score.Draws) + 0.5
	l := float64(score.Losses) + 0.5

	N := w + d + l // total number of games
	_, dlo := wdlToElo(w/N, d/N, l/N)

	w0, d0, l0 := eloToWDL(sprt.Elo0, dlo) // elo0 WDL probabilities
	w1, d1, l1 := eloToWDL(sprt.Elo1, dlo) // elo1 WDL probabilities

	return w*math.Log(w1/w0) +
		d*math.Log(d1/d0) +
		l*math.Log(l1/l0)
}

// Decide returns the hypothesis accepted by the score, if any.
func (sprt SPRT) Decide(score Score) Hypothesis {
	lower, upper := sprt.Bounds()
	switch llr := sprt.LLR(score); {
	case llr <= lower:
		return H0
	case llr >= upper:
		return H1
	default:
		return Undecided
	}
}

// eloToWDL converts the bayesian elo to its wdl probabilities.
func eloToWDL(elo, dlo float64) (w float64, d float64, l float64) {
	w = 1 / (1 + math.Pow(10, (-elo+dlo)/400)) // win probability sigmoid
	l = 1 / (1 + math.Pow(10, (+elo+dlo)/400)) // loss probability sigmoid
	d = 1 - w - l                              // draw probability curve
	return w, d, l
}

// wdlToElo converts the wdl probabilities to its bayesian elo.
func wdlToElo(w, d, l float64) (elo float64, dlo float64) {
	elo = 200 * math.Log10((w/l)*((1-l)/(1-w)))
	dlo = 200 * math.Log10(((1-l)/l)*((1-w)/w))
	return elo, dlo
}
