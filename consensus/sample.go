// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package consensus

import (
	"math/rand"

	"github.com/grailbio/base/errors"
)

// InclusionProbability returns maxSampled/total, the probability with which
// each record is kept so that about maxSampled of total records are
// processed. The result is not clamped: when maxSampled >= total it is at
// least 1 and every record is kept. A zero total is an "empty input" error.
func InclusionProbability(maxSampled, total int64) (float64, error) {
	if total <= 0 {
		return 0, errors.E(errors.Precondition, "empty input: no records found")
	}
	if maxSampled < 0 {
		return 0, errors.E(errors.Invalid, "negative sample size")
	}
	return float64(maxSampled) / float64(total), nil
}

// Sampler makes independent per-record inclusion decisions.
type Sampler struct {
	prob   float64
	random *rand.Rand
}

// NewSampler returns a Sampler that includes records with probability prob,
// drawing from a source seeded with seed.
func NewSampler(prob float64, seed int64) *Sampler {
	return &Sampler{prob: prob, random: rand.New(rand.NewSource(seed))}
}

// Probability returns the inclusion probability.
func (s *Sampler) Probability() float64 { return s.prob }

// Include draws from [0, 1) and reports whether the draw is <= the
// inclusion probability.
func (s *Sampler) Include() bool {
	return s.random.Float64() <= s.prob
}
