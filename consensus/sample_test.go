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
	"math"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestInclusionProbability(t *testing.T) {
	p, err := InclusionProbability(10, 40)
	expect.NoError(t, err)
	expect.EQ(t, p, 0.25)

	// Not clamped.
	p, err = InclusionProbability(100000, 4)
	expect.NoError(t, err)
	expect.EQ(t, p, 25000.0)

	_, err = InclusionProbability(10, 0)
	expect.True(t, errors.Is(errors.Precondition, err))
	require.Contains(t, err.Error(), "empty input")

	_, err = InclusionProbability(-1, 10)
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestSamplerIncludesAllAtProbabilityOne(t *testing.T) {
	for _, prob := range []float64{1, 1.5, 25000} {
		for seed := int64(0); seed < 5; seed++ {
			s := NewSampler(prob, seed)
			for i := 0; i < 10000; i++ {
				if !s.Include() {
					t.Fatalf("prob %v seed %d: record %d skipped", prob, seed, i)
				}
			}
		}
	}
}

func TestSamplerRate(t *testing.T) {
	const n = 100000
	for _, prob := range []float64{0, 0.01, 0.1, 0.5} {
		s := NewSampler(prob, 1)
		expect.EQ(t, s.Probability(), prob)
		var kept int
		for i := 0; i < n; i++ {
			if s.Include() {
				kept++
			}
		}
		want := prob * n
		expect.LE(t, math.Abs(float64(kept)-want), 0.1*want+1, "prob %v", prob)
	}
}

func TestSamplerDeterministic(t *testing.T) {
	a, b := NewSampler(0.3, 42), NewSampler(0.3, 42)
	for i := 0; i < 1000; i++ {
		expect.EQ(t, a.Include(), b.Include())
	}
}
