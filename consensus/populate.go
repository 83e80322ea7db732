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
	"github.com/grailbio/base/errors"
	"github.com/grailbio/consensus/seqio"
)

// PopulateStats summarizes one Populate pass.
type PopulateStats struct {
	// Seen is the number of records read.
	Seen int64
	// Processed is the number of records that passed sampling and were
	// tallied.
	Processed int64
	// Malformed is the number of processed records whose body could not be
	// read. They were tallied as empty sequences.
	Malformed int64
}

// Populate streams records from the scanner in file order. Each record
// passing the sampler has its sequence tallied into t, up to t.Len()
// positions.
func Populate(records seqio.Scanner, t *Tally, sampler *Sampler) (stats PopulateStats, err error) {
	for records.Scan() {
		stats.Seen++
		if !sampler.Include() {
			continue
		}
		stats.Processed++
		if records.Malformed() {
			stats.Malformed++
			continue
		}
		t.Add(records.Seq())
	}
	if err = records.Err(); err != nil {
		return stats, errors.E(err, "read records")
	}
	return stats, nil
}
