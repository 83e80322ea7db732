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

// Package consensus computes per-position nucleotide composition tables
// ("consensus tables") over FASTA and FASTQ files. For each position below a
// cap it counts how many processed records carry A, C, G, T or N there.
// Large inputs are sub-sampled so that roughly a target number of records
// is processed.
package consensus

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/consensus/seqio"
)

// Opts configures Run.
type Opts struct {
	// Input is the FASTA or FASTQ path. Compressed inputs are supported.
	Input string
	// Output is the table path. A ".gz" suffix gzips the table.
	Output string
	// Format is the declared input format. It is informational only: the
	// format is always detected from the file.
	Format string
	// MaxPositions is the number of positions tallied (table rows).
	MaxPositions int
	// MaxSampled is the target number of records to process.
	MaxSampled int64
	// Seed seeds the sampling random source.
	Seed int64
	// Verbose enables progress messages on Progress.
	Verbose bool
	// Progress receives progress messages. Defaults to os.Stdout.
	Progress io.Writer
	// Counter counts input records. Defaults to seqio.NativeCounter.
	Counter seqio.Counter
}

// DefaultOpts holds the default options.
var DefaultOpts = Opts{
	Format:       "fasta",
	MaxPositions: 100,
	MaxSampled:   100000,
}

// Result describes a completed run.
type Result struct {
	// Format is the detected input format.
	Format seqio.Format
	// Total is the pre-counted number of input records.
	Total int64
	// Probability is the per-record inclusion probability.
	Probability float64
	PopulateStats
	// Checksum is Tally.Checksum of the emitted table.
	Checksum uint64
}

func validate(ctx context.Context, opts *Opts) error {
	if opts.Input == "" || opts.Output == "" {
		return errors.E(errors.Invalid, "missing input/output files")
	}
	if _, err := file.Stat(ctx, opts.Input); err != nil {
		return errors.E(errors.NotExist, err, "input file", opts.Input)
	}
	if opts.MaxPositions < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("bp_max must be non-negative, got %d", opts.MaxPositions))
	}
	if opts.MaxSampled < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("seq_max must be non-negative, got %d", opts.MaxSampled))
	}
	return nil
}

// Run computes the consensus table of opts.Input and writes it to
// opts.Output. It detects the input format, counts the records to derive
// the sampling probability, tallies the sampled records and emits the
// table.
func Run(ctx context.Context, opts Opts) (res Result, err error) {
	if err = validate(ctx, &opts); err != nil {
		return
	}
	progress := opts.Progress
	if progress == nil {
		progress = os.Stdout
	}
	if !opts.Verbose {
		progress = ioutil.Discard
	}
	counter := opts.Counter
	if counter == nil {
		counter = seqio.NativeCounter{}
	}

	if res.Format, err = seqio.DetectPath(ctx, opts.Input); err != nil {
		return
	}
	if declared := seqio.ParseFormat(opts.Format); opts.Format != "" && declared != res.Format {
		log.Printf("consensus: %s declared as %s but detected as %s; using %s",
			opts.Input, opts.Format, res.Format, res.Format)
	}

	fmt.Fprintf(progress, "Counting sequences in %s ... ", opts.Input)
	if res.Total, err = counter.CountRecords(ctx, opts.Input, res.Format); err != nil {
		return
	}
	if res.Probability, err = InclusionProbability(opts.MaxSampled, res.Total); err != nil {
		err = errors.E(err, opts.Input)
		return
	}
	fmt.Fprintf(progress, "Done: %d seqs found, %f %% of sequences will be processed\n",
		res.Total, res.Probability*100)

	fmt.Fprintf(progress, "Populating bp matrixes ... ")
	tally, err := NewTally(opts.MaxPositions)
	if err != nil {
		return
	}
	if res.PopulateStats, err = populateFile(ctx, opts.Input, res.Format, tally, NewSampler(res.Probability, opts.Seed)); err != nil {
		return
	}
	if res.Malformed > 0 {
		log.Printf("consensus: %d unreadable records in %s tallied as empty", res.Malformed, opts.Input)
	}
	if err = WriteTableFile(ctx, opts.Output, tally); err != nil {
		return
	}
	res.Checksum = tally.Checksum()
	fmt.Fprintf(progress, "Done: %d of %d sequences processed\n", res.Processed, res.Total)
	log.Debug.Printf("consensus: %s: seen %d, processed %d, table checksum %016x",
		opts.Input, res.Seen, res.Processed, res.Checksum)
	return
}

func populateFile(ctx context.Context, path string, format seqio.Format, t *Tally, sampler *Sampler) (stats PopulateStats, err error) {
	in, err := seqio.Open(ctx, path)
	if err != nil {
		return
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	return Populate(seqio.NewScanner(in, format), t, sampler)
}
