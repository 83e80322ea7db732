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


package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/consensus/consensus"
	"github.com/grailbio/consensus/seqio"
)

// now seeds sampling when -seed is not given.
var now = time.Now

type cliFlags struct {
	input        string
	output       string
	declaredType string
	bpMax        int
	seqMax       int64
	verbose      bool
	seed         int64
	counter      string
}

// newFlagSet registers the tool's flags on a private FlagSet. -v is also
// registered on flag.CommandLine by v.io/x/lib/vlog, so flag.CommandLine
// cannot be used.
func newFlagSet(name string, c *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	for _, n := range []string{"i", "input"} {
		fs.StringVar(&c.input, n, "", "Input sequence file.")
	}
	for _, n := range []string{"o", "output"} {
		fs.StringVar(&c.output, n, "", "Output file.")
	}
	for _, n := range []string{"t", "type"} {
		fs.StringVar(&c.declaredType, n, consensus.DefaultOpts.Format, "file type: fasta, fastq [ignored]")
	}
	for _, n := range []string{"b", "bp_max"} {
		fs.IntVar(&c.bpMax, n, consensus.DefaultOpts.MaxPositions, "max number of bps to process")
	}
	for _, n := range []string{"s", "seq_max"} {
		fs.Int64Var(&c.seqMax, n, consensus.DefaultOpts.MaxSampled, "max number of seqs to process")
	}
	for _, n := range []string{"v", "verbose"} {
		fs.BoolVar(&c.verbose, n, false, "Wordy")
	}
	fs.Int64Var(&c.seed, "seed", 0, "Seed for the sub-sampling random source. If unset, the current time is used")
	fs.StringVar(&c.counter, "counter", "native", "Record counter: 'native' counts in-process, 'exec' runs grep/wc on the raw file")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s -i <input sequence file> -o <output file> [OPTIONS]\n", name)
		fmt.Fprintf(fs.Output(), "Other options:\n")
		fs.PrintDefaults()
	}
	return fs
}

// opts builds the run options from the flags parsed by fs.
func (c *cliFlags) opts(fs *flag.FlagSet) (consensus.Opts, error) {
	opts := consensus.DefaultOpts
	if c.input == "" || c.output == "" {
		return opts, errors.E(errors.Invalid, "Missing input/output files")
	}
	counter, err := seqio.NewCounter(c.counter)
	if err != nil {
		return opts, err
	}
	seedSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	opts.Input = c.input
	opts.Output = c.output
	opts.Format = c.declaredType
	opts.MaxPositions = c.bpMax
	opts.MaxSampled = c.seqMax
	opts.Seed = c.seed
	if !seedSet {
		opts.Seed = now().UnixNano()
	}
	opts.Verbose = c.verbose
	opts.Progress = os.Stdout
	opts.Counter = counter
	return opts, nil
}

func main() {
	var c cliFlags
	fs := newFlagSet(os.Args[0], &c)
	// ExitOnError: a bad flag exits with status 2 after printing usage.
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 0 {
		log.Fatalf("Unexpected positional arguments %v; please check flag syntax", fs.Args())
	}
	opts, err := c.opts(fs)
	if err != nil {
		fs.Usage()
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("sampling seed %d", opts.Seed)
	if _, err := consensus.Run(context.Background(), opts); err != nil {
		log.Fatalf("%v", err)
	}
}
