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

package seqio

import (
	"io"

	"github.com/grailbio/consensus/encoding/fasta"
	"github.com/grailbio/consensus/encoding/fastq"
)

// Scanner iterates the records of a sequence file in file order. It is
// single-pass; reopen the file to iterate again.
type Scanner interface {
	// Scan advances to the next record. It returns false at the end of the
	// stream or on error.
	Scan() bool
	// Seq returns the current record's sequence body. It is empty for a
	// record whose body could not be read. The slice is only valid until
	// the next call to Scan.
	Seq() []byte
	// Malformed reports whether the current record's body could not be read.
	Malformed() bool
	// Err returns the first stream-level error, if any.
	Err() error
}

// NewScanner returns a Scanner for records of the given format read from
// r. FASTQ records with broken framing are reported as malformed rather than
// stopping the scan.
func NewScanner(r io.Reader, format Format) Scanner {
	switch format {
	case FASTA:
		return &fastaScanner{s: fasta.NewScanner(r)}
	case FASTQ:
		return &fastqScanner{s: fastq.NewScanner(r, fastq.Seq, fastq.OptLenient)}
	}
	panic(format)
}

type fastaScanner struct {
	s   *fasta.Scanner
	rec fasta.Record
}

func (f *fastaScanner) Scan() bool      { return f.s.Scan(&f.rec) }
func (f *fastaScanner) Seq() []byte     { return f.rec.Seq }
func (f *fastaScanner) Malformed() bool { return false }
func (f *fastaScanner) Err() error      { return f.s.Err() }

type fastqScanner struct {
	s    *fastq.Scanner
	read fastq.Read
}

func (f *fastqScanner) Scan() bool      { return f.s.Scan(&f.read) }
func (f *fastqScanner) Seq() []byte     { return f.read.Seq }
func (f *fastqScanner) Malformed() bool { return f.read.Malformed }
func (f *fastqScanner) Err() error      { return f.s.Err() }
