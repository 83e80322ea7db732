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

// Package seqio binds the FASTA and FASTQ codecs to files: it detects which
// of the two formats a file holds, opens it with transparent decompression,
// iterates its records, and counts them cheaply.
package seqio

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
)

// Format identifies a sequence-record file format.
type Format int

const (
	// Unknown is the zero Format.
	Unknown Format = iota
	// FASTA files hold '>'-prefixed records with possibly wrapped bodies.
	FASTA
	// FASTQ files hold four-line records starting with '@'.
	FASTQ
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "fasta"
	case FASTQ:
		return "fastq"
	}
	return "unknown"
}

// ParseFormat converts "fasta" or "fastq" (any case) to a Format. It
// returns Unknown for anything else.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "fasta", "fa":
		return FASTA
	case "fastq", "fq":
		return FASTQ
	}
	return Unknown
}

// Detect classifies a stream by its first byte: '@' is FASTQ and '>' is
// FASTA. Any other byte, or an empty stream, yields Unknown and an error.
func Detect(r io.Reader) (Format, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		if err == io.EOF {
			return Unknown, errors.E(errors.Invalid, "empty file")
		}
		return Unknown, err
	}
	switch first[0] {
	case '@':
		return FASTQ, nil
	case '>':
		return FASTA, nil
	}
	return Unknown, errors.E(errors.Invalid, "unexpected leading byte", string(first[:]))
}

// DetectPath opens path, decompressing if needed, and runs Detect on its
// first line.
func DetectPath(ctx context.Context, path string) (format Format, err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return Unknown, err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if format, err = Detect(in); err != nil {
		return Unknown, errors.E(errors.Invalid, err, "cannot determine file type of", path)
	}
	return format, nil
}
