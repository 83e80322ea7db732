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
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/consensus/encoding/fasta"
	"github.com/grailbio/consensus/encoding/fastq"
	"v.io/x/lib/envvar"
	"v.io/x/lib/lookpath"
)

// Counter returns the number of records in a sequence file without decoding
// record bodies. FASTA files count lines starting with '>'; FASTQ files count
// lines divided by four (integer division).
type Counter interface {
	CountRecords(ctx context.Context, path string, format Format) (int64, error)
}

// NewCounter returns the Counter registered under name: "native" (or "")
// for NativeCounter and "exec" for ExecCounter.
func NewCounter(name string) (Counter, error) {
	switch name {
	case "", "native":
		return NativeCounter{}, nil
	case "exec":
		return ExecCounter{}, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown record counter %q", name))
}

// NativeCounter counts records in-process, reading the decompressed stream.
type NativeCounter struct{}

// CountRecords implements Counter.
func (NativeCounter) CountRecords(ctx context.Context, path string, format Format) (n int64, err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if e := in.Close(); e != nil && err == nil {
			err = e
		}
	}()
	switch format {
	case FASTA:
		n, err = fasta.CountRecords(in)
	case FASTQ:
		n, err = fastq.CountRecords(in)
	default:
		return 0, errors.E(errors.Invalid, path, "is invalid", format.String(), "file")
	}
	if err != nil {
		return 0, errors.E(err, "count records in", path)
	}
	return n, nil
}

// ExecCounter counts records by running "grep -c ^>" (FASTA) or "wc -l"
// (FASTQ) on the raw file. Compressed inputs are rejected.
type ExecCounter struct {
	// Env is used to look up the commands; nil means the process
	// environment.
	Env map[string]string
}

func (c ExecCounter) command(path string, format Format) ([]string, error) {
	switch format {
	case FASTA:
		return []string{"grep", "-c", "^>", path}, nil
	case FASTQ:
		return []string{"wc", "-l", path}, nil
	}
	return nil, errors.E(errors.Invalid, path, "is invalid", format.String(), "file")
}

// CountRecords implements Counter.
func (c ExecCounter) CountRecords(ctx context.Context, path string, format Format) (int64, error) {
	args, err := c.command(path, format)
	if err != nil {
		return 0, err
	}
	env := c.Env
	if env == nil {
		env = envvar.SliceToMap(os.Environ())
	}
	bin, err := lookpath.Look(env, args[0])
	if err != nil {
		return 0, errors.E(errors.NotExist, err, "look up", args[0])
	}
	compressed, err := IsCompressed(ctx, path)
	if err != nil {
		return 0, err
	}
	if compressed {
		return 0, errors.E(errors.Invalid, path, "is compressed; use the native counter")
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, errors.E(err, fmt.Sprintf("%s\n%s", strings.Join(args, " "), stderr.String()))
	}
	out := strings.Fields(stdout.String())
	if len(out) == 0 {
		return 0, errors.E(errors.Invalid, path, "is invalid", format.String(), "file")
	}
	n, err := strconv.ParseInt(out[0], 10, 64)
	if err != nil {
		return 0, errors.E(errors.Invalid, err, "parse", args[0], "output")
	}
	if format == FASTQ {
		n /= 4
	}
	return n, nil
}
