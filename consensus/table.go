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
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// TableHeader is the header line of the consensus table.
const TableHeader = "#\tA\tC\tG\tT\tN\ttotal"

// WriteTable writes t as a TSV: the header, then one row per position with
// the position, the A/C/G/T/N counts and their sum.
func WriteTable(w io.Writer, t *Tally) (err error) {
	tsvw := tsv.NewWriter(w)
	tsvw.WriteString(TableHeader)
	if err = tsvw.EndLine(); err != nil {
		return
	}
	for pos := 0; pos < t.Len(); pos++ {
		tsvw.WriteInt64(int64(pos))
		row := t.Row(pos)
		var total int64
		for _, v := range row {
			tsvw.WriteInt64(v)
			total += v
		}
		tsvw.WriteInt64(total)
		if err = tsvw.EndLine(); err != nil {
			return
		}
	}
	return tsvw.Flush()
}

// WriteTableFile writes t to path, replacing any existing file. Paths
// ending in ".gz" are gzip-compressed.
func WriteTableFile(ctx context.Context, path string, t *Tally) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "couldn't create output file:", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)

	w := dst.Writer(ctx)
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(w)
		defer func() {
			if e := gz.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = gz
	}
	if err = WriteTable(w, t); err != nil {
		return errors.E(err, "error writing to output file:", path)
	}
	return nil
}
