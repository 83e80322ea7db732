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
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// reader closes both the decompressor and the underlying file.
type reader struct {
	io.ReadCloser
	ctx context.Context
	f   file.File
}

func (r *reader) Close() error {
	err := r.ReadCloser.Close()
	if e := r.f.Close(r.ctx); e != nil && err == nil {
		err = e
	}
	return err
}

// Open opens path for reading. Compressed inputs (gzip, bzip2) are decompressed
// transparently. The caller must Close the result.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	rc, _ := compress.NewReader(f.Reader(ctx))
	return &reader{ReadCloser: rc, ctx: ctx, f: f}, nil
}

// IsCompressed reports whether Open would decompress path.
func IsCompressed(ctx context.Context, path string) (compressed bool, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return false, errors.E(err, "open", path)
	}
	defer file.CloseAndReport(ctx, f, &err)
	rc, compressed := compress.NewReader(f.Reader(ctx))
	if e := rc.Close(); e != nil && err == nil {
		err = e
	}
	return compressed, err
}
