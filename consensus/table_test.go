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
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

func scenarioTally(t *testing.T) *Tally {
	tally, err := NewTally(4)
	assert.NoError(t, err)
	for _, seq := range []string{"ACGT", "ACGA", "NCGT", "ACGN"} {
		tally.Add([]byte(seq))
	}
	return tally
}

const scenarioTable = "#\tA\tC\tG\tT\tN\ttotal\n" +
	"0\t3\t0\t0\t0\t1\t4\n" +
	"1\t0\t4\t0\t0\t0\t4\n" +
	"2\t0\t0\t4\t0\t0\t4\n" +
	"3\t1\t0\t0\t2\t1\t4\n"

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteTable(&buf, scenarioTally(t)))
	expect.EQ(t, buf.String(), scenarioTable)

	buf.Reset()
	empty, err := NewTally(0)
	assert.NoError(t, err)
	assert.NoError(t, WriteTable(&buf, empty))
	expect.EQ(t, buf.String(), TableHeader+"\n")
}

func TestWriteTableFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := context.Background()

	path := filepath.Join(tempDir, "table.tsv")
	assert.NoError(t, ioutil.WriteFile(path, []byte("stale contents that are longer than the table itself\n"), 0600))
	assert.NoError(t, WriteTableFile(ctx, path, scenarioTally(t)))
	data, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	expect.EQ(t, string(data), scenarioTable)

	gzPath := filepath.Join(tempDir, "table.tsv.gz")
	assert.NoError(t, WriteTableFile(ctx, gzPath, scenarioTally(t)))
	f, err := os.Open(gzPath)
	assert.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	assert.NoError(t, err)
	data, err = ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.EQ(t, string(data), scenarioTable)

	// The parent "directory" is a regular file.
	err = WriteTableFile(ctx, filepath.Join(path, "table.tsv"), scenarioTally(t))
	expect.NotNil(t, err)
}
