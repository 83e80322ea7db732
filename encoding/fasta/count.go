package fasta

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const countBufSize = 1 << 20

// CountRecords returns the number of lines in r whose first character is
// '>'. Sequence lines are skipped without being parsed.
func CountRecords(r io.Reader) (int64, error) {
	var (
		buf       = make([]byte, countBufSize)
		n         int64
		lineStart = true
	)
	for {
		nRead, err := r.Read(buf)
		chunk := buf[:nRead]
		for len(chunk) > 0 {
			if lineStart && chunk[0] == '>' {
				n++
			}
			i := bytes.IndexByte(chunk, '\n')
			if i < 0 {
				lineStart = false
				break
			}
			chunk = chunk[i+1:]
			lineStart = true
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, errors.Wrap(err, "couldn't count FASTA records")
		}
	}
}
