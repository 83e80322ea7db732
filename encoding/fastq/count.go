package fastq

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const countBufSize = 1 << 20

// CountLines returns the number of lines in r. A final line without a
// trailing newline is counted.
func CountLines(r io.Reader) (int64, error) {
	var (
		buf   = make([]byte, countBufSize)
		n     int64
		last  byte = '\n'
		total int64
	)
	for {
		nRead, err := r.Read(buf)
		if nRead > 0 {
			n += int64(bytes.Count(buf[:nRead], newline))
			last = buf[nRead-1]
			total += int64(nRead)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrap(err, "couldn't count FASTQ lines")
		}
	}
	if total > 0 && last != '\n' {
		n++
	}
	return n, nil
}

// CountRecords returns the number of reads in r, computed as the line count
// divided by four. Bodies are not parsed; a trailing partial record is
// dropped by the integer division.
func CountRecords(r io.Reader) (int64, error) {
	n, err := CountLines(r)
	if err != nil {
		return 0, err
	}
	return n / linesPerRead, nil
}

var newline = []byte{'\n'}
