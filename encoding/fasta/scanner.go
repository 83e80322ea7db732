// Package fasta contains streaming readers for FASTA files. FASTA files
// consist of a number of named sequences that may be interrupted by
// newlines. For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const defaultMaxLineSize = 300 * 1024 * 1024 // 300 MB

// A Record is one named FASTA sequence. Seq holds the concatenation of all
// of the record's sequence lines. Both slices are reused across calls to
// Scan.
type Record struct {
	Name []byte
	Seq  []byte
}

// Opt configures a Scanner.
type Opt func(*Scanner)

// OptMaxLineSize sets the longest line the Scanner accepts.
func OptMaxLineSize(n int) Opt {
	return func(s *Scanner) { s.maxLine = n }
}

// Scanner reads FASTA records one at a time, without holding more than one
// record in memory. Text before the first header line is ignored, as are
// empty lines. Scanners are not threadsafe.
type Scanner struct {
	b       *bufio.Scanner
	maxLine int
	err     error
	// pending holds the header line that ended the previous record.
	pending []byte
	started bool
	done    bool
}

// NewScanner constructs a Scanner reading FASTA data from r.
func NewScanner(r io.Reader, opts ...Opt) *Scanner {
	s := &Scanner{maxLine: defaultMaxLineSize}
	for _, opt := range opts {
		opt(s)
	}
	s.b = bufio.NewScanner(r)
	s.b.Buffer(nil, s.maxLine)
	return s
}

// Scan reads the next record into rec. It returns false at the end of the
// stream or on error; callers should then check Err.
func (s *Scanner) Scan(rec *Record) bool {
	if s.done {
		return false
	}
	if !s.started {
		// Skip to the first header line.
		for {
			if !s.b.Scan() {
				return s.finish()
			}
			line := s.b.Bytes()
			if len(line) > 0 && line[0] == '>' {
				s.pending = append(s.pending[:0], line...)
				break
			}
		}
		s.started = true
	}
	if s.pending == nil {
		return s.finish()
	}
	rec.Name = append(rec.Name[:0], seqName(s.pending[1:])...)
	rec.Seq = rec.Seq[:0]
	s.pending = s.pending[:0]
	for s.b.Scan() {
		line := s.b.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' { // Start of the next sequence.
			s.pending = append(s.pending, line...)
			return true
		}
		rec.Seq = append(rec.Seq, bytes.TrimRight(line, " \t\r")...)
	}
	s.pending = nil
	if err := s.b.Err(); err != nil {
		s.done = true
		s.err = errors.Wrap(err, "couldn't read FASTA data")
		return false
	}
	return true
}

func (s *Scanner) finish() bool {
	s.done = true
	if err := s.b.Err(); err != nil {
		s.err = errors.Wrap(err, "couldn't read FASTA data")
	}
	return false
}

// Err returns the first non-EOF error encountered by Scan.
func (s *Scanner) Err() error {
	return s.err
}

func seqName(header []byte) []byte {
	header = bytes.TrimRight(header, "\r")
	if i := bytes.IndexByte(header, ' '); i >= 0 {
		return header[:i]
	}
	return header
}
