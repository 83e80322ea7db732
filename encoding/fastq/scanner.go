package fastq

import (
	"bufio"
	"errors"
	"io"
)

const linesPerRead = 4

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// A Read is a FASTQ read, comprising an ID, sequence, line 3
// ("unknown"), and a quality string. The byte slices are owned by the
// Scanner's caller and are reused across calls to Scan.
type Read struct {
	ID, Seq, Unk, Qual []byte
	// Malformed is set by a lenient Scanner when the record's framing was
	// broken. Seq is empty in that case.
	Malformed bool
}

// Field enumerates FASTQ fields. It is used to specify fields to read in
// NewScanner.
type Field uint

const (
	// ID causes the Read.ID field to be filled
	ID Field = 1 << iota
	// Seq causes the Read.Seq field to be filled
	Seq
	// Unk causes the Read.Unk field to be filled
	Unk
	// Qual causes the Read.Qual field to be filled
	Qual
	// All equals ID|Seq|Unk|Qual.
	All = ID | Seq | Unk | Qual
)

// Opt configures a Scanner.
type Opt func(*Scanner)

// OptLenient makes the Scanner tolerate broken records: a record whose ID
// line does not start with "@", whose line 3 does not start with "+", or
// which is cut short by the end of the stream is returned with Malformed set
// and an empty Seq instead of stopping the scan.
func OptLenient(s *Scanner) { s.lenient = true }

// OptMaxLineSize sets the longest line the Scanner accepts.
func OptMaxLineSize(n int) Opt {
	return func(s *Scanner) { s.maxLine = n }
}

const defaultMaxLineSize = 64 << 20

var errEOF = errors.New("eof")

// Scanner reads FASTQ records one at a time. Scanners are not threadsafe.
//
// A strict Scanner (the default) requires ID lines to begin with "@" and
// line 3 to begin with "+", and stops with ErrInvalid or ErrShort otherwise.
// It does not check that seq and qual have equal length.
type Scanner struct {
	b         *bufio.Scanner
	err       error
	fields    Field
	lenient   bool
	maxLine   int
	malformed int64
}

// NewScanner constructs a new Scanner that reads raw FASTQ data from the
// provided reader. Fields is a bitset of the fields to read.
func NewScanner(r io.Reader, fields Field, opts ...Opt) *Scanner {
	s := &Scanner{fields: fields, maxLine: defaultMaxLineSize}
	for _, opt := range opts {
		opt(s)
	}
	s.b = bufio.NewScanner(r)
	s.b.Buffer(nil, s.maxLine)
	return s
}

// Scan the next read into the provided read. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (f *Scanner) Scan(read *Read) bool {
	if f.err != nil {
		return false
	}
	read.Malformed = false
	reset(read)
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	ok := true
	id := f.b.Bytes()
	if len(id) == 0 || id[0] != '@' {
		if !f.lenient {
			f.err = ErrInvalid
			return false
		}
		ok = false
	}
	if f.fields&ID != 0 {
		read.ID = append(read.ID, id...)
	}
	if !f.scan() {
		return f.short(read)
	}
	if f.fields&Seq != 0 {
		read.Seq = append(read.Seq, f.b.Bytes()...)
	}
	if !f.scan() {
		return f.short(read)
	}
	unk := f.b.Bytes()
	if len(unk) == 0 || unk[0] != '+' {
		if !f.lenient {
			f.err = ErrInvalid
			return false
		}
		ok = false
	}
	if f.fields&Unk != 0 {
		read.Unk = append(read.Unk, unk...)
	}
	if !f.scan() {
		return f.short(read)
	}
	if f.fields&Qual != 0 {
		read.Qual = append(read.Qual, f.b.Bytes()...)
	}
	if !ok {
		f.markMalformed(read)
	}
	return true
}

// short handles a record cut off by the end of the stream.
func (f *Scanner) short(read *Read) bool {
	if !f.lenient || f.err != ErrShort {
		return false
	}
	// The partial record is still handed out; the next Scan reports EOF.
	f.err = errEOF
	f.markMalformed(read)
	return true
}

func (f *Scanner) markMalformed(read *Read) {
	f.malformed++
	read.Malformed = true
	read.Seq = read.Seq[:0]
}

func (f *Scanner) scan() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
	}
	return ok
}

func reset(read *Read) {
	read.ID = read.ID[:0]
	read.Seq = read.Seq[:0]
	read.Unk = read.Unk[:0]
	read.Qual = read.Qual[:0]
}

// Malformed returns the number of malformed records a lenient Scanner has
// returned so far.
func (f *Scanner) Malformed() int64 { return f.malformed }

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}
