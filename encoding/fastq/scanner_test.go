package fastq

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
)

const fq = `@r1 1:N:0:ATCACG
ACGTNACGTA
+
AAAAAEEEEE
@r2 1:N:0:ATCACG
acgtn
+
EEEEE
@r3 1:N:0:ATCACG
TTTT
+r3
EE#E
`

func stringScanner(s string, opts ...Opt) *Scanner {
	return NewScanner(strings.NewReader(s), All, opts...)
}

func scanAll(t *testing.T, s *Scanner) (seqs []string) {
	var r Read
	for s.Scan(&r) {
		seqs = append(seqs, string(r.Seq))
	}
	return
}

func scanErr(s string) error {
	scan := stringScanner(s)
	var r Read
	for scan.Scan(&r) {
	}
	return scan.Err()
}

func TestFASTQ(t *testing.T) {
	s := stringScanner(fq)
	var r Read
	if !s.Scan(&r) {
		t.Fatal(s.Err())
	}
	expect.EQ(t, string(r.ID), "@r1 1:N:0:ATCACG")
	expect.EQ(t, string(r.Seq), "ACGTNACGTA")
	expect.EQ(t, string(r.Unk), "+")
	expect.EQ(t, string(r.Qual), "AAAAAEEEEE")
	expect.False(t, r.Malformed)

	var (
		n       int
		lastUnk string
	)
	for s.Scan(&r) {
		n++
		lastUnk = string(r.Unk)
	}
	expect.EQ(t, n, 2)
	expect.EQ(t, lastUnk, "+r3")
	expect.NoError(t, s.Err())
	// A failed Scan leaves the Read cleared.
	expect.EQ(t, len(r.Unk), 0)
}

func TestFields(t *testing.T) {
	s := NewScanner(strings.NewReader(fq), Seq)
	var r Read
	expect.True(t, s.Scan(&r))
	expect.EQ(t, len(r.ID), 0)
	expect.EQ(t, len(r.Qual), 0)
	expect.EQ(t, string(r.Seq), "ACGTNACGTA")
}

func TestBadFASTQ(t *testing.T) {
	if got, want := scanErr("12312#"), ErrInvalid; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := scanErr("@1234\n123"), ErrShort; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := scanErr("@1234\nACGT\n-\nEEEE\n"), ErrInvalid; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLenient(t *testing.T) {
	tests := []struct {
		in        string
		seqs      []string
		malformed int64
	}{
		{fq, []string{"ACGTNACGTA", "acgtn", "TTTT"}, 0},
		{"xr1\nACGT\n+\nEEEE\n@r2\nGG\n+\nEE\n", []string{"", "GG"}, 1},
		{"@r1\nACGT\n-\nEEEE\n@r2\nGG\n+\nEE\n", []string{"", "GG"}, 1},
		{"@r1\nACGT\n+\nEEEE\n@r2\nGG\n", []string{"ACGT", ""}, 1},
		{"", nil, 0},
	}
	for _, test := range tests {
		s := stringScanner(test.in, OptLenient)
		expect.EQ(t, scanAll(t, s), test.seqs, "input %q", test.in)
		expect.NoError(t, s.Err())
		expect.EQ(t, s.Malformed(), test.malformed)
	}
}

func TestMaxLineSize(t *testing.T) {
	s := stringScanner("@r1\n"+strings.Repeat("A", 100)+"\n+\n"+strings.Repeat("E", 100)+"\n", OptMaxLineSize(16))
	var r Read
	expect.False(t, s.Scan(&r))
	expect.NotNil(t, s.Err())
}
