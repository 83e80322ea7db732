package fasta_test

import (
	"strings"
	"testing"

	"github.com/grailbio/consensus/encoding/fasta"
	"github.com/grailbio/testutil/expect"
)

const multiLineFasta = ">seq1\nACGTA\nCGTAC\nGT\n>seq2 A viral sequence\nACGT\nacgt\n"

type record struct{ name, seq string }

func scanAll(t *testing.T, in string, opts ...fasta.Opt) ([]record, error) {
	s := fasta.NewScanner(strings.NewReader(in), opts...)
	var (
		rec  fasta.Record
		recs []record
	)
	for s.Scan(&rec) {
		recs = append(recs, record{string(rec.Name), string(rec.Seq)})
	}
	return recs, s.Err()
}

func TestScanner(t *testing.T) {
	tests := []struct {
		in   string
		want []record
	}{
		{multiLineFasta, []record{{"seq1", "ACGTACGTACGT"}, {"seq2", "ACGTacgt"}}},
		{"", nil},
		{">empty\n>one\nA\n", []record{{"empty", ""}, {"one", "A"}}},
		{">last", []record{{"last", ""}}},
		{"junk before\n>a\nAC\n\nGT", []record{{"a", "ACGT"}}},
		{">crlf\r\nAC\r\nGT\r\n", []record{{"crlf", "ACGT"}}},
		{"no header at all\nACGT\n", nil},
	}
	for _, test := range tests {
		got, err := scanAll(t, test.in)
		expect.NoError(t, err)
		expect.EQ(t, got, test.want, "input %q", test.in)
	}
}

func TestScannerStopsAfterEOF(t *testing.T) {
	s := fasta.NewScanner(strings.NewReader(">a\nAC\n"))
	var rec fasta.Record
	expect.True(t, s.Scan(&rec))
	expect.False(t, s.Scan(&rec))
	expect.False(t, s.Scan(&rec))
	expect.NoError(t, s.Err())
}

func TestScannerLineTooLong(t *testing.T) {
	_, err := scanAll(t, ">a\n"+strings.Repeat("A", 64)+"\n", fasta.OptMaxLineSize(16))
	expect.NotNil(t, err)
}
