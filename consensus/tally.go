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
	"encoding/binary"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/errors"
)

// Symbol is one of the five tallied nucleotide codes.
type Symbol byte

const (
	// SymbolA represents an A base.
	SymbolA Symbol = iota
	// SymbolC represents a C base.
	SymbolC
	// SymbolG represents a G base.
	SymbolG
	// SymbolT represents a T base.
	SymbolT
	// SymbolN represents an unknown base.
	SymbolN
	// NumSymbols is the number of tallied symbols.
	NumSymbols

	noSymbol Symbol = 255
)

// SymbolToASCIITable is the Symbol -> ASCII mapping.
var SymbolToASCIITable = [NumSymbols]byte{'A', 'C', 'G', 'T', 'N'}

func (s Symbol) String() string {
	if s >= NumSymbols {
		return "?"
	}
	return string(SymbolToASCIITable[s])
}

// asciiToSymbolTable maps an ASCII byte to its Symbol after capitalization.
// Everything other than ACGTNacgtn maps to noSymbol.
var asciiToSymbolTable [256]Symbol

func init() {
	for i := range asciiToSymbolTable {
		asciiToSymbolTable[i] = noSymbol
	}
	for sym, c := range SymbolToASCIITable {
		asciiToSymbolTable[c] = Symbol(sym)
		asciiToSymbolTable[c+'a'-'A'] = Symbol(sym)
	}
}

// Tally is the positional tally matrix: for each Symbol, a fixed-length row
// of counters indexed by position. All rows have the same length.
type Tally struct {
	counts [NumSymbols][]int64
}

// NewTally allocates a zeroed Tally covering positions
// [0, maxPositions).
func NewTally(maxPositions int) (*Tally, error) {
	if maxPositions < 0 {
		return nil, errors.E(errors.Invalid, "negative position count")
	}
	t := &Tally{}
	for sym := range t.counts {
		t.counts[sym] = make([]int64, maxPositions)
	}
	return t, nil
}

// Len returns the number of positions covered by t.
func (t *Tally) Len() int {
	return len(t.counts[SymbolA])
}

// Add tallies one sequence. Position i of seq, for i < min(len(seq),
// t.Len()), increments the counter of its capitalized symbol at i. Bytes
// outside ACGTNacgtn are ignored.
func (t *Tally) Add(seq []byte) {
	if len(seq) > t.Len() {
		seq = seq[:t.Len()]
	}
	for pos, c := range seq {
		if sym := asciiToSymbolTable[c]; sym != noSymbol {
			t.counts[sym][pos]++
		}
	}
}

// Count returns the counter for sym at pos.
func (t *Tally) Count(sym Symbol, pos int) int64 {
	return t.counts[sym][pos]
}

// Row returns the five counters at pos, in Symbol order.
func (t *Tally) Row(pos int) (row [NumSymbols]int64) {
	for sym := range row {
		row[sym] = t.counts[sym][pos]
	}
	return
}

// RowTotal returns the sum of the five counters at pos.
func (t *Tally) RowTotal(pos int) int64 {
	var total int64
	for sym := range t.counts {
		total += t.counts[sym][pos]
	}
	return total
}

// Checksum returns a seahash digest of the matrix. Equal tallies have equal
// checksums, which makes it cheap to compare two runs.
func (t *Tally) Checksum() uint64 {
	h := seahash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t.Len()))
	h.Write(buf[:])
	for sym := range t.counts {
		for _, v := range t.counts[sym] {
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}
