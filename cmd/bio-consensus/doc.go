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

/*
Given a FASTA or FASTQ file, bio-consensus reports how many records carry each
of A, C, G, T and N at every position from 0 up to -bp_max. Very large inputs
are randomly sub-sampled so that about -seq_max records are processed.

The input format is detected from the first character of the file ('>' for
FASTA, '@' for FASTQ); -type is accepted for compatibility but ignored.
Gzip- and bzip2-compressed inputs are read transparently, and an output
path ending in ".gz" is gzip-compressed.

The output is a TSV with the header "#	A	C	G	T	N	total" and one row per
position.

Sampling is seeded from the current time unless -seed is given. The exec
record counter (-counter exec) only reads uncompressed inputs.

Sample usage:
bio-consensus -i reads.fastq.gz -o reads.consensus.tsv -b 150 -s 200000 -v
*/
package main
