// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package idx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-stardict/v2/internal/folding"
	"github.com/ianlewis/go-stardict/v2/internal/gzfile"
	"github.com/ianlewis/go-stardict/v2/internal/index"
)

// Word is an .idx file entry.
type Word struct {
	Word   string
	Offset uint64
	Size   uint32
}

// Options are options for the idx data.
type Options struct {
	// OffsetBits are the number of bits in the offset fields. Valid values for
	// OffsetBits are either 32 or 64.
	OffsetBits int

	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding, whitespace folding, etc.) on index entries.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for an Idx.
var DefaultOptions = &Options{
	OffsetBits: 32,
	Folder:     folding.Default,
}

// Idx is a very basic implementation of an in memory search index.
// Implementers of dictionaries apps or tools may wish to consider using
// Scanner to read the .idx file and generate their own more robust search
// index.
type Idx struct {
	// words is in file order.
	words []*Word

	// index is sorted by the folded word value.
	index *index.Index[*Word]

	// foldTransformer performs folding on text.
	foldTransformer func() transform.Transformer
}

// New returns a new in-memory index by reading the data from r.
func New(r io.ReadCloser, options *Options) (*Idx, error) {
	if options == nil {
		options = DefaultOptions
	}

	idx := &Idx{
		index:           index.NewIndex[*Word](strings.Compare),
		foldTransformer: DefaultOptions.Folder,
	}
	if options.Folder != nil {
		idx.foldTransformer = options.Folder
	}

	s, err := NewScanner(r, &ScannerOptions{
		OffsetBits: options.OffsetBits,
	})
	if err != nil {
		return nil, err
	}
	defer s.Close()

	for s.Scan() {
		word := s.Word()
		f, _, err := transform.String(idx.foldTransformer(), word.Word)
		if err != nil {
			return nil, fmt.Errorf("folding word %q: %w", word.Word, err)
		}
		idx.words = append(idx.words, word)
		idx.index.Add(f, word)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}

	idx.index.Sort()

	return idx, nil
}

// NewFromIfoPath returns a new in-memory index for the .idx file that
// accompanies the given .ifo file.
func NewFromIfoPath(ifoPath string, options *Options) (*Idx, error) {
	f, err := Open(ifoPath)
	if err != nil {
		return nil, err
	}
	r, err := gzfile.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening .idx file: %w", err)
	}
	return New(r, options)
}

// Exts are the .idx file extensions in the order they are searched.
var Exts = []string{
	".idx",
	".idx.gz",
	".idx.GZ",
	".IDX",
	".IDX.gz",
	".IDX.GZ",
}

// Open opens the .idx file given the path to the .ifo file.
func Open(ifoPath string) (*os.File, error) {
	baseName := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))

	f, err := gzfile.Find(baseName, Exts)
	if err != nil {
		return nil, fmt.Errorf("opening .idx file: %w", err)
	}
	return f, nil
}

// Len returns the number of words in the index.
func (idx *Idx) Len() int {
	return len(idx.words)
}

// Word returns the i'th word in file order.
func (idx *Idx) Word(i int) *Word {
	if i < 0 || i >= len(idx.words) {
		return nil
	}
	return idx.words[i]
}

// Search performs a query of the index and returns matching words.
func (idx *Idx) Search(query string) ([]*Word, error) {
	foldedQuery, _, err := transform.String(idx.foldTransformer(), query)
	if err != nil {
		return nil, fmt.Errorf("folding query %q: %w", query, err)
	}

	return idx.index.Search(foldedQuery), nil
}
