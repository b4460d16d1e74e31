// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syn

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

// Word is a .syn file entry.
type Word struct {
	// Word is the synonym word.
	Word string

	// OriginalWordIndex is the index into the .idx index.
	OriginalWordIndex uint32
}

// Options are options for the idx data.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding, whitespace folding, etc.) on index entries.
	Folder func() transform.Transformer
}

// DefaultOptions is the default options for a Syn.
var DefaultOptions = &Options{
	Folder: folding.Default,
}

// Syn is is the synonym index. It is largely a map of synonym words to related
// index entries.
type Syn struct {
	// index is sorted by the folded word value.
	index *index.Index[*Word]

	// foldTransformer performs folding on text.
	foldTransformer func() transform.Transformer
}

// New returns a new Syn by reading the data from r.
func New(r io.ReadCloser, options *Options) (*Syn, error) {
	if options == nil {
		options = DefaultOptions
	}

	syn := Syn{
		index:           index.NewIndex[*Word](strings.Compare),
		foldTransformer: DefaultOptions.Folder,
	}
	if options.Folder != nil {
		syn.foldTransformer = options.Folder
	}

	s, err := NewScanner(r)
	if err != nil {
		return nil, fmt.Errorf("creating synonym index scanner: %w", err)
	}
	defer s.Close()

	for s.Scan() {
		word := s.Word()
		folded, _, err := transform.String(syn.foldTransformer(), word.Word)
		if err != nil {
			return nil, fmt.Errorf("folding word %q: %w", word.Word, err)
		}
		syn.index.Add(folded, word)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning synonym index %w", err)
	}

	// We need to re-sort based on the folded word.
	syn.index.Sort()

	return &syn, nil
}

// NewFromIfoPath returns a new in-memory synonym index for the .syn file that
// accompanies the given .ifo file.
func NewFromIfoPath(ifoPath string, options *Options) (*Syn, error) {
	f, err := Open(ifoPath)
	if err != nil {
		return nil, err
	}
	r, err := gzfile.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("opening .syn file: %w", err)
	}
	return New(r, options)
}

// Exts are the .syn file extensions in the order they are searched.
var Exts = []string{
	".syn",
	".syn.gz",
	".syn.GZ",
	".syn.dz",
	".syn.DZ",
	".SYN",
	".SYN.gz",
	".SYN.GZ",
	".SYN.dz",
	".SYN.DZ",
}

// Open opens the .syn file given the path to the .ifo file.
func Open(ifoPath string) (*os.File, error) {
	baseName := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))

	f, err := gzfile.Find(baseName, Exts)
	if err != nil {
		return nil, fmt.Errorf("opening .syn file: %w", err)
	}
	return f, nil
}

// Search performs a query of the index and returns matching words.
func (syn *Syn) Search(query string) ([]*Word, error) {
	foldedQuery, _, err := transform.String(syn.foldTransformer(), query)
	if err != nil {
		return nil, fmt.Errorf("folding query %q: %w", query, err)
	}

	return syn.index.Search(foldedQuery), nil
}
