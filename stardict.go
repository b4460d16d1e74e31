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


package stardict

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-stardict/v2/dict"
	"github.com/ianlewis/go-stardict/v2/idx"
	"github.com/ianlewis/go-stardict/v2/ifo"
	"github.com/ianlewis/go-stardict/v2/internal/folding"
	"github.com/ianlewis/go-stardict/v2/syn"
)

var (
	// ErrInvalidIfo indicates that the .ifo file is missing required values or
	// has invalid values.
	ErrInvalidIfo = errors.New("invalid .ifo file")

	errNoIfo = errors.New("no .ifo file found")
)

// Options are options for opening a dictionary.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding on
	// headwords and queries for Search.
	Folder func() transform.Transformer

	// Logger receives warnings about recoverable problems in the
	// dictionary. If nil, [slog.Default] is used.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Stardict.
var DefaultOptions = &Options{
	Folder: folding.Default,
}

// Stardict is a stardict dictionary.
type Stardict struct {
	ifo  *ifo.Ifo
	idx  *idx.Idx
	syn  *syn.Syn
	dict *dict.Dict

	ifoPath string
	folder  func() transform.Transformer
	logger  *slog.Logger

	version          string
	bookname         string
	wordcount        int64
	synwordcount     int64
	idxfilesize      int64
	idxoffsetbits    int64
	author           string
	email            string
	website          string
	description      string
	sametypesequence []dict.DataType
}

// OpenAll opens all dictionaries under a directory. This function will return
// all successfully opened dictionaries along with any errors that occurred.
func OpenAll(path string, options *Options) ([]*Stardict, []error) {
	var dicts []*Stardict
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".ifo") {
			dict, err := Open(path, options)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, dict)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

// Open opens a Stardict dictionary. path is either the .ifo file or the
// directory that contains it. The .idx and .dict files must exist; they are
// read lazily.
func Open(path string, options *Options) (*Stardict, error) {
	if options == nil {
		options = DefaultOptions
	}

	ifoPath, err := findIfo(path)
	if err != nil {
		return nil, err
	}

	s := &Stardict{
		ifoPath:       ifoPath,
		idxoffsetbits: 32,
		folder:        options.Folder,
		logger:        options.Logger,
	}
	if s.folder == nil {
		s.folder = folding.Default
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	ifoFile, err := os.Open(s.ifoPath)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", s.ifoPath, err)
	}
	defer ifoFile.Close()

	s.ifo, err = ifo.New(ifoFile)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", s.ifoPath, err)
	}

	if err := s.readIfo(); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidIfo, s.ifoPath, err)
	}

	// The index and article data are read lazily but must exist.
	for _, open := range []func(string) (*os.File, error){idx.Open, dict.Open} {
		f, err := open(s.ifoPath)
		if err != nil {
			return nil, err
		}
		_ = f.Close()
	}

	return s, nil
}

func findIfo(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", path, err)
	}
	if !fi.IsDir() {
		if !strings.EqualFold(filepath.Ext(path), ".ifo") {
			return "", fmt.Errorf("bad extension: %v", filepath.Ext(path))
		}
		return path, nil
	}

	// Prefer the file named after the directory.
	base := filepath.Join(path, filepath.Base(path))
	for _, ext := range []string{".ifo", ".IFO"} {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, nil
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", path, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".ifo") {
			return filepath.Join(path, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %q", errNoIfo, path)
}

func (s *Stardict) readIfo() error {
	// The banner line is optional.
	if m := s.ifo.Magic(); m != "" && m != ifo.Magic {
		return fmt.Errorf("bad magic data: %q", s.ifo.Magic())
	}

	// Validate the version
	s.version = s.ifo.Value("version")
	switch s.version {
	case "2.4.2":
	case "3.0.0":
	default:
		return fmt.Errorf("invalid version: %v", s.version)
	}

	s.bookname = s.ifo.Value("bookname")
	if s.bookname == "" {
		return fmt.Errorf("missing bookname")
	}

	var err error
	s.wordcount, err = strconv.ParseInt(s.ifo.Value("wordcount"), 10, 64)
	if err != nil {
		return fmt.Errorf("bad wordcount: %w", err)
	}

	s.idxfilesize, err = strconv.ParseInt(s.ifo.Value("idxfilesize"), 10, 64)
	if err != nil {
		return fmt.Errorf("bad idxfilesize: %w", err)
	}

	idxoffsetbits := s.ifo.Value("idxoffsetbits")
	if idxoffsetbits != "" && s.version == "3.0.0" {
		s.idxoffsetbits, err = strconv.ParseInt(idxoffsetbits, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid idxoffsetbits: %w", err)
		}
		if s.idxoffsetbits != 32 && s.idxoffsetbits != 64 {
			return fmt.Errorf("%w: %d", idx.ErrInvalidIdxOffset, s.idxoffsetbits)
		}
	}

	synwordcount := s.ifo.Value("synwordcount")
	if synwordcount != "" {
		s.synwordcount, err = strconv.ParseInt(synwordcount, 10, 64)
		if err != nil {
			return fmt.Errorf("bad synwordcount: %w", err)
		}
	}

	sametypesequence := s.ifo.Value("sametypesequence")
	if sametypesequence != "" {
		if strings.IndexFunc(sametypesequence, func(r rune) bool {
			return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z')
		}) >= 0 {
			return fmt.Errorf("sametypesequence is not alphabetic: %q", sametypesequence)
		}
		s.sametypesequence, err = dict.ParseSequence(sametypesequence)
		if err != nil {
			return err
		}
	}

	s.author = s.ifo.Value("author")
	s.email = s.ifo.Value("email")
	s.description = s.ifo.Value("description")
	s.website = s.ifo.Value("website")

	return nil
}

// Bookname returns the dictionary name.
func (s *Stardict) Bookname() string {
	return s.bookname
}

// Description returns the dictionary description.
func (s *Stardict) Description() string {
	return s.description
}

// Author returns the dictionary author.
func (s *Stardict) Author() string {
	return s.author
}

// Email returns the dictionary contact email.
func (s *Stardict) Email() string {
	return s.email
}

// Website returns the dictionary website url.
func (s *Stardict) Website() string {
	return s.website
}

// WordCount returns the dictionary word count.
func (s *Stardict) WordCount() int64 {
	return s.wordcount
}

// SynWordCount returns the number of synonyms declared by the dictionary.
func (s *Stardict) SynWordCount() int64 {
	return s.synwordcount
}

// IdxOffsetBits returns the width of article offsets in the index.
func (s *Stardict) IdxOffsetBits() int64 {
	return s.idxoffsetbits
}

// SameTypeSequence returns the dictionary's sametypesequence, or nil if
// articles carry their own type bytes.
func (s *Stardict) SameTypeSequence() []dict.DataType {
	return slices.Clone(s.sametypesequence)
}

// Version returns the dictionary format version.
func (s *Stardict) Version() string {
	return s.version
}

// Value returns the raw .ifo value for key.
func (s *Stardict) Value(key string) string {
	return s.ifo.Value(key)
}

// Path returns the path to the dictionary's .ifo file.
func (s *Stardict) Path() string {
	return s.ifoPath
}

// Search performs a query of the dictionary's headwords and synonyms and
// returns matching entries.
func (s *Stardict) Search(query string) ([]*Entry, error) {
	idx, err := s.Index()
	if err != nil {
		return nil, err
	}

	words, err := idx.Search(query)
	if err != nil {
		return nil, err
	}

	syn, err := s.Syn()
	if err != nil {
		return nil, err
	}
	if syn != nil {
		synWords, err := syn.Search(query)
		if err != nil {
			return nil, err
		}
		for _, sw := range synWords {
			w := idx.Word(int(sw.OriginalWordIndex))
			if w == nil {
				s.logger.Warn("synonym index out of range",
					"path", s.ifoPath,
					"word", sw.Word,
					"index", sw.OriginalWordIndex,
				)
				continue
			}
			if !slices.Contains(words, w) {
				words = append(words, w)
			}
		}
	}

	dict, err := s.Dict()
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	for _, w := range words {
		a, err := dict.Word(w)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &Entry{
			word: w.Word,
			data: a.Data,
		})
	}
	return entries, nil
}

// Index returns an in-memory version of the dictionary's index.
func (s *Stardict) Index() (*idx.Idx, error) {
	if s.idx != nil {
		return s.idx, nil
	}
	idx, err := idx.NewFromIfoPath(s.ifoPath, &idx.Options{
		OffsetBits: int(s.idxoffsetbits),
		Folder:     s.folder,
	})
	if err != nil {
		return nil, err
	}
	s.idx = idx
	return s.idx, nil
}

// Syn returns an in-memory version of the dictionary's synonym index. It
// returns nil if the dictionary has no .syn file.
func (s *Stardict) Syn() (*syn.Syn, error) {
	if s.syn != nil {
		return s.syn, nil
	}
	f, err := syn.Open(s.ifoPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = f.Close()

	syn, err := syn.NewFromIfoPath(s.ifoPath, &syn.Options{
		Folder: s.folder,
	})
	if err != nil {
		return nil, err
	}
	s.syn = syn
	return s.syn, nil
}

// Dict returns the dictionary's article data.
func (s *Stardict) Dict() (*dict.Dict, error) {
	if s.dict != nil {
		return s.dict, nil
	}
	// Open the dict file.
	dict, err := dict.NewFromIfoPath(s.ifoPath, &dict.Options{
		SameTypeSequence: s.sametypesequence,
	})
	if err != nil {
		return nil, err
	}
	s.dict = dict
	return s.dict, nil
}

// Close closes the dictionary's open files.
func (s *Stardict) Close() error {
	if s.dict == nil {
		return nil
	}
	err := s.dict.Close()
	s.dict = nil
	return err
}
