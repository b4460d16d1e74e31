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
	"strings"

	"github.com/ianlewis/go-stardict/v2/dict"
	"github.com/ianlewis/go-stardict/v2/glossary"
	"github.com/ianlewis/go-stardict/v2/idx"
	"github.com/ianlewis/go-stardict/v2/syn"
)

// Scanner iterates over all entries of a dictionary. Index entries are
// returned in file order, followed by the resource files. Articles are read
// from the .dict file one at a time.
type Scanner struct {
	ifoPath string
	logger  *slog.Logger

	idx  *idx.Scanner
	dict *dict.Dict

	// alternates maps an index position to the synonyms that refer to it.
	alternates map[uint32][]string
	wordcount  int64
	pos        uint32

	resDir   string
	resFiles []string

	entry *glossary.Entry
	err   error
	done  bool
}

// Entries returns a scanner over the dictionary's entries. The synonym index
// is loaded into memory first. Corrupt .idx or .syn data is reported by the
// scanner's Err method or returned here respectively. Articles that cannot be
// decoded are logged and skipped.
func (s *Stardict) Entries() (*Scanner, error) {
	alternates, err := s.loadAlternates()
	if err != nil {
		return nil, err
	}

	d, err := s.Dict()
	if err != nil {
		return nil, err
	}

	is, err := idx.NewScannerFromIfoPath(s.ifoPath, &idx.ScannerOptions{
		OffsetBits: int(s.idxoffsetbits),
	})
	if err != nil {
		return nil, err
	}

	return &Scanner{
		ifoPath:    s.ifoPath,
		logger:     s.logger,
		idx:        is,
		dict:       d,
		alternates: alternates,
		wordcount:  s.wordcount,
		resDir:     resDir(s.ifoPath),
	}, nil
}

func (s *Stardict) loadAlternates() (map[uint32][]string, error) {
	f, err := syn.Open(s.ifoPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_ = f.Close()

	ss, err := syn.NewScannerFromIfoPath(s.ifoPath)
	if err != nil {
		return nil, err
	}
	defer ss.Close()

	alternates := map[uint32][]string{}
	count := int64(0)
	for ss.Scan() {
		w := ss.Word()
		count++
		if int64(w.OriginalWordIndex) >= s.wordcount {
			s.logger.Warn("synonym index out of range, dropping",
				"path", s.ifoPath,
				"word", w.Word,
				"index", w.OriginalWordIndex,
				"wordcount", s.wordcount,
			)
			continue
		}
		alternates[w.OriginalWordIndex] = append(alternates[w.OriginalWordIndex], w.Word)
	}
	if err := ss.Err(); err != nil {
		return nil, fmt.Errorf("reading .syn file: %w", err)
	}
	if s.synwordcount != 0 && count != s.synwordcount {
		s.logger.Warn("synwordcount mismatch",
			"path", s.ifoPath,
			"synwordcount", s.synwordcount,
			"actual", count,
		)
	}
	return alternates, nil
}

// resDir returns the resource directory of the dictionary, or the empty
// string if there is none.
func resDir(ifoPath string) string {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	for _, dir := range []string{
		filepath.Join(filepath.Dir(ifoPath), "res"),
		base + "_res",
	} {
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return ""
}

// Scan advances to the next entry. It returns false at the end of the
// dictionary or when an error occurs.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for s.idx != nil {
		if !s.idx.Scan() {
			if err := s.idx.Err(); err != nil {
				return s.fail(fmt.Errorf("reading .idx file: %w", err))
			}
			if int64(s.pos) != s.wordcount {
				s.logger.Warn("wordcount mismatch",
					"path", s.ifoPath,
					"wordcount", s.wordcount,
					"actual", s.pos,
				)
			}
			if err := s.idx.Close(); err != nil {
				return s.fail(err)
			}
			s.idx = nil
			if err := s.listResources(); err != nil {
				return s.fail(err)
			}
			break
		}

		w := s.idx.Word()
		pos := s.pos
		s.pos++

		entry, err := s.readEntry(w, pos)
		if errors.Is(err, dict.ErrInvalidData) {
			s.logger.Warn("skipping entry",
				"path", s.ifoPath,
				"word", w.Word,
				"error", err,
			)
			continue
		}
		if err != nil {
			return s.fail(err)
		}
		s.entry = entry
		return true
	}

	for len(s.resFiles) > 0 {
		name := s.resFiles[0]
		s.resFiles = s.resFiles[1:]

		b, err := os.ReadFile(filepath.Join(s.resDir, filepath.FromSlash(name)))
		if err != nil {
			return s.fail(fmt.Errorf("reading resource: %w", err))
		}
		entry, err := glossary.NewDataEntry(name, b)
		if err != nil {
			s.logger.Warn("skipping resource", "path", s.resDir, "name", name, "error", err)
			continue
		}
		s.entry = entry
		return true
	}

	s.done = true
	s.entry = nil
	return false
}

func (s *Scanner) readEntry(w *idx.Word, pos uint32) (*glossary.Entry, error) {
	article, err := s.dict.Word(w)
	if err != nil {
		return nil, err
	}

	var defs []glossary.Definition
	for _, d := range article.Data {
		if d.Type.IsFile() {
			s.logger.Warn("skipping binary article data",
				"path", s.ifoPath,
				"word", w.Word,
				"type", d.Type.String(),
			)
			continue
		}
		defs = append(defs, glossary.Definition{
			Format: glossary.Format(d.Type),
			Text:   string(d.Data),
		})
	}
	if len(defs) == 0 {
		defs = []glossary.Definition{{Format: glossary.FormatPlain}}
	}

	words := append([]string{w.Word}, s.alternates[pos]...)
	return glossary.NewEntryDefinitions(words, defs)
}

func (s *Scanner) listResources() error {
	if s.resDir == "" {
		return nil
	}
	return filepath.WalkDir(s.resDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.resDir, path)
		if err != nil {
			return err
		}
		s.resFiles = append(s.resFiles, filepath.ToSlash(rel))
		return nil
	})
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	s.done = true
	s.entry = nil
	return false
}

// Entry returns the current entry.
func (s *Scanner) Entry() *glossary.Entry {
	return s.entry
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	return s.err
}

// Close closes the scanner. The dictionary's article data stays open until
// the dictionary is closed.
func (s *Scanner) Close() error {
	s.done = true
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	return err
}
