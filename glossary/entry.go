// Copyright 2026 Ian Lewis
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

// Package glossary defines the entry model exchanged between glossary readers
// and writers. Entries carry one or more headwords and one or more
// definitions, or the bytes of a binary resource referenced by definitions.
package glossary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Format is a one letter definition format tag. The letters match the
// StarDict data type letters.
type Format byte

const (
	// FormatPlain is plain utf-8 text.
	FormatPlain = Format('m')

	// FormatHTML is utf-8 encoded HTML.
	FormatHTML = Format('h')

	// FormatXDXF is utf-8 encoded XDXF markup.
	FormatXDXF = Format('x')
)

// String returns the format letter.
func (f Format) String() string {
	return string(rune(f))
}

var (
	errNoWords      = errors.New("entry has no headwords")
	errNoDefinition = errors.New("entry has no definitions")
	errBadName      = errors.New("invalid resource name")
)

var (
	htmlPattern = regexp.MustCompile(`(?i)<(?:/?(?:a|b|i|u|p|br|hr|div|span|font|html|body|head|img|ul|ol|li|table|tr|td|th|sup|sub|em|strong|small|big|blockquote|pre|code|audio|h[1-6])\b[^>]*|!--.*?--|!doctype html[^>]*)>`)
	xdxfPattern = regexp.MustCompile(`<(?:k|ar|def|dtrn|kref|abr|ex|co|gr|tr|rref)>`)
)

// DetectFormat guesses the format of a definition's text.
func DetectFormat(text string) Format {
	switch {
	case xdxfPattern.MatchString(text):
		return FormatXDXF
	case htmlPattern.MatchString(text):
		return FormatHTML
	default:
		return FormatPlain
	}
}

// Definition is one definition variant of an entry.
type Definition struct {
	Format Format
	Text   string
}

// Entry is a glossary entry.
type Entry struct {
	words []string
	defs  []Definition

	isData bool
	data   []byte
}

// NewEntry returns a content entry with a single definition. words must not be
// empty. If format is zero the format is detected from the definition text.
func NewEntry(words []string, defi string, format Format) (*Entry, error) {
	return NewEntryDefinitions(words, []Definition{{Format: format, Text: defi}})
}

// NewEntryDefinitions returns a content entry with the given definition
// variants. Variants without a format have it detected from their text.
func NewEntryDefinitions(words []string, defs []Definition) (*Entry, error) {
	if len(words) == 0 {
		return nil, errNoWords
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: %q", errNoDefinition, words[0])
	}
	e := &Entry{
		words: append([]string(nil), words...),
		defs:  make([]Definition, len(defs)),
	}
	for i, d := range defs {
		if d.Format == 0 {
			d.Format = DetectFormat(d.Text)
		}
		e.defs[i] = d
	}
	return e, nil
}

// NewDataEntry returns a binary resource entry. name is the resource's file
// name relative to the resource directory.
func NewDataEntry(name string, data []byte) (*Entry, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return nil, fmt.Errorf("%w: %q", errBadName, name)
	}
	return &Entry{
		words:  []string{name},
		isData: true,
		data:   data,
	}, nil
}

// Word returns the canonical headword.
func (e *Entry) Word() string {
	return e.words[0]
}

// Words returns all headwords. The first is the canonical headword and the
// rest are alternates.
func (e *Entry) Words() []string {
	return e.words
}

// Definitions returns the entry's definition variants.
func (e *Entry) Definitions() []Definition {
	return e.defs
}

// Defi returns the text of the first definition.
func (e *Entry) Defi() string {
	if len(e.defs) == 0 {
		return ""
	}
	return e.defs[0].Text
}

// Format returns the format of the first definition.
func (e *Entry) Format() Format {
	if len(e.defs) == 0 {
		return 0
	}
	return e.defs[0].Format
}

// IsData returns true if the entry is a binary resource.
func (e *Entry) IsData() bool {
	return e.isData
}

// Data returns the resource bytes of a data entry.
func (e *Entry) Data() []byte {
	return e.data
}

// Save writes a data entry's bytes under dir and returns the file path.
func (e *Entry) Save(dir string) (string, error) {
	if !e.isData {
		return "", fmt.Errorf("%w: %q is not a resource", errBadName, e.Word())
	}
	path := filepath.Join(dir, filepath.FromSlash(e.Word()))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating resource directory: %w", err)
	}
	if err := os.WriteFile(path, e.data, 0o644); err != nil {
		return "", fmt.Errorf("writing resource %q: %w", e.Word(), err)
	}
	return path, nil
}

// String returns a string representation of the Entry.
func (e *Entry) String() string {
	if e.isData {
		return fmt.Sprintf("%s (%d bytes)", e.Word(), len(e.data))
	}
	var b strings.Builder
	b.WriteString(strings.Join(e.words, " | "))
	b.WriteString("\n")
	for _, d := range e.defs {
		b.WriteString(d.Text)
		b.WriteString("\n")
	}
	return b.String()
}
