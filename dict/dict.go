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

// Package dict implements reading and writing .dict files.
package dict

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"github.com/k3a/html2text"

	"github.com/ianlewis/go-stardict/v2/idx"
	"github.com/ianlewis/go-stardict/v2/internal/gzfile"
)

var (
	errInvalidType        = errors.New("invalid type")
	errWordOffsetTooLarge = errors.New("word offset too large")
)

// ErrInvalidData indicates that a word's article data could not be decoded.
var ErrInvalidData = errors.New("invalid article data")

// Dict represents a Stardict dictionary's dictionary data.
type Dict struct {
	r       io.ReaderAt
	closers []io.Closer

	sametypesequence []DataType
}

// Word is a full dictionary entry.
type Word struct {
	Data []*Data
}

// Data is a data entry in a Word.
type Data struct {
	Type DataType
	Data []byte
}

// String returns a plain text representation of text data. HTML is rendered
// to text. Other data types return an empty string.
func (d *Data) String() string {
	switch d.Type {
	case UTFTextType, PhoneticType, YinBiaoOrKataType:
		return string(d.Data)
	case HTMLType:
		return html2text.HTML2Text(string(d.Data))
	default:
		return ""
	}
}

// Options are options for the dict data.
type Options struct {
	// SameTypeSequence is the sametypesequence option. When empty every data
	// item carries its own type byte.
	SameTypeSequence []DataType
}

// DefaultOptions is the default options for a Dict.
var DefaultOptions = &Options{}

// New returns a new Dict from the given reader. Dict takes ownership of the
// reader. The reader can be closed via the Dict's Close method.
func New(r io.ReaderAt, options *Options) (*Dict, error) {
	if options == nil {
		options = DefaultOptions
	}

	if err := validateSequence(options.SameTypeSequence); err != nil {
		return nil, err
	}

	d := &Dict{
		r:                r,
		sametypesequence: options.SameTypeSequence,
	}
	if c, ok := r.(io.Closer); ok {
		d.closers = append(d.closers, c)
	}
	return d, nil
}

// NewFromIfoPath returns a new Dict for the .dict or .dict.dz file that
// accompanies the given .ifo file.
func NewFromIfoPath(ifoPath string, options *Options) (*Dict, error) {
	f, err := Open(ifoPath)
	if err != nil {
		return nil, err
	}

	if !gzfile.IsCompressed(f.Name()) {
		return New(f, options)
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading dictzip header %q: %w", f.Name(), err)
	}
	d, err := New(z, options)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	d.closers = append(d.closers, f)
	return d, nil
}

// Exts are the .dict file extensions in the order they are searched.
var Exts = []string{
	".dict.dz",
	".dict",
	".dict.DZ",
	".DICT",
	".DICT.dz",
	".DICT.DZ",
}

// Open opens the .dict file given the path to the .ifo file.
func Open(ifoPath string) (*os.File, error) {
	baseName := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))

	f, err := gzfile.Find(baseName, Exts)
	if err != nil {
		return nil, fmt.Errorf("opening .dict file: %w", err)
	}
	return f, nil
}

// Word retrieves the word for the given index entry from the
// dictionary. Errors wrapping ErrInvalidData indicate that the article
// could not be read or decoded.
func (d *Dict) Word(e *idx.Word) (*Word, error) {
	// TODO(#9): Support dictionary word offsets math.MaxInt64 > x < math.MaxUint64
	if e.Offset > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %w: %d", ErrInvalidData, errWordOffsetTooLarge, e.Offset)
	}

	b := make([]byte, e.Size)
	// NOTE: if ReadAt does not read e.Size bytes then an error should be
	// returned.
	//nolint:gosec // offset size is bounds checked above.
	_, err := d.r.ReadAt(b, int64(e.Offset))
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %q extends past end of data: %w", ErrInvalidData, e.Word, err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	return Decode(b, d.sametypesequence)
}

// Close closes the dict file.
func (d *Dict) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing dict file: %w", err)
	}
	return nil
}
