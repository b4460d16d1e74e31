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

// Package gzfile opens dictionary files that may be gzip compressed.
package gzfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

type readCloser struct {
	*gzip.Reader
	f *os.File
}

func (r *readCloser) Close() error {
	//nolint:wrapcheck // errors are wrapped by the caller.
	return errors.Join(r.Reader.Close(), r.f.Close())
}

// IsCompressed returns true if the path has a .gz or .dz extension.
func IsCompressed(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".gz" || ext == ".dz"
}

// NewReader returns a reader for f that decompresses the file's contents if
// the file name has a .gz or .dz extension. Dictzip files are valid gzip
// files. Closing the returned reader closes f.
func NewReader(f *os.File) (io.ReadCloser, error) {
	if !IsCompressed(f.Name()) {
		return f, nil
	}
	z, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating gzip reader for %q: %w", f.Name(), err)
	}
	return &readCloser{Reader: z, f: f}, nil
}

// Find opens the first file that exists named baseName plus one of exts.
func Find(baseName string, exts []string) (*os.File, error) {
	var err error
	for _, ext := range exts {
		var f *os.File
		f, err = os.Open(baseName + ext)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening %q: %w", baseName+ext, err)
		}
	}
	//nolint:wrapcheck // the last not-exist error is returned as-is.
	return nil, err
}

// Remove removes each file named baseName plus one of exts that exists.
func Remove(baseName string, exts []string) error {
	for _, ext := range exts {
		err := os.Remove(baseName + ext)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing %q: %w", baseName+ext, err)
		}
	}
	return nil
}
