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


// Package ifo reads and writes stardict .ifo metadata files.
package ifo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Magic is the banner line that starts every .ifo file.
const Magic = "StarDict's dict ifo file"

// MaxLineSize is the longest line, without its line ending, that can be read
// or written.
const MaxLineSize = 16 << 20

const (
	versionKey     = "version"
	descriptionKey = "description"
)

var keyRegex = regexp.MustCompile("^[a-zA-Z0-9-_]+$")

var errMissingVersion = errors.New("missing version")

// ErrLineTooLong indicates that a key and value do not fit in MaxLineSize.
var ErrLineTooLong = errors.New("line too long")

// Ifo is the metadata of a stardict dictionary.
type Ifo struct {
	magic  string
	keys   []string
	values map[string]string
}

// New reads an .ifo file from r. The banner line is optional when reading;
// duplicate keys take the last value.
func New(r io.Reader) (*Ifo, error) {
	i := &Ifo{
		values: map[string]string{},
	}

	s := bufio.NewScanner(r)
	// Allow room for a "\r\n" line ending.
	s.Buffer(make([]byte, 0, 4096), MaxLineSize+2)
	first := true
	for s.Scan() {
		line := strings.TrimSuffix(s.Text(), "\r")
		if first {
			first = false
			if !strings.Contains(line, "=") {
				i.magic = strings.TrimSpace(line)
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid line: %q", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("invalid key: %q", key)
		}
		if key == descriptionKey {
			value = strings.ReplaceAll(value, "<br>", "\n")
		}
		i.Set(key, value)
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrLineTooLong, err)
		}
		return nil, err
	}

	if i.Value(versionKey) == "" {
		return nil, errMissingVersion
	}

	return i, nil
}

// Magic returns the banner line of the file. It is empty when the banner
// was missing.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value for key or the empty string.
func (i *Ifo) Value(key string) string {
	return i.values[key]
}

// Keys returns the keys in the order they were first set.
func (i *Ifo) Keys() []string {
	return append([]string(nil), i.keys...)
}

// Set sets the value of key. Setting an existing key keeps its position.
func (i *Ifo) Set(key, value string) {
	if i.values == nil {
		i.values = map[string]string{}
	}
	if _, ok := i.values[key]; !ok {
		i.keys = append(i.keys, key)
	}
	i.values[key] = value
}

// WriteTo writes the .ifo file to w. The banner comes first, then version,
// the remaining keys in insertion order and description last. Empty values
// are omitted.
func (i *Ifo) WriteTo(w io.Writer) (int64, error) {
	if i.Value(versionKey) == "" {
		return 0, errMissingVersion
	}

	var b strings.Builder
	b.WriteString(Magic)
	b.WriteString("\n")
	if err := writeKV(&b, versionKey, i.Value(versionKey)); err != nil {
		return 0, err
	}
	for _, key := range i.keys {
		if key == versionKey || key == descriptionKey {
			continue
		}
		if !keyRegex.MatchString(key) {
			return 0, fmt.Errorf("invalid key: %q", key)
		}
		if err := writeKV(&b, key, collapseNewlines(i.values[key])); err != nil {
			return 0, err
		}
	}
	if desc := i.Value(descriptionKey); desc != "" {
		desc = strings.ReplaceAll(desc, "\r\n", "\n")
		if err := writeKV(&b, descriptionKey, strings.ReplaceAll(desc, "\n", "<br>")); err != nil {
			return 0, err
		}
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func writeKV(b *strings.Builder, key, value string) error {
	if value == "" {
		return nil
	}
	if len(key)+1+len(value) > MaxLineSize {
		return fmt.Errorf("%w: %s", ErrLineTooLong, key)
	}
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(value)
	b.WriteString("\n")
	return nil
}

func collapseNewlines(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " ")
}
