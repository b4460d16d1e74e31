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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxWordSize is the longest word, in bytes, that can be written to an
// index.
const MaxWordSize = 255

var errInvalidWord = errors.New("invalid word")

// Writer writes .idx file records.
type Writer struct {
	w   *bufio.Writer
	enc OffsetEncoder
	buf []byte

	size  int64
	count int
}

// NewWriter returns a new Writer that writes records to w. Only the
// OffsetBits option is used.
func NewWriter(w io.Writer, options *Options) (*Writer, error) {
	if options == nil {
		options = DefaultOptions
	}
	enc, err := NewOffsetEncoder(options.OffsetBits)
	if err != nil {
		return nil, err
	}
	return &Writer{
		w:   bufio.NewWriter(w),
		enc: enc,
	}, nil
}

// Write writes a single record. Records must be written in sorted order.
func (w *Writer) Write(word *Word) error {
	if word.Word == "" || len(word.Word) > MaxWordSize || bytes.IndexByte([]byte(word.Word), 0) >= 0 {
		return fmt.Errorf("%w: %q", errInvalidWord, word.Word)
	}

	var err error
	w.buf = append(w.buf[:0], word.Word...)
	w.buf = append(w.buf, 0)
	w.buf, err = w.enc.Append(w.buf, word.Offset, word.Size)
	if err != nil {
		return err
	}

	n, err := w.w.Write(w.buf)
	w.size += int64(n)
	if err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	w.count++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing index: %w", err)
	}
	return nil
}

// Size returns the number of bytes written.
func (w *Writer) Size() int64 {
	return w.size
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}
