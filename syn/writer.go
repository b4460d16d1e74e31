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

package syn

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-stardict/v2/idx"
	"github.com/ianlewis/go-stardict/v2/internal/binutil"
)

var errInvalidWord = errors.New("invalid word")

// Writer writes .syn file records.
type Writer struct {
	w   *bufio.Writer
	buf []byte

	count int
}

// NewWriter returns a new Writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single record. Records must be written in sorted order.
func (w *Writer) Write(word *Word) error {
	if word.Word == "" || len(word.Word) > idx.MaxWordSize || bytes.IndexByte([]byte(word.Word), 0) >= 0 {
		return fmt.Errorf("%w: %q", errInvalidWord, word.Word)
	}

	w.buf = append(w.buf[:0], word.Word...)
	w.buf = append(w.buf, 0)
	w.buf = binutil.AppendUint32(w.buf, word.OriginalWordIndex)
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("writing synonym index: %w", err)
	}
	w.count++
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing synonym index: %w", err)
	}
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}
