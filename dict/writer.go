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

package dict

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// Writer writes word articles to a .dict file.
type Writer struct {
	w   *bufio.Writer
	buf []byte

	sametypesequence []DataType

	offset uint64
}

// NewWriter returns a new Writer that writes articles to w. If the options
// include a sametypesequence, articles are written in compact form and each
// word's data must match the sequence.
func NewWriter(w io.Writer, options *Options) (*Writer, error) {
	if options == nil {
		options = DefaultOptions
	}
	if err := validateSequence(options.SameTypeSequence); err != nil {
		return nil, err
	}
	return &Writer{
		w:                bufio.NewWriter(w),
		sametypesequence: options.SameTypeSequence,
	}, nil
}

// Write appends the word's article and returns the offset and size of the
// article in the .dict file.
func (w *Writer) Write(word *Word) (uint64, uint32, error) {
	var err error
	if len(w.sametypesequence) > 0 {
		if len(word.Data) != len(w.sametypesequence) {
			return 0, 0, fmt.Errorf("%w: %d data items for sametypesequence of length %d",
				ErrInvalidData, len(word.Data), len(w.sametypesequence))
		}
		w.buf, err = AppendCompact(w.buf[:0], word.Data)
	} else {
		w.buf, err = AppendGeneral(w.buf[:0], word.Data)
	}
	if err != nil {
		return 0, 0, err
	}
	if uint64(len(w.buf)) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: article too large: %d", ErrInvalidData, len(w.buf))
	}

	offset := w.offset
	n, err := w.w.Write(w.buf)
	w.offset += uint64(n)
	if err != nil {
		return 0, 0, fmt.Errorf("writing dictionary: %w", err)
	}
	//nolint:gosec // size is bounds checked above.
	return offset, uint32(n), nil
}

// Offset returns the number of bytes written, which is the offset of the
// next article.
func (w *Writer) Offset() uint64 {
	return w.offset
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing dictionary: %w", err)
	}
	return nil
}
