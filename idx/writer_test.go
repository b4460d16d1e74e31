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

package idx_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-stardict/v2/idx"
	"github.com/ianlewis/go-stardict/v2/internal/testutil"
)

// TestWriter tests that Writer output matches the fixture encoding and can be
// scanned back.
func TestWriter(t *testing.T) {
	t.Parallel()

	words := []*idx.Word{
		{
			Word:   "apple",
			Offset: 0,
			Size:   10,
		},
		{
			Word:   "Banana",
			Offset: 10,
			Size:   3,
		},
	}

	for _, bits := range []int{32, 64} {
		var buf bytes.Buffer
		w, err := idx.NewWriter(&buf, &idx.Options{OffsetBits: bits})
		if err != nil {
			t.Fatal(err)
		}
		for _, word := range words {
			if err := w.Write(word); err != nil {
				t.Fatalf("Write: %v", err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}

		expected := testutil.MakeIndex(words, bits)
		if diff := cmp.Diff(expected, buf.Bytes()); diff != "" {
			t.Fatalf("%d bit index (-want, +got):\n%s", bits, diff)
		}
		if want, got := int64(len(expected)), w.Size(); want != got {
			t.Fatalf("Size; want: %d, got: %d", want, got)
		}
		if want, got := len(words), w.Count(); want != got {
			t.Fatalf("Count; want: %d, got: %d", want, got)
		}

		s, err := idx.NewScanner(io.NopCloser(&buf), &idx.ScannerOptions{OffsetBits: bits})
		if err != nil {
			t.Fatal(err)
		}
		var got []*idx.Word
		for s.Scan() {
			got = append(got, s.Word())
		}
		if err := s.Err(); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(words, got); diff != "" {
			t.Fatalf("%d bit scan (-want, +got):\n%s", bits, diff)
		}
	}
}

// TestWriter_limits tests offset width and word validation.
func TestWriter_limits(t *testing.T) {
	t.Parallel()

	w, err := idx.NewWriter(io.Discard, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = w.Write(&idx.Word{Word: "big", Offset: 1 << 32})
	if !errors.Is(err, idx.ErrInvalidIdxOffset) {
		t.Fatalf("Write: want %v, got %v", idx.ErrInvalidIdxOffset, err)
	}
	if err := w.Write(&idx.Word{Word: "nul\x00word"}); err == nil {
		t.Fatal("Write: expected failure")
	}
	if err := w.Write(&idx.Word{Word: ""}); err == nil {
		t.Fatal("Write: expected failure")
	}
	if err := w.Write(&idx.Word{Word: strings.Repeat("a", idx.MaxWordSize+1)}); err == nil {
		t.Fatal("Write: expected failure")
	}
	if err := w.Write(&idx.Word{Word: strings.Repeat("a", idx.MaxWordSize)}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want, got := 1, w.Count(); want != got {
		t.Fatalf("Count; want: %d, got: %d", want, got)
	}
}

// TestOffsetEncoder tests OffsetEncoder.
func TestOffsetEncoder(t *testing.T) {
	t.Parallel()

	enc, err := idx.NewOffsetEncoder(64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := enc.Append(nil, 1<<33, 7)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := enc.Size(), len(b); want != got {
		t.Fatalf("len; want: %d, got: %d", want, got)
	}
	offset, size, err := enc.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if offset != 1<<33 || size != 7 {
		t.Fatalf("Decode; want: (%d, %d), got: (%d, %d)", uint64(1<<33), 7, offset, size)
	}
	if _, _, err := enc.Decode(b[:10]); !errors.Is(err, idx.ErrCorrupt) {
		t.Fatalf("Decode: want %v, got %v", idx.ErrCorrupt, err)
	}
}
