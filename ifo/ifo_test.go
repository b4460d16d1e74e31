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

package ifo

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestIfo tests Ifo
func TestIfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		expect func(*testing.T, *Ifo)
		err    bool
	}{
		{
			name: "magic and version",
			data: `test magic
version=1.0.0`,
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := "test magic", i.Magic(); want != got {
					t.Fatalf("magic; want: %q, got: %q", want, got)
				}
				if want, got := "1.0.0", i.Value("version"); want != got {
					t.Fatalf("version; want: %q, got: %q", want, got)
				}
			},
		},
		{
			name: "no banner",
			data: "version=2.4.2\nbookname=test",
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := "", i.Magic(); want != got {
					t.Fatalf("magic; want: %q, got: %q", want, got)
				}
				if want, got := "test", i.Value("bookname"); want != got {
					t.Fatalf("bookname; want: %q, got: %q", want, got)
				}
			},
		},
		{
			name: "duplicate keys and description",
			data: Magic + "\r\nversion=2.4.2\r\nbookname=a\r\nbookname=b\r\ndescription=one<br>two\r\n",
			expect: func(t *testing.T, i *Ifo) {
				t.Helper()
				if want, got := "b", i.Value("bookname"); want != got {
					t.Fatalf("bookname; want: %q, got: %q", want, got)
				}
				if want, got := "one\ntwo", i.Value("description"); want != got {
					t.Fatalf("description; want: %q, got: %q", want, got)
				}
				if diff := cmp.Diff([]string{"version", "bookname", "description"}, i.Keys()); diff != "" {
					t.Fatalf("Keys (-want, +got):\n%s", diff)
				}
			},
		},
		{
			name: "invalid key",
			data: Magic + "\nversion=2.4.2\nbook name=a",
			err:  true,
		},
		{
			name: "missing version",
			data: `test magic`,
			err:  true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			i, err := New(bytes.NewReader([]byte(test.data)))
			if test.err && err == nil {
				t.Fatal("New: expected failure")
			}
			if !test.err && err != nil {
				t.Fatalf("New: %v", err)
			}
			if test.expect != nil {
				test.expect(t, i)
			}
		})
	}
}

// TestIfo_WriteTo tests that WriteTo orders keys and encodes values.
func TestIfo_WriteTo(t *testing.T) {
	t.Parallel()

	i := &Ifo{}
	i.Set("bookname", "Test\nDictionary")
	i.Set("description", "line one\nline two")
	i.Set("wordcount", "2")
	i.Set("version", "3.0.0")
	i.Set("website", "")

	var b bytes.Buffer
	n, err := i.WriteTo(&b)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if want, got := int64(b.Len()), n; want != got {
		t.Fatalf("WriteTo; want: %d, got: %d", want, got)
	}

	want := Magic + "\n" +
		"version=3.0.0\n" +
		"bookname=Test Dictionary\n" +
		"wordcount=2\n" +
		"description=line one<br>line two\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Fatalf("WriteTo (-want, +got):\n%s", diff)
	}

	parsed, err := New(&b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if want, got := Magic, parsed.Magic(); want != got {
		t.Fatalf("magic; want: %q, got: %q", want, got)
	}
	if want, got := "line one\nline two", parsed.Value("description"); want != got {
		t.Fatalf("description; want: %q, got: %q", want, got)
	}

	if _, err := (&Ifo{}).WriteTo(&b); err == nil {
		t.Fatal("WriteTo: expected failure without version")
	}
}

// TestIfo_longLines tests lines past the bufio.Scanner default token size.
func TestIfo_longLines(t *testing.T) {
	t.Parallel()

	desc := strings.Repeat("a", 100000)

	i := &Ifo{}
	i.Set("version", "3.0.0")
	i.Set("description", desc)

	var b bytes.Buffer
	if _, err := i.WriteTo(&b); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	parsed, err := New(&b)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if want, got := len(desc), len(parsed.Value("description")); want != got {
		t.Fatalf("description length; want: %d, got: %d", want, got)
	}

	i.Set("description", strings.Repeat("a", MaxLineSize))
	if _, err := i.WriteTo(&b); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("WriteTo; want: %v, got: %v", ErrLineTooLong, err)
	}

	long := "version=3.0.0\nbookname=" + strings.Repeat("a", MaxLineSize) + "\n"
	if _, err := New(strings.NewReader(long)); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("New; want: %v, got: %v", ErrLineTooLong, err)
	}
}
