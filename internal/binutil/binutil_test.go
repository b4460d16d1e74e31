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

package binutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendUint(t *testing.T) {
	t.Parallel()

	b := AppendUint32([]byte{'a'}, 0x01020304)
	b = AppendUint64(b, 0x05060708090a0b0c)

	expected := []byte{'a', 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	if diff := cmp.Diff(expected, b); diff != "" {
		t.Fatalf("Append (-want, +got):\n%s", diff)
	}
}

func TestUint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   []byte
		bits   int
		expect uint64
		err    error
	}{
		{
			name:   "uint32",
			data:   []byte{0xff, 0xff, 0xff, 0xff},
			bits:   32,
			expect: 0xffffffff,
		},
		{
			name:   "uint32 trailing data",
			data:   []byte{0, 0, 1, 0, 9},
			bits:   32,
			expect: 256,
		},
		{
			name: "uint32 short",
			data: []byte{0, 0, 1},
			bits: 32,
			err:  ErrShortBuffer,
		},
		{
			name:   "uint64",
			data:   []byte{0, 0, 0, 1, 0, 0, 0, 0},
			bits:   64,
			expect: 1 << 32,
		},
		{
			name: "uint64 short",
			data: []byte{0, 0, 0, 1},
			bits: 64,
			err:  ErrShortBuffer,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			var got uint64
			var err error
			if test.bits == 64 {
				got, err = Uint64(test.data)
			} else {
				var v uint32
				v, err = Uint32(test.data)
				got = uint64(v)
			}
			if !errors.Is(err, test.err) {
				t.Fatalf("unexpected error; want: %v, got: %v", test.err, err)
			}
			if want := test.expect; want != got {
				t.Fatalf("unexpected value; want: %d, got: %d", want, got)
			}
		})
	}
}
