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
	"fmt"
	"math"

	"github.com/ianlewis/go-stardict/v2/internal/binutil"
)

// OffsetEncoder encodes the offset and size fields that follow each word in
// the .idx file. Offsets are 32 or 64 bits wide and sizes are always 32 bits.
type OffsetEncoder struct {
	bits int
}

// NewOffsetEncoder returns an encoder for the given idxoffsetbits value.
func NewOffsetEncoder(bits int) (OffsetEncoder, error) {
	if bits != 32 && bits != 64 {
		return OffsetEncoder{}, fmt.Errorf("%w: %v", ErrInvalidIdxOffset, bits)
	}
	return OffsetEncoder{bits: bits}, nil
}

// Bits returns the width of the offset field in bits.
func (e OffsetEncoder) Bits() int {
	return e.bits
}

// Size returns the number of bytes in an encoded offset and size.
func (e OffsetEncoder) Size() int {
	return e.bits/8 + 4
}

// Max returns the largest offset that can be encoded.
func (e OffsetEncoder) Max() uint64 {
	if e.bits == 64 {
		return math.MaxUint64
	}
	return math.MaxUint32
}

// Append appends the encoded offset and size to dst.
func (e OffsetEncoder) Append(dst []byte, offset uint64, size uint32) ([]byte, error) {
	if offset > e.Max() {
		return dst, fmt.Errorf("%w: offset %d exceeds %d bits", ErrInvalidIdxOffset, offset, e.bits)
	}
	if e.bits == 64 {
		dst = binutil.AppendUint64(dst, offset)
	} else {
		//nolint:gosec // offset is bounds checked above.
		dst = binutil.AppendUint32(dst, uint32(offset))
	}
	return binutil.AppendUint32(dst, size), nil
}

// Decode decodes an offset and size from the start of b.
func (e OffsetEncoder) Decode(b []byte) (offset uint64, size uint32, err error) {
	if e.bits == 64 {
		offset, err = binutil.Uint64(b)
	} else {
		var o uint32
		o, err = binutil.Uint32(b)
		offset = uint64(o)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("%w: offset: %w", ErrCorrupt, err)
	}
	size, err = binutil.Uint32(b[e.bits/8:])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: size: %w", ErrCorrupt, err)
	}
	return offset, size, nil
}
