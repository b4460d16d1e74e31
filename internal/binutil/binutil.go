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

// Package binutil implements the fixed-width big-endian integer codecs used by
// the .idx and .syn record formats.
package binutil

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer indicates that a buffer is too small to hold the value being
// decoded.
var ErrShortBuffer = errors.New("short buffer")

// AppendUint32 appends v to dst in network byte order.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

// AppendUint64 appends v to dst in network byte order.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// Uint32 decodes a big-endian uint32 from the start of b.
func Uint32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes, have %d", ErrShortBuffer, len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint64 decodes a big-endian uint64 from the start of b.
func Uint64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("%w: need 8 bytes, have %d", ErrShortBuffer, len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}
