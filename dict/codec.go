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

package dict

import (
	"bytes"
	"fmt"
	"math"

	"github.com/ianlewis/go-stardict/v2/internal/binutil"
)

// Decode decodes a word's article data. If sametypesequence is empty each data
// item is prefixed by its type byte. Otherwise the data items follow the
// sequence and the last item carries no terminator or size.
func Decode(b []byte, sametypesequence []DataType) (*Word, error) {
	if len(sametypesequence) > 0 {
		return decodeCompact(b, sametypesequence)
	}
	return decodeGeneral(b)
}

func decodeCompact(b []byte, sametypesequence []DataType) (*Word, error) {
	var wordData []*Data
	for i, t := range sametypesequence {
		var data []byte
		var err error
		if i == len(sametypesequence)-1 {
			// The last item extends to the end of the article.
			data, b = b, nil
		} else {
			data, b, err = next(t, b, true)
			if err != nil {
				return nil, err
			}
		}
		wordData = append(wordData, &Data{
			Type: t,
			Data: data,
		})
	}

	return &Word{
		Data: wordData,
	}, nil
}

func decodeGeneral(b []byte) (*Word, error) {
	var wordData []*Data
	for len(b) > 0 {
		t, err := ParseDataType(b[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
		}

		var data []byte
		// The terminator of the final string-like item is optional.
		data, b, err = next(t, b[1:], false)
		if err != nil {
			return nil, err
		}
		wordData = append(wordData, &Data{
			Type: t,
			Data: data,
		})
	}

	return &Word{
		Data: wordData,
	}, nil
}

// next reads the data item of type t from the start of b and returns it along
// with the remaining data.
func next(t DataType, b []byte, strict bool) ([]byte, []byte, error) {
	if t.IsFile() {
		size, err := binutil.Uint32(b)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v size: %w", ErrInvalidData, t, err)
		}
		b = b[4:]
		if uint64(size) > uint64(len(b)) {
			return nil, nil, fmt.Errorf("%w: %v data truncated: %d > %d", ErrInvalidData, t, size, len(b))
		}
		return b[:size], b[size:], nil
	}

	i := bytes.IndexByte(b, 0)
	if i < 0 {
		if strict {
			return nil, nil, fmt.Errorf("%w: %v missing terminator", ErrInvalidData, t)
		}
		return b, nil, nil
	}
	return b[:i], b[i+1:], nil
}

// AppendGeneral appends the data items to dst, each prefixed by its type byte.
func AppendGeneral(dst []byte, data []*Data) ([]byte, error) {
	for _, d := range data {
		dst = append(dst, byte(d.Type))
		var err error
		dst, err = appendItem(dst, d)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// AppendCompact appends the data items to dst without type bytes. The last
// item is written without a terminator or size.
func AppendCompact(dst []byte, data []*Data) ([]byte, error) {
	for i, d := range data {
		if i == len(data)-1 {
			dst = append(dst, d.Data...)
			break
		}
		var err error
		dst, err = appendItem(dst, d)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func appendItem(dst []byte, d *Data) ([]byte, error) {
	if d.Type.IsFile() {
		if uint64(len(d.Data)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %v data too large: %d", ErrInvalidData, d.Type, len(d.Data))
		}
		//nolint:gosec // length is bounds checked above.
		dst = binutil.AppendUint32(dst, uint32(len(d.Data)))
		return append(dst, d.Data...), nil
	}
	if bytes.IndexByte(d.Data, 0) >= 0 {
		return nil, fmt.Errorf("%w: %v data contains a null byte", ErrInvalidData, d.Type)
	}
	dst = append(dst, d.Data...)
	return append(dst, 0), nil
}
