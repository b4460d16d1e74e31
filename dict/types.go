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
	"fmt"
)

// DataType is a type of data in a word. Data types are specified by a single
// byte at the beginning of a word. Lower case characters represent string-like
// data that is terminated by a null terminator ('\0'). Upper case characters
// represent file-like data that starts with a 32-bit size followed by file
// data.
type DataType byte

const (
	// UTFTextType is utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in the Pango text format.
	PangoTextType = DataType('g')

	// PhoneticType is utf-8 text representing an English phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is utf-8 encoded xml in XDXF format.
	XDXFType = DataType('x')

	// YinBiaoOrKataType is utf-8 encoded Yin Biao or Kana phonetic string.
	YinBiaoOrKataType = DataType('y')

	// PowerWordType is a utf-8 encoded KingSoft PowerWord XML format.
	PowerWordType = DataType('p')

	// MediaWikiType is utf-8 encoded text in MediaWiki format.
	MediaWikiType = DataType('w')

	// HTMLType is utf-8 encoded HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of files in resource storage.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound file data.
	WavType = DataType('W')

	// PictureType is image file data. This was used by the
	// stardict-advertisement-plugin. Images are better stored in a resource
	// file list.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

// dataTypes is the set of known data types.
var dataTypes = map[DataType]struct{}{
	UTFTextType:          {},
	LocaleTextType:       {},
	PangoTextType:        {},
	PhoneticType:         {},
	XDXFType:             {},
	YinBiaoOrKataType:    {},
	PowerWordType:        {},
	MediaWikiType:        {},
	HTMLType:             {},
	WordNetType:          {},
	ResourceFileListType: {},
	WavType:              {},
	PictureType:          {},
	ExperimentalType:     {},
}

// ParseDataType returns the data type for the type byte b.
func ParseDataType(b byte) (DataType, error) {
	t := DataType(b)
	if _, ok := dataTypes[t]; !ok {
		return 0, fmt.Errorf("%w: %q", errInvalidType, b)
	}
	return t, nil
}

// ParseSequence parses a sametypesequence value.
func ParseSequence(s string) ([]DataType, error) {
	var seq []DataType
	for i := 0; i < len(s); i++ {
		t, err := ParseDataType(s[i])
		if err != nil {
			return nil, fmt.Errorf("sametypesequence %q: %w", s, err)
		}
		seq = append(seq, t)
	}
	return seq, nil
}

// IsFile returns true if the data type is file-like data prefixed by its size.
func (t DataType) IsFile() bool {
	return 'A' <= t && t <= 'Z'
}

// String returns the type letter.
func (t DataType) String() string {
	return string(rune(t))
}

func validateSequence(seq []DataType) error {
	for _, t := range seq {
		if _, ok := dataTypes[t]; !ok {
			return fmt.Errorf("%w: %v", errInvalidType, t)
		}
	}
	return nil
}
