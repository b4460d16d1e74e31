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

package folding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/transform"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "case",
			input:    "Hoge",
			expected: "hoge",
		},
		{
			name:     "german",
			input:    "Grüßen",
			expected: "grussen",
		},
		{
			name:     "punctuation",
			input:    "foo. bar?",
			expected: "foo bar",
		},
		{
			name:     "whitespace",
			input:    "　 こんにちは \t 世界 　 ",
			expected: "こんにちは 世界",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(Default(), test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Default (-want, +got):\n%s", diff)
			}
		})
	}
}
