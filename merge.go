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

package stardict

import (
	"github.com/ianlewis/go-stardict/v2/internal/sortlist"
)

// writeMerged adds an index row for every headword of an article. All rows
// share the article's offset and size so readers that ignore .syn files
// still find alternates. Rows with equal sort keys keep the order they were
// added in, which keeps headwords whose articles redirect to each other in a
// stable relative order.
func (w *Writer) writeMerged(words []string, mark []byte) error {
	for _, word := range words {
		if err := w.idxList.Append(sortlist.Item{
			Key:   []byte(word),
			Value: mark,
		}); err != nil {
			return err
		}
	}
	w.count++
	return nil
}
