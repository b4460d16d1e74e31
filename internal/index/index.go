// Copyright 2025 Ian Lewis
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


// Package index implements a sorted in-memory index of values by string key.
package index

import (
	"slices"
	"sort"
)

type entry[V any] struct {
	key   string
	value V
}

// Index is a generic sorted array index. Values are added with Add and the
// index is sorted with Sort before searching.
type Index[V any] struct {
	entries []entry[V]
	sorted  bool

	cmp func(string, string) int
}

// NewIndex creates an empty index that orders keys with the given comparison
// function. cmp(a, b) should return a negative number when a < b, a positive
// number when a > b and zero when a == b or a and b are incomparable in the
// sense of a strict weak ordering.
func NewIndex[V any](cmp func(string, string) int) *Index[V] {
	return &Index[V]{
		cmp: cmp,
	}
}

// Add adds a value with the given key.
func (idx *Index[V]) Add(key string, value V) {
	idx.entries = append(idx.entries, entry[V]{key: key, value: value})
	idx.sorted = false
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.entries)
}

// Sort sorts the index by key. Values with equal keys keep the order they
// were added in.
func (idx *Index[V]) Sort() {
	slices.SortStableFunc(idx.entries, func(a, b entry[V]) int {
		return idx.cmp(a.key, b.key)
	})
	idx.sorted = true
}

// Search performs a binary search over the index and returns the values whose
// key matches query. The index is sorted first if needed.
func (idx *Index[V]) Search(query string) []V {
	if !idx.sorted {
		idx.Sort()
	}

	i, found := sort.Find(len(idx.entries), func(i int) int {
		return idx.cmp(query, idx.entries[i].key)
	})
	if !found {
		return nil
	}

	var result []V
	for j := i; j < len(idx.entries) && idx.cmp(query, idx.entries[j].key) == 0; j++ {
		result = append(result, idx.entries[j].value)
	}
	return result
}
