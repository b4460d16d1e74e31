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

package sortlist

import (
	"slices"
)

type memoryItem struct {
	lower []byte
	item  Item
}

// Memory is a List that keeps all items in memory. The items are sorted the
// first time the list is iterated.
type Memory struct {
	items  []memoryItem
	sorted bool
}

// NewMemory returns a new empty in-memory list.
func NewMemory() *Memory {
	return &Memory{}
}

// Append implements [List.Append].
func (m *Memory) Append(item Item) error {
	item.Seq = uint64(len(m.items))
	m.items = append(m.items, memoryItem{
		lower: Lower(item.Key),
		item:  item,
	})
	m.sorted = false
	return nil
}

// Len implements [List.Len].
func (m *Memory) Len() int {
	return len(m.items)
}

// Sort implements [List.Sort]. Sorting is deferred until iteration.
func (*Memory) Sort() error {
	return nil
}

// Iter implements [List.Iter].
func (m *Memory) Iter() (Iterator, error) {
	if !m.sorted {
		slices.SortFunc(m.items, func(a, b memoryItem) int {
			return compare(a.lower, b.lower, &a.item, &b.item)
		})
		m.sorted = true
	}
	return &memoryIterator{items: m.items, i: -1}, nil
}

// Close implements [List.Close].
func (m *Memory) Close() error {
	m.items = nil
	return nil
}

type memoryIterator struct {
	items []memoryItem
	i     int
}

func (it *memoryIterator) Next() bool {
	if it.i+1 >= len(it.items) {
		it.i = len(it.items)
		return false
	}
	it.i++
	return true
}

func (it *memoryIterator) Item() Item {
	return it.items[it.i].item
}

func (*memoryIterator) Err() error {
	return nil
}

func (*memoryIterator) Close() error {
	return nil
}
