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

// Package sortlist implements append-then-sorted-iterate lists used to order
// the .idx and .syn records before they are written. Two backends are
// provided: an in-memory slice and a SQLite table that spills to disk so that
// dictionaries with millions of headwords can be sorted in bounded memory.
//
// Both backends order items by the key (Lower(Key), Key, Seq). Seq is the
// insertion ordinal of the item, so items with equal keys keep the order in
// which they were appended regardless of the backend.
package sortlist

import (
	"bytes"
	"strings"
)

// Item is a list entry. Key is the sort key (a headword) and Value is an
// opaque payload written after the key.
type Item struct {
	Key   []byte
	Value []byte

	// Seq is the insertion ordinal of the item. It is assigned by the list
	// on Append.
	Seq uint64
}

// List is an append-only list that can be iterated in sorted order.
type List interface {
	// Append adds an item to the list. The item's Seq is ignored and set to
	// the number of items appended before it.
	Append(item Item) error

	// Len returns the number of items in the list.
	Len() int

	// Sort prepares the list for iteration.
	Sort() error

	// Iter returns an iterator over the items in sorted order.
	Iter() (Iterator, error)

	// Close releases all resources held by the list.
	Close() error
}

// Iterator iterates over the items of a List.
type Iterator interface {
	// Next advances to the next item. It returns false at the end of the
	// list or when an error occurs.
	Next() bool

	// Item returns the current item.
	Item() Item

	// Err returns the first error encountered.
	Err() error

	// Close closes the iterator.
	Close() error
}

// Lower returns the case-folded primary sort key for key.
func Lower(key []byte) []byte {
	return []byte(strings.ToLower(string(key)))
}

// compare orders two items by their lowered key, then their original key
// bytes, then their insertion order.
func compare(aLower, bLower []byte, a, b *Item) int {
	if c := bytes.Compare(aLower, bLower); c != 0 {
		return c
	}
	if c := bytes.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	default:
		return 0
	}
}
