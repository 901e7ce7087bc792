// Copyright 2025 the original author or authors.
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

// Package table provides an append-only mapping from integer keys to records.
package table

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrNotFound is returned when a key is not in a table.
	ErrNotFound = errors.New("key not found")

	// ErrDuplicateKey is returned when a key is added to a table that already
	// holds it.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrKeyCollision is returned when two tables being merged hold different
	// records under the same key.
	ErrKeyCollision = errors.New("key collision")

	// ErrMalformed is returned when an encoded table cannot be decoded.
	ErrMalformed = errors.New("malformed table")
)

// KeyError records a failed operation on a single key.
type KeyError struct {
	Kind string
	Key  int64
	Err  error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Kind, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// Entry is a record that knows how to encode itself.
type Entry interface {
	AppendBinary(b []byte) ([]byte, error)
}

// entryPtr is the pointer to an Entry that knows how to decode itself.
type entryPtr[V any] interface {
	*V
	encoding.BinaryUnmarshaler
}

// Table maps keys to records.  Records are stored and returned by value, so
// nothing handed out by a table aliases its storage.
type Table[K constraints.Integer, V Entry] struct {
	kind    string
	entries map[K]V
}

// New creates an empty table.  The kind names the records in errors.
func New[K constraints.Integer, V Entry](kind string) *Table[K, V] {
	return &Table[K, V]{
		kind:    kind,
		entries: make(map[K]V),
	}
}

// Kind returns the name of the records held in the table.
func (t *Table[K, V]) Kind() string {
	return t.kind
}

// Len returns the number of entries.
func (t *Table[K, V]) Len() int {
	return len(t.entries)
}

// Has reports whether the key is present.
func (t *Table[K, V]) Has(key K) bool {
	_, ok := t.entries[key]

	return ok
}

// Add inserts a new entry.  Adding a key that is already present fails with
// ErrDuplicateKey and leaves the table unchanged.
func (t *Table[K, V]) Add(key K, v V) error {
	if _, ok := t.entries[key]; ok {
		return t.keyError(key, ErrDuplicateKey)
	}

	t.entries[key] = v

	return nil
}

// Get returns the record stored under key, failing with ErrNotFound when the
// key is absent.
func (t *Table[K, V]) Get(key K) (V, error) {
	v, ok := t.entries[key]
	if !ok {
		var zero V

		return zero, t.keyError(key, ErrNotFound)
	}

	return v, nil
}

// Keys returns every key in ascending order.
func (t *Table[K, V]) Keys() []K {
	return slices.Sorted(maps.Keys(t.entries))
}

// All iterates over the entries in ascending key order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range t.Keys() {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// Check reports whether o can be merged into t.  A key held by both tables is
// acceptable only if both records encode identically; otherwise Check fails
// with ErrKeyCollision.
func (t *Table[K, V]) Check(o *Table[K, V]) error {
	small, large := t, o
	if large.Len() < small.Len() {
		small, large = large, small
	}

	// keys are visited in order so the reported collision is deterministic
	for _, key := range small.Keys() {
		other, ok := large.entries[key]
		if !ok {
			continue
		}

		same, err := equal(small.entries[key], other)
		if err != nil {
			return t.keyError(key, err)
		}

		if !same {
			return t.keyError(key, ErrKeyCollision)
		}
	}

	return nil
}

// Merge adds every entry of o that is not already in t.  Merge is
// all-or-nothing: on failure t is unchanged.
func (t *Table[K, V]) Merge(o *Table[K, V]) error {
	if err := t.Check(o); err != nil {
		return err
	}

	for key, v := range o.entries {
		if _, ok := t.entries[key]; !ok {
			t.entries[key] = v
		}
	}

	return nil
}

// AppendBinary appends the encoded table to b: the entry count followed by
// each key and length-prefixed record, in ascending key order.  Keys are
// delta coded against the previous key.
func (t *Table[K, V]) AppendBinary(b []byte) ([]byte, error) {
	var (
		rec  []byte
		prev int64
		err  error
	)

	b = protowire.AppendVarint(b, uint64(len(t.entries)))

	for key, v := range t.All() {
		if rec, err = v.AppendBinary(rec[:0]); err != nil {
			return nil, t.keyError(key, err)
		}

		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(key)-prev))
		b = protowire.AppendBytes(b, rec)

		prev = int64(key)
	}

	return b, nil
}

// Decode parses a table from the front of data and returns it along with the
// number of bytes consumed.
func Decode[K constraints.Integer, V Entry, P entryPtr[V]](kind string, data []byte) (*Table[K, V], int, error) {
	t := New[K, V](kind)

	count, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return nil, 0, t.malformed(protowire.ParseError(n))
	}

	off := n

	// every entry takes at least two bytes: its key and its record length
	if count > uint64(len(data)-off)/2 {
		return nil, 0, t.malformed(fmt.Errorf("%d entries cannot fit in %d bytes", count, len(data)-off))
	}

	var prev int64

	for i := range count {
		delta, n := protowire.ConsumeVarint(data[off:])
		if n < 0 {
			return nil, 0, t.malformed(protowire.ParseError(n))
		}

		off += n

		rec, n := protowire.ConsumeBytes(data[off:])
		if n < 0 {
			return nil, 0, t.malformed(protowire.ParseError(n))
		}

		off += n

		next := prev + protowire.DecodeZigZag(delta)
		if i > 0 && next <= prev {
			return nil, 0, t.malformed(fmt.Errorf("key %d follows %d", next, prev))
		}

		prev = next
		key := K(next)

		var v V
		if err := P(&v).UnmarshalBinary(rec); err != nil {
			return nil, 0, t.malformed(t.keyError(key, err))
		}

		if err := t.Add(key, v); err != nil {
			return nil, 0, t.malformed(err)
		}
	}

	return t, off, nil
}

func (t *Table[K, V]) keyError(key K, err error) error {
	return &KeyError{Kind: t.kind, Key: int64(key), Err: err}
}

func (t *Table[K, V]) malformed(err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformed, t.kind, err)
}

func equal[V Entry](a, b V) (bool, error) {
	ab, err := a.AppendBinary(nil)
	if err != nil {
		return false, err
	}

	bb, err := b.AppendBinary(nil)
	if err != nil {
		return false, err
	}

	return bytes.Equal(ab, bb), nil
}
