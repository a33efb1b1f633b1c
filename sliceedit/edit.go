// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit extends the functionalities of rsc.io/edit to
// queue insertions around every occurrence of a marker in a byte slice.
// All the edits are applied at once, with a single allocation.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
// Edits at the same position are applied in the order they were queued.
type Buffer struct {
	ed  *edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data slice.
// The returned buffer maintains a reference to the data, so the caller must ensure
// the data is not modified until after the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{
		ed:  edit.NewBuffer(buf),
		buf: buf, // Only for our searches, it is never modified
	}
}

// FindAll finds all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// InsertBeforeAll inserts text before every occurrence of s.
// It returns the number of occurrences found.
func (b *Buffer) InsertBeforeAll(s string, text string) int {
	hits := FindAll(b.buf, s)
	for _, hit := range hits {
		b.ed.Insert(hit, text)
	}
	return len(hits)
}

// InsertAfterAll inserts text after every occurrence of s.
// It returns the number of occurrences found.
func (b *Buffer) InsertAfterAll(s string, text string) int {
	hits := FindAll(b.buf, s)
	for _, hit := range hits {
		b.ed.Insert(hit+len(s), text)
	}
	return len(hits)
}

// Bytes returns a new byte slice containing the original data
// with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data
// with the queued edits applied.
func (b *Buffer) String() string {
	return b.ed.String()
}
