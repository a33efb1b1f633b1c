// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package sliceedit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindAll(t *testing.T) {
	tests := []struct {
		name string
		buf  string
		item string
		want []int
	}{
		{"empty item", "abc", "", []int{}},
		{"not found", "abc", "x", []int{}},
		{"several", "<a>x</a><a>y</a>", "</a>", []int{4, 12}},
		{"non overlapping", "aaaa", "aa", []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAll([]byte(tt.buf), tt.item)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAll() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuffer_Insert(t *testing.T) {
	src := []byte(`<a href="x">x</a><a href="y">y</a>`)

	b := NewBuffer(src)
	if n := b.InsertAfterAll("</a>", "</li>"); n != 2 {
		t.Errorf("InsertAfterAll() = %d, want 2", n)
	}
	if n := b.InsertBeforeAll("<a ", "<li>"); n != 2 {
		t.Errorf("InsertBeforeAll() = %d, want 2", n)
	}

	want := `<li><a href="x">x</a></li><li><a href="y">y</a></li>`
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// The original data is not modified
	if string(src) != `<a href="x">x</a><a href="y">y</a>` {
		t.Errorf("source modified: %q", src)
	}
}
