// This file is part of ngscript - https://github.com/nglevel/ngscript
//
// Copyright 2024 The ngscript Authors
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

package model

// Language section indices, in the insertion order used when building
// the cumulative offset table.
const (
	SecGeneral = iota
	SecPSX
	SecPC
	SecExtraNG
	secCount
)

// ExtraIndex is the declared index of an [ExtraNG] entry ("index:
// text"), distinct from its position in LanguageTable.Strings[SecExtraNG].
type ExtraIndex = int

// LanguageTable holds one parsed language file: four string sections
// in insertion order, and a per-string cumulative byte offset table.
type LanguageTable struct {
	// Strings[SecGeneral], Strings[SecPSX] and Strings[SecPC] are
	// plain ordered string lists. Strings[SecExtraNG] holds the text
	// of each [ExtraNG] entry in file order; ExtraIndices holds the
	// matching declared index for each entry.
	Strings      [secCount][]string
	ExtraIndices []ExtraIndex

	// Tags[i][j] is the special tag (without its trailing ':') stripped
	// from Strings[i][j], or "" if none. ExtraNG entries never carry a
	// tag.
	Tags [secCount][]string

	// SectionSizes[i] is the cumulative byte size (string bytes + 1
	// NUL terminator per string) of Strings[i].
	SectionSizes [secCount]int

	// Offsets holds the cumulative byte offset of every string across
	// all four sections, in insertion order: offsets[i+1] ==
	// offsets[i] + bytelen(strings[i]) + 1.
	Offsets []int
}

// NewLanguageTable returns an empty LanguageTable.
func NewLanguageTable() *LanguageTable {
	return &LanguageTable{}
}

// FindString searches the general string section for s, returning its
// position. Used for Name= and other string-typed classic/NG arguments
// that resolve against normal strings before falling back to ExtraNG.
func (t *LanguageTable) FindString(s string) (int, bool) {
	for i, v := range t.Strings[SecGeneral] {
		if v == s {
			return i, true
		}
	}
	return 0, false
}

// FindExtra searches the declared ExtraNG indices for idx and returns
// its value OR'd with 0x8000, the encoding used by '!n' references and
// by a fallback-from-FindString miss.
func (t *LanguageTable) FindExtra(idx ExtraIndex) (int, bool) {
	for _, v := range t.ExtraIndices {
		if v == idx {
			return 0x8000 | idx, true
		}
	}
	return 0, false
}

// Resolve looks up s as a normal string first, then as ExtraNG text,
// returning the encoded index (high bit set for ExtraNG hits) and
// whether the lookup succeeded.
func (t *LanguageTable) Resolve(s string) (int, bool) {
	if i, ok := t.FindString(s); ok {
		return i, true
	}
	for i, v := range t.Strings[SecExtraNG] {
		if v == s {
			return 0x8000 | t.ExtraIndices[i], true
		}
	}
	return 0, false
}

// TotalCount returns the number of strings in the general+PSX+PC
// sections combined (the "total" header field of language.dat).
func (t *LanguageTable) TotalCount() int {
	return len(t.Strings[SecGeneral]) + len(t.Strings[SecPSX]) + len(t.Strings[SecPC])
}
