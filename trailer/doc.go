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

// Package trailer implements the chunk-framing primitives shared by
// script.dat's NG trailer and language.dat's ExtraNG trailer: the "NG"
// marker, a chunk's self-describing length header (single-word, or the
// two-word DWORD-size escape for chunks whose count word, tag word and
// payload together exceed 0x7FFF words), and the
// closing two zero words plus "NGLE" end record.
//
// These are pure functions over word/byte slices, so each chunk shape
// can be unit tested in isolation without assembling a whole
// container.
package trailer
