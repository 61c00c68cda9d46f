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

package container

import (
	"bytes"

	"github.com/nglevel/ngscript/internal/ngi"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/trailer"
)

// stringXORKey obfuscates every language string byte.
const stringXORKey = 0xA5

// BuildLanguageFile emits one language.dat: 16-bit totals, the four
// section sizes, the offset table, then every string across all four
// sections, XOR-0xA5'd and NUL-terminated, followed by an optional
// ExtraNG NG trailer when that section is non-empty.
func BuildLanguageFile(t *model.LanguageTable) []byte {
	var buf bytes.Buffer
	w := ngi.NewErrWriter(&buf)

	w.U16(uint16(t.TotalCount()))
	w.U16(uint16(len(t.Strings[model.SecPSX])))
	w.U16(uint16(len(t.Strings[model.SecPC])))

	for _, size := range t.SectionSizes {
		w.U16(uint16(size))
	}
	for _, off := range t.Offsets {
		w.U16(uint16(off))
	}
	for sec := 0; sec < 4; sec++ {
		for _, s := range t.Strings[sec] {
			w.Write(xorBytes(s))
			w.Byte(0)
		}
	}

	if len(t.Strings[model.SecExtraNG]) > 0 {
		buf.Write(buildExtraNGTrailer(t))
	}

	return buf.Bytes()
}

func xorBytes(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = s[i] ^ stringXORKey
	}
	return out
}

// xorPreserveNUL XOR-obfuscates s like xorBytes but leaves NUL bytes
// untouched unencrypted, matching the ExtraNG trailer's encoding rule.
func xorPreserveNUL(s string) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			continue
		}
		out[i] = s[i] ^ stringXORKey
	}
	return out
}

// buildExtraNGTrailer implements the optional ExtraNG NG trailer: a
// single chunk (tag 0x800A) of count, then per entry an index word, a
// word-count word, and the XOR-packed text.
func buildExtraNGTrailer(t *model.LanguageTable) []byte {
	payload := []uint16{uint16(len(t.Strings[model.SecExtraNG]))}
	for i, text := range t.Strings[model.SecExtraNG] {
		encoded := xorPreserveNUL(text)
		wordCount := (len(encoded) + 1) / 2
		payload = append(payload, uint16(t.ExtraIndices[i]), uint16(wordCount))
		payload = append(payload, ngi.PackWords(encoded)...)
	}
	chunk := trailer.WriteChunk(tagExtraNGChunk, payload, false)
	return trailer.Assemble(chunk)
}
