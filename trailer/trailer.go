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

package trailer

import "encoding/binary"

// MarkerNG is the 16-bit "NG" signature opening every NG trailer.
const MarkerNG uint16 = 0x474E

// SignatureNGLE is the 32-bit "NGLE" signature of the end record.
const SignatureNGLE uint32 = 0x454C474E

// maxSingleWordChunk is the largest chunk length (in words, including
// its own 1-word header and tag word) encodable without the DWORD-size
// escape.
const maxSingleWordChunk = 0x7FFF

// WriteChunk frames tag and payload as one NG chunk: a self-describing
// length header, the tag word, then the payload words unchanged. force
// forces the two-word DWORD-size escape header even when the chunk
// would fit in one word (ImportFile chunks always do this).
func WriteChunk(tag uint16, payload []uint16, force bool) []uint16 {
	single := 1 + 1 + len(payload) // count word + tag word + payload
	if !force && single <= maxSingleWordChunk {
		out := make([]uint16, 0, single)
		out = append(out, uint16(single))
		out = append(out, tag)
		out = append(out, payload...)
		return out
	}
	total := 2 + 1 + len(payload) // two count words + tag word + payload
	hi := uint16(0x8000 | (uint32(total) >> 16))
	lo := uint16(uint32(total) & 0xFFFF)
	out := make([]uint16, 0, total)
	out = append(out, hi, lo, tag)
	out = append(out, payload...)
	return out
}

// Assemble concatenates the "NG" marker, every chunk in order, the
// closing two zero words, and the "NGLE" end record, producing the
// complete byte-for-byte trailer.
func Assemble(chunks ...[]uint16) []byte {
	var words []uint16
	words = append(words, MarkerNG)
	for _, c := range chunks {
		words = append(words, c...)
	}
	words = append(words, 0, 0)

	body := make([]byte, len(words)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(body[i*2:], w)
	}

	totalSize := uint32(len(body) + 8)
	out := make([]byte, len(body)+8)
	copy(out, body)
	binary.LittleEndian.PutUint32(out[len(body):], SignatureNGLE)
	binary.LittleEndian.PutUint32(out[len(body)+4:], totalSize)
	return out
}
