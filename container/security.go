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
	"github.com/nglevel/ngscript/internal/ngi"
	"github.com/nglevel/ngscript/trailer"
)

// securityChunkWords/securityChunkBytes fix the security chunk payload
// at the midpoint of the 20-28 word range for this chunk kind; the
// exact production size is unknown, so this is a choice recorded in
// DESIGN.md.
const (
	securityChunkWords = 24
	securityChunkBytes = securityChunkWords * 2
)

// securityKeyTable XOR-scrambles the security chunk's payload bytes.
// The production table is unknown; these 13 bytes are a chosen
// stand-in documented in DESIGN.md, kept fixed so byte-exact
// determinism still holds for a given PRNG seed.
var securityKeyTable = [13]byte{
	0x4B, 0x19, 0xC3, 0x7E, 0x02, 0x91, 0x5D, 0xA8, 0x36, 0xF0, 0x6C, 0xE4, 0x1B,
}

// Position of the embedded verification bytes within the security
// chunk's byte buffer.
const (
	secPosLevelCount   = 5
	secPosOptionsFlags = 12
	secPosNGSettings   = 19
)

// PRNG is an injectable byte source for the security chunk. Tests fix
// a seed so byte-exact output is reproducible; production code passes
// a *math/rand.Rand directly.
type PRNG interface {
	// Intn returns a pseudo-random value in [0, n).
	Intn(n int) int
}

// BuildSecurityChunk fills the security chunk's raw payload: levelCount,
// the low byte of optionsFlags, and ngSettings are embedded as
// verification bytes, a checksum is stored at byte 0, and bytes 1..n
// are then XOR-scrambled.
func BuildSecurityChunk(rng PRNG, levelCount int, optionsFlags uint32, ngSettings uint8) []uint16 {
	buf := make([]byte, securityChunkBytes)
	for i := range buf {
		buf[i] = byte(rng.Intn(256))
	}
	buf[secPosLevelCount] = byte(levelCount)
	buf[secPosOptionsFlags] = byte(optionsFlags)
	buf[secPosNGSettings] = ngSettings

	sum := 0
	for _, b := range buf[1:] {
		sum += int(b)
	}
	buf[0] = byte(sum)

	for i := 1; i < len(buf); i++ {
		buf[i] ^= securityKeyTable[(i-1)%len(securityKeyTable)]
	}

	return ngi.PackWords(buf)
}

// BuildSecurityChunkFramed frames BuildSecurityChunk's payload as the
// Security NG chunk (tag 0x8016).
func BuildSecurityChunkFramed(rng PRNG, levelCount int, optionsFlags uint32, ngSettings uint8) []uint16 {
	return trailer.WriteChunk(tagSecurityChunk, BuildSecurityChunk(rng, levelCount, optionsFlags, ngSettings), false)
}
