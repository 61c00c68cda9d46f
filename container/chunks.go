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
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/trailer"
)

// NG trailer chunk tags.
const (
	tagOptionsChunk    uint16 = 0x800B
	tagSecurityChunk   uint16 = 0x8016
	tagLevelChunk      uint16 = 0x800C
	tagImportFileChunk uint16 = 0x801F
	tagExtraNGChunk    uint16 = 0x800A
)

// Embedded headers for the FlagsOption/FlagsLevel pseudo-commands that
// close the Options and Level chunks.
const (
	headerFlagsOption uint16 = 200<<8 | 1
	headerFlagsLevel  uint16 = 201<<8 | 1
)

func groupWords(g *model.NGCommandGroup) []uint16 {
	var words []uint16
	if g == nil {
		return words
	}
	for _, cmd := range g.Commands {
		words = append(words, cmd.Words...)
	}
	return words
}

// BuildOptionsChunk frames the Options NG commands plus the embedded
// FlagsOption header.
func BuildOptionsChunk(g *model.NGCommandGroup) []uint16 {
	payload := groupWords(g)
	payload = append(payload, headerFlagsOption, g.OptionsFlags, 0)
	return trailer.WriteChunk(tagOptionsChunk, payload, false)
}

// BuildLevelChunk frames one Level/Title section's NG commands plus its
// embedded FlagsLevel header. It reports a payload-too-large error
// when the section's words exceed 32767, which is fatal.
func BuildLevelChunk(sec *model.Section) ([]uint16, bool) {
	payload := groupWords(sec.NG)
	payload = append(payload, headerFlagsLevel, sec.LevelFlags, 0)
	if len(payload) > 0x7FFF {
		return nil, false
	}
	return trailer.WriteChunk(tagLevelChunk, payload, false), true
}

// BuildImportFileChunk frames one ImportFile registration, always
// using the DWORD size escape.
func BuildImportFileChunk(f model.ImportFile) []uint16 {
	var payload []uint16
	payload = append(payload,
		uint16(f.ID),
		uint16(f.Mode),
		uint16(f.FileType),
		uint16(f.FileNumber),
	)
	nameBytes := make([]byte, importFilenameFieldBytes)
	copy(nameBytes, f.FileName)
	payload = append(payload, ngi.PackWords(nameBytes)...)
	payload = append(payload, uint16(len(f.Data)), uint16(len(f.Data)>>16))
	payload = append(payload, ngi.PackWords(append([]byte(nil), f.Data...))...)
	return trailer.WriteChunk(tagImportFileChunk, payload, true)
}

// importFilenameFieldBytes is the fixed 80-byte (40-word) padded
// filename field of an ImportFile chunk.
const importFilenameFieldBytes = 80
