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
	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/trailer"
)

// BuildScriptDat assembles a complete script.dat: the body, the NG
// trailer (Options, Security, one chunk per section, ImportFiles, in
// that fixed order), and optional header encryption, in a two-phase
// sequence where the body is fully committed before the trailer's
// size-dependent framing is computed.
func BuildScriptDat(m *model.ScriptModel, rng PRNG, d *diag.Collector) []byte {
	body := BuildBody(m)

	levelCount := 0
	for _, sec := range m.Sections {
		if sec.Kind == model.Level {
			levelCount++
		}
	}

	chunks := [][]uint16{
		BuildOptionsChunk(m.Options),
		BuildSecurityChunkFramed(rng, levelCount, m.OptionsFlags, m.Security),
	}
	for _, sec := range m.Sections {
		chunk, ok := BuildLevelChunk(sec)
		if !ok {
			d.Fatalf(diag.Range, sec.FilePath, 0, "section %q: NG payload exceeds 32767 words", sec.DisplayName)
			continue
		}
		chunks = append(chunks, chunk)
	}
	for _, f := range m.ImportFiles {
		chunks = append(chunks, BuildImportFileChunk(f))
	}

	out := make([]byte, 0, len(body)+256)
	out = append(out, body...)
	out = append(out, trailer.Assemble(chunks...)...)

	if m.Encrypt {
		EncryptHeader(out)
	}
	return out
}
