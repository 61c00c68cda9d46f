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
)

const extensionBlockSize = 20

// BuildBody emits the script.dat body: everything before the NG
// trailer. Level-path and section offsets are relative to the start of
// their own region, mirroring the cumulative-from-zero convention
// package model.LanguageTable uses for string offsets (a choice
// recorded in DESIGN.md, since file-absolute vs. region-relative is
// otherwise undetermined).
func BuildBody(m *model.ScriptModel) []byte {
	var buf bytes.Buffer
	w := ngi.NewErrWriter(&buf)

	levelPaths := make([]string, 0, len(m.Sections))
	for _, sec := range m.Sections {
		if sec.Kind == model.Level {
			levelPaths = append(levelPaths, sec.FilePath)
		}
	}

	levelPathBytes := 0
	for _, p := range levelPaths {
		levelPathBytes += len(p) + 1
	}
	sectionPayloadBytes := 0
	for _, sec := range m.Sections {
		sectionPayloadBytes += len(sec.Payload)
	}

	w.U32(m.OptionsFlags)
	w.U32(m.InputTimeout)
	w.Byte(m.Security)
	w.Byte(byte(len(m.Sections)))
	w.U16(uint16(len(levelPaths)))
	w.U16(uint16(levelPathBytes))
	w.U16(uint16(sectionPayloadBytes))
	w.Write(extensionBlock(m.PSXExtensions))
	w.Write(extensionBlock(m.PCExtensions))

	levelOffsets := make([]uint16, len(levelPaths))
	off := 0
	for i, p := range levelPaths {
		levelOffsets[i] = uint16(off)
		off += len(p) + 1
	}
	for _, o := range levelOffsets {
		w.U16(o)
	}
	for _, p := range levelPaths {
		w.CString(p)
	}

	sectionOffsets := make([]uint16, len(m.Sections))
	off = 0
	for i, sec := range m.Sections {
		sectionOffsets[i] = uint16(off)
		off += len(sec.Payload)
	}
	for _, o := range sectionOffsets {
		w.U16(o)
	}
	for _, sec := range m.Sections {
		w.Write(sec.Payload)
	}

	for _, name := range m.LanguageFiles {
		w.CString(forceDAT(name))
	}

	return buf.Bytes()
}

func extensionBlock(exts [4]string) []byte {
	var flat []byte
	for i, e := range exts {
		if i > 0 {
			flat = append(flat, 0)
		}
		flat = append(flat, e...)
	}
	out := make([]byte, extensionBlockSize)
	copy(out, flat)
	return out
}

// forceDAT rewrites name's extension to .DAT regardless of what it was.
func forceDAT(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i] + ".DAT"
		}
		if name[i] == '/' || name[i] == '\\' {
			break
		}
	}
	return name + ".DAT"
}
