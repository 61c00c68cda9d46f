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

package classic

import (
	"bytes"
	"encoding/binary"

	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/symtab"
)

// Compile emits sec's classic byte stream, updating sec.Payload and
// sec.LevelFlags in place. lang may be nil when no language file has
// been loaded yet; a nil lang makes every text lookup fail ('#n', '!n'
// and '&hex' references still resolve), matching the eager resolution
// the dialect requires.
func Compile(sec *model.Section, lang *model.LanguageTable, tab *symtab.Table, d *diag.Collector) {
	AssignSortKeys(sec.Lines)
	StableSort(sec.Lines)

	var buf bytes.Buffer
	var sawLoadCamera, sawName bool
	var nameIndex int

	for _, line := range sec.Lines {
		switch line.Command {
		case "LoadCamera=":
			sawLoadCamera = true
			encodeLoadCamera(&buf, line, tab, d)
		case "Name=":
			sawName = true
			if len(line.Args) == 0 {
				d.Fatalf(diag.Parse, line.File, line.Line, "Name=: missing argument")
				break
			}
			sec.DisplayName = line.Args[0]
			idx, ok := resolveStringArg(line.Args[0], lang)
			if !ok {
				d.Fatalf(diag.Reference, line.File, line.Line, "Name=: string %q not found", line.Args[0])
				break
			}
			nameIndex = idx
		case "YoungLara=", "Horizon=":
			sec.LevelFlags |= flagBits[line.Command]
		case "FMV=":
			encodeFMV(&buf, line, tab, d)
		case "Cut=":
			encodeByteArg(&buf, tagCut, line, tab, d)
		case "ResidentCut1=", "ResidentCut2=", "ResidentCut3=", "ResidentCut4=":
			slot := int(line.Command[len("ResidentCut")] - '1')
			encodeByteArg(&buf, tagResidentCut1+byte(slot), line, tab, d)
		case "Layer1=":
			encodeLong(&buf, tagLayer1, line, tab, d)
		case "Layer2=":
			encodeLong(&buf, tagLayer2, line, tab, d)
		case "UVRotate=":
			encodeByteArg(&buf, tagUVRotate, line, tab, d)
		case "ResetHUB=":
			encodeByteArg(&buf, tagResetHUB, line, tab, d)
		case "Legend=":
			encodeLegend(&buf, line, lang, d)
		case "LensFlare=":
			encodeLensFlare(&buf, line, tab, d)
		case "Mirror=":
			encodeMirror(&buf, line, tab, d)
		case "Fog=":
			encodeFog(&buf, line, tab, d)
		case "AnimatingMIP=":
			encodeAnimatingMIP(&buf, line, tab, d)
		case "Key=", "Puzzle=", "Pickup=", "Examine=":
			encodeInventory(&buf, line, lang, tab, d)
		case "KeyCombo=", "PuzzleCombo=", "PickupCombo=":
			encodeInventoryCombo(&buf, line, lang, tab, d)
		default:
			d.Add(diag.Schema, line.File, line.Line, "unknown classic directive "+line.Command)
		}
	}

	if !sawLoadCamera {
		file, ln := sectionLoc(sec)
		d.Fatalf(diag.Schema, file, ln, "section missing required LoadCamera= directive")
	}
	if sec.Kind == model.Level && !sawName {
		file, ln := sectionLoc(sec)
		d.Fatalf(diag.Schema, file, ln, "Level section missing required Name= directive")
	}

	switch sec.Kind {
	case model.Level:
		buf.WriteByte(model.TagLevel)
		buf.WriteByte(byte(nameIndex))
	case model.Title:
		buf.WriteByte(model.TagTitle)
	}
	writeU16(&buf, sec.LevelFlags)
	buf.WriteByte(byte(sec.Index))
	buf.WriteByte(sec.CD)
	buf.WriteByte(model.TagTerminator)

	sec.Payload = buf.Bytes()
}

func sectionLoc(sec *model.Section) (string, int) {
	if len(sec.Lines) > 0 {
		return sec.Lines[0].File, sec.Lines[0].Line
	}
	return sec.FilePath, 0
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func evalArg(line model.SourceLine, n int, tab *symtab.Table, d *diag.Collector) int64 {
	if n >= len(line.Args) {
		d.Fatalf(diag.Parse, line.File, line.Line, "%s: missing argument %d", line.Command, n+1)
		return 0
	}
	v, err := parseNumber(line.Args[n], tab, line.File)
	if err != nil {
		d.Fatalf(diag.Reference, line.File, line.Line, "%s: %v", line.Command, err)
		return 0
	}
	return v
}

func encodeFMV(buf *bytes.Buffer, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	index := evalArg(line, 0, tab, d)
	var trigger int64
	if len(line.Args) > 1 {
		trigger = evalArg(line, 1, tab, d)
	}
	buf.WriteByte(tagFMV)
	b := byte(index)
	if trigger == 1 {
		b |= 0x80
	}
	buf.WriteByte(b)
}

func encodeByteArg(buf *bytes.Buffer, tag byte, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	v := evalArg(line, 0, tab, d)
	buf.WriteByte(tag)
	buf.WriteByte(byte(v))
}

func encodeLong(buf *bytes.Buffer, tag byte, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	v := evalArg(line, 0, tab, d)
	buf.WriteByte(tag)
	writeU32(buf, uint32(v))
}

func encodeAnimatingMIP(buf *bytes.Buffer, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	slot := evalArg(line, 0, tab, d)
	distance := evalArg(line, 1, tab, d)
	buf.WriteByte(tagAnimatingMIP)
	buf.WriteByte(byte(distance*16 + (slot - 1)))
}

func encodeLoadCamera(buf *bytes.Buffer, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	buf.WriteByte(tagLoadCamera)
	for i := 0; i < 6; i++ {
		writeU32(buf, uint32(evalArg(line, i, tab, d)))
	}
	buf.WriteByte(byte(evalArg(line, 6, tab, d)))
}

func encodeLegend(buf *bytes.Buffer, line model.SourceLine, lang *model.LanguageTable, d *diag.Collector) {
	if len(line.Args) == 0 {
		d.Fatalf(diag.Parse, line.File, line.Line, "Legend=: missing argument")
		return
	}
	idx, ok := resolveStringArg(line.Args[0], lang)
	if !ok {
		d.Add(diag.Reference, line.File, line.Line, "Legend=: string not found, defaulting to 0")
		idx = 0
	}
	buf.WriteByte(tagLegend)
	buf.WriteByte(byte(idx))
}

func encodeLensFlare(buf *bytes.Buffer, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	buf.WriteByte(tagLensFlare)
	for i := 0; i < 3; i++ {
		v := evalArg(line, i, tab, d)
		writeU16(buf, uint16(v/256))
	}
	for i := 3; i < 6; i++ {
		buf.WriteByte(byte(evalArg(line, i, tab, d)))
	}
}

func encodeMirror(buf *bytes.Buffer, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	buf.WriteByte(tagMirror)
	buf.WriteByte(byte(evalArg(line, 0, tab, d)))
	writeU32(buf, uint32(evalArg(line, 1, tab, d)))
}

func encodeFog(buf *bytes.Buffer, line model.SourceLine, tab *symtab.Table, d *diag.Collector) {
	buf.WriteByte(tagFog)
	for i := 0; i < 3; i++ {
		buf.WriteByte(byte(evalArg(line, i, tab, d)))
	}
}

// encodeInventory handles Key=/Puzzle=/Pickup=/Examine=: item number,
// then a string reference, then 6 numeric words.
func encodeInventory(buf *bytes.Buffer, line model.SourceLine, lang *model.LanguageTable, tab *symtab.Table, d *diag.Collector) {
	base, ok := inventoryBase(line.Command)
	if !ok {
		d.Add(diag.Internal, line.File, line.Line, "unreachable: "+line.Command)
		return
	}
	item := evalArg(line, 0, tab, d)
	if item < 1 || item > maxInventoryItem {
		d.Fatalf(diag.Range, line.File, line.Line, "%s: item %d out of range 1-%d", line.Command, item, maxInventoryItem)
		return
	}
	buf.WriteByte(base + byte(item-1))
	strIdx, ok := resolveStringArg(arg(line, 1), lang)
	if !ok {
		d.Addf(diag.Reference, line.File, line.Line, "%s: string not found, defaulting to 0", line.Command)
		strIdx = 0
	}
	writeU16(buf, uint16(strIdx))
	for i := 2; i < 8; i++ {
		writeU16(buf, uint16(evalArg(line, i, tab, d)))
	}
}

// encodeInventoryCombo handles KeyCombo=/PuzzleCombo=/PickupCombo=:
// item number, piece (1 or 2), string reference, then 6 numeric words.
func encodeInventoryCombo(buf *bytes.Buffer, line model.SourceLine, lang *model.LanguageTable, tab *symtab.Table, d *diag.Collector) {
	base, ok := inventoryComboBase(line.Command)
	if !ok {
		d.Add(diag.Internal, line.File, line.Line, "unreachable: "+line.Command)
		return
	}
	item := evalArg(line, 0, tab, d)
	piece := evalArg(line, 1, tab, d)
	if item < 1 || item > maxInventoryItem {
		d.Fatalf(diag.Range, line.File, line.Line, "%s: item %d out of range 1-%d", line.Command, item, maxInventoryItem)
		return
	}
	if piece != 1 && piece != 2 {
		d.Fatalf(diag.Range, line.File, line.Line, "%s: piece must be 1 or 2", line.Command)
		return
	}
	buf.WriteByte(base + byte(2*(item-1)+(piece-1)))
	strIdx, ok := resolveStringArg(arg(line, 2), lang)
	if !ok {
		d.Addf(diag.Reference, line.File, line.Line, "%s: string not found, defaulting to 0", line.Command)
		strIdx = 0
	}
	writeU16(buf, uint16(strIdx))
	for i := 3; i < 9; i++ {
		writeU16(buf, uint16(evalArg(line, i, tab, d)))
	}
}

func arg(line model.SourceLine, n int) string {
	if n >= len(line.Args) {
		return ""
	}
	return line.Args[n]
}

func inventoryBase(cmd string) (byte, bool) {
	switch cmd {
	case "Key=":
		return tagKeyBase, true
	case "Puzzle=":
		return tagPuzzleBase, true
	case "Pickup=":
		return tagPickupBase, true
	case "Examine=":
		return tagExamineBase, true
	default:
		return 0, false
	}
}

func inventoryComboBase(cmd string) (byte, bool) {
	switch cmd {
	case "KeyCombo=":
		return tagKeyComboBase, true
	case "PuzzleCombo=":
		return tagPuzComboBase, true
	case "PickupCombo=":
		return tagPikComboBase, true
	default:
		return 0, false
	}
}
