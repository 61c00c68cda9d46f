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

package ngcmd

import (
	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
)

// Encode fills cmd.Words per schema, enforcing counters' occurrence
// cap. It returns false (leaving cmd.Words nil) when the cap is
// exceeded or the argument list is malformed, after recording a fatal
// diagnostic -- no bytes are ever produced for a rejected command.
// String arguments must already carry their resolved language-table
// index in Arg.Value; resolving Arg.Text against a model.LanguageTable
// is the caller's job, done before Encode runs, mirroring
// classic.resolveStringArg's eager resolution.
func Encode(cmd *model.NGCommand, schema *Schema, counters Counters, group *model.NGCommandGroup, d *diag.Collector) bool {
	if !counters.Check(schema) {
		d.Fatalf(diag.Occurrence, cmd.File, cmd.Line, "%s: exceeds maximum occurrence count %d", schema.Name, schema.MaxOccur)
		return false
	}

	if isBoolOnly(schema) {
		if schema.OptionsOnly {
			group.OptionsFlags |= schema.FlagBit
		} else {
			group.LevelFlags |= schema.FlagBit
		}
		cmd.Words = nil
		return true
	}

	if len(cmd.Args) != len(schema.Args) {
		d.Fatalf(diag.Schema, cmd.File, cmd.Line, "%s: expected %d arguments, got %d", schema.Name, len(schema.Args), len(cmd.Args))
		return false
	}

	applyPluginPacking(schema, cmd.Args)

	payload, ok := encodeArgs(cmd, schema.Args, d)
	if !ok {
		return false
	}
	if len(payload) > 0xFF {
		d.Fatalf(diag.Range, cmd.File, cmd.Line, "%s: payload of %d words exceeds the 255-word header count field", schema.Name, len(payload))
		return false
	}

	words := make([]uint16, 0, 1+len(payload))
	words = append(words, header(schema.Tag, len(payload)))
	words = append(words, payload...)
	cmd.Words = words

	if schema.Tag == tagTriggerGroup {
		if downgraded, ok := tryDowngradeTriggerGroup(cmd); ok {
			cmd.Words = downgraded
		}
	}
	return true
}

func isBoolOnly(s *Schema) bool {
	return len(s.Args) == 1 && s.Args[0] == model.Bool
}

// header packs tag and payloadWords into the command header word.
// Callers must already have rejected payloadWords > 0xFF with a
// diagnostic; the mask here is just the wire format's field width, not
// a substitute for that check.
func header(tag byte, payloadWords int) uint16 {
	return uint16(tag)<<8 | uint16(payloadWords&0xFF)
}

// applyPluginPacking implements the plugin-id packing rule: for
// AssignSlot, argument 1's plugin id goes in the high 16 bits of its
// Long value; for Customize and Parameters, argument 0's does.
func applyPluginPacking(schema *Schema, args []model.NGArg) {
	var idx int
	switch schema.Tag {
	case tagAssignSlot:
		idx = 1
	case tagCustomize, tagParameters:
		idx = 0
	default:
		return
	}
	if idx >= len(args) {
		return
	}
	a := &args[idx]
	if a.PluginID != 0 {
		a.Value = (a.Value & 0xFFFF) | int64(a.PluginID)<<16
	}
}

func encodeArgs(cmd *model.NGCommand, kinds []model.ArgKind, d *diag.Collector) ([]uint16, bool) {
	var words []uint16
	for i, kind := range kinds {
		arg := cmd.Args[i]
		if kind.IsArray() && i != len(kinds)-1 {
			d.Fatalf(diag.Internal, cmd.File, cmd.Line, "%s: array argument must be last", cmd.Name)
			return nil, false
		}
		switch kind {
		case model.Word, model.Integer, model.ItemSlot, model.Import, model.String:
			words = append(words, uint16(arg.Value))
		case model.Long:
			words = append(words, uint16(arg.Value), uint16(arg.Value>>16))
		case model.ArrayWord:
			for _, v := range arg.Array {
				words = append(words, uint16(v))
			}
		case model.ArrayLong:
			for _, v := range arg.Array {
				words = append(words, uint16(v), uint16(v>>16))
			}
		case model.ArrayByte:
			words = append(words, packArrayByte(arg.Array)...)
		case model.ArrayNybble:
			words = append(words, packArrayNybble(arg.Array)...)
		default:
			d.Fatalf(diag.Internal, cmd.File, cmd.Line, "%s: unsupported argument kind %s", cmd.Name, kind)
			return nil, false
		}
	}
	return words, true
}

// packArrayByte implements the ArrayByte word cost table: a leading
// count byte, then N raw bytes, even-padded, packed two bytes per
// little-endian word.
func packArrayByte(vals []int64) []uint16 {
	buf := make([]byte, 0, 1+len(vals))
	buf = append(buf, byte(len(vals)))
	for _, v := range vals {
		buf = append(buf, byte(v))
	}
	return packBytes(buf)
}

// packArrayNybble packs a count byte followed by 4-bit values two per
// byte, low nibble first, then even-pads and words the result.
func packArrayNybble(vals []int64) []uint16 {
	buf := make([]byte, 0, 1+(len(vals)+1)/2)
	buf = append(buf, byte(len(vals)))
	for i := 0; i < len(vals); i += 2 {
		lo := byte(vals[i]) & 0x0F
		hi := byte(0)
		if i+1 < len(vals) {
			hi = byte(vals[i+1]) & 0x0F
		}
		buf = append(buf, lo|hi<<4)
	}
	return packBytes(buf)
}

func packBytes(buf []byte) []uint16 {
	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	words := make([]uint16, len(buf)/2)
	for i := range words {
		words[i] = uint16(buf[2*i]) | uint16(buf[2*i+1])<<8
	}
	return words
}

// tryDowngradeTriggerGroup implements the tag 21 -> tag 46 optimization:
// if the 3 Long fields all fit in 16 bits (sign-or-zero-extended),
// re-encode as TriggerGroupWord with word-sized payload elements.
func tryDowngradeTriggerGroup(cmd *model.NGCommand) ([]uint16, bool) {
	if len(cmd.Args) != 4 {
		return nil, false
	}
	longs := []int64{cmd.Args[1].Value, cmd.Args[2].Value, cmd.Args[3].Value}
	for _, v := range longs {
		hi := uint32(v) & 0xFFFF0000
		if hi != 0 && hi != 0xFFFF0000 {
			return nil, false
		}
	}
	payload := []uint16{
		uint16(cmd.Args[0].Value),
		uint16(longs[0]),
		uint16(longs[1]),
		uint16(longs[2]),
	}
	words := make([]uint16, 0, 1+len(payload))
	words = append(words, header(tagTriggerGroupWord, len(payload)))
	words = append(words, payload...)
	return words, true
}
