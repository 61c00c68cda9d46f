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

import "github.com/nglevel/ngscript/model"

// Schema is one catalog entry: a command name, its tag code, the
// ordered argument-kind sequence, whether it is valid only inside
// [Options], and its occurrence cap (-1 = unlimited).
type Schema struct {
	Name        string
	Tag         byte
	Args        []model.ArgKind
	OptionsOnly bool
	MaxOccur    int

	// FlagBit is the bit set in the surrounding Options/Level flags
	// word for a Bool-only schema (Args == [Bool]); unused otherwise.
	// Bool-only commands do not emit any words.
	FlagBit uint16
}

const (
	tagAssignSlot        byte = 1
	tagTriggerGroup      byte = 21
	tagTriggerGroupWord  byte = 46
	tagCustomize         byte = 30
	tagParameters        byte = 31
	tagImportBind        byte = 40
	tagSetDemoMode       byte = 50
	tagLoadPalette       byte = 51
	tagLoadBitfield      byte = 52
	tagPlugin            byte = 60
)

// Catalog is the process-wide, read-mostly schema table. It is
// populated once at package init and never mutated at run time; only
// each Schema's running occurrence count changes, and that lives in a
// caller-owned Counters map, never here.
var Catalog = buildCatalog()

func buildCatalog() map[string]*Schema {
	schemas := []*Schema{
		{Name: "AssignSlot=", Tag: tagAssignSlot, Args: []model.ArgKind{model.ItemSlot, model.Long}, MaxOccur: -1},
		{Name: "TriggerGroup=", Tag: tagTriggerGroup, Args: []model.ArgKind{model.Word, model.Long, model.Long, model.Long}, MaxOccur: -1},
		{Name: "TriggerGroupWord=", Tag: tagTriggerGroupWord, Args: []model.ArgKind{model.Word, model.Word, model.Word, model.Word}, MaxOccur: -1},
		{Name: "Customize=", Tag: tagCustomize, Args: []model.ArgKind{model.Long, model.Word}, MaxOccur: -1},
		{Name: "Parameters=", Tag: tagParameters, Args: []model.ArgKind{model.Long, model.ArrayWord}, MaxOccur: -1},
		{Name: "ImportBind=", Tag: tagImportBind, Args: []model.ArgKind{model.Import, model.ItemSlot}, MaxOccur: -1},
		{Name: "SetDemoMode=", Tag: tagSetDemoMode, Args: []model.ArgKind{model.Bool}, OptionsOnly: true, MaxOccur: 1, FlagBit: 1 << 3},
		{Name: "LoadPalette=", Tag: tagLoadPalette, Args: []model.ArgKind{model.String, model.ArrayByte}, MaxOccur: -1},
		{Name: "LoadBitfield=", Tag: tagLoadBitfield, Args: []model.ArgKind{model.Word, model.ArrayNybble}, MaxOccur: -1},
		// Plugin= is still emitted via the NG schema path after the
		// parser registers the plugin (with an empty constant table)
		// in the symbol table.
		{Name: "Plugin=", Tag: tagPlugin, Args: []model.ArgKind{model.Word}, OptionsOnly: true, MaxOccur: -1},
	}
	m := make(map[string]*Schema, len(schemas))
	for _, s := range schemas {
		m[s.Name] = s
	}
	return m
}

// Lookup returns the schema registered for name, if any.
func Lookup(name string) (*Schema, bool) {
	s, ok := Catalog[name]
	return s, ok
}

// IsNGCommand reports whether name names a schema in the catalog and is
// therefore routed to the NG compiler rather than the classic one,
// unless the classic reserved list takes precedence.
func IsNGCommand(name string) bool {
	_, ok := Catalog[name]
	return ok
}
