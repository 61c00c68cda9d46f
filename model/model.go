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

package model

// SectionKind distinguishes a [Level] section from a [Title] section.
type SectionKind int

const (
	// Level is a [Level] section.
	Level SectionKind = iota
	// Title is a [Title] section.
	Title
)

// Section tags, emitted at the start of a section's trailer, ahead of
// its flags, section index and CD fields and the terminator.
const (
	TagLevel       byte = 0x81
	TagTitle       byte = 0x82
	TagTerminator  byte = 0x83
)

// SourceLine is one directive line inside a [Level]/[Title] section,
// annotated with where it came from so diagnostics can point back at
// the original file. Raw lines retain their original order.
type SourceLine struct {
	File    string
	Line    int
	Command string // includes the trailing '='
	Args    []string
	Index   int // original position within the section; the classic sort is stable on SortKey alone
	SortKey int // assigned by the classic compiler
}

// Section is a single [Level] or [Title] block.
type Section struct {
	Kind        SectionKind
	LevelFlags  uint16
	DisplayName string // argument of Name=
	FilePath    string // argument of File=
	CD          uint8
	Lines       []SourceLine
	Payload     []byte // filled in by the classic compiler
	NG          *NGCommandGroup
	Index       int // position within ScriptModel.Sections
}

// ImportFile is one NG ImportFile registration.
type ImportFile struct {
	ID         int
	Mode       int
	FileType   int
	FileNumber int // numeric suffix of the base name, 0 if none
	FileName   string
	Data       []byte
}

// ScriptModel is the sole exchange medium between the Parser and the
// Classic/NG compilers and the Container Writer.
type ScriptModel struct {
	OptionsFlags  uint32
	InputTimeout  uint32
	Security      uint8
	Sections      []*Section
	PSXExtensions [4]string
	PCExtensions  [4]string
	LanguageFiles []string // basenames, without forced extension
	Options       *NGCommandGroup
	ImportFiles   []ImportFile
	Encrypt       bool // header-scramble the first 64 bytes of script.dat

	// Languages holds one parsed LanguageTable per entry in
	// LanguageFiles, in the same order.
	Languages []*LanguageTable
}

// NewScriptModel returns an empty, ready-to-populate ScriptModel.
func NewScriptModel() *ScriptModel {
	return &ScriptModel{
		Options: NewNGCommandGroup(),
	}
}
