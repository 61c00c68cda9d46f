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

package parser

import (
	"strconv"
	"strings"

	"github.com/nglevel/ngscript/classic"
	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/ngcmd"
	"github.com/nglevel/ngscript/symtab"
)

// handleDefine implements "#define NAME expr", "#define @name id" and
// "#define @plugins clear".
func (p *Parser) handleDefine(file string, lineNo int, line string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		p.d.Addf(diag.Parse, file, lineNo, "malformed #define: %q", line)
		return
	}

	if fields[1] == "@plugins" {
		if len(fields) == 3 && fields[2] == "clear" {
			p.tab.ClearPluginNames()
			return
		}
		p.d.Addf(diag.Parse, file, lineNo, "malformed #define @plugins: %q", line)
		return
	}

	if strings.HasPrefix(fields[1], "@") {
		if len(fields) != 3 {
			p.d.Addf(diag.Parse, file, lineNo, "malformed #define @name: %q", line)
			return
		}
		id, err := strconv.Atoi(fields[2])
		if err != nil {
			p.d.Addf(diag.Parse, file, lineNo, "#define %s: invalid plugin id %q", fields[1], fields[2])
			return
		}
		ok, dupID := p.tab.BindPluginName(fields[1], id)
		if dupID {
			p.d.Fatalf(diag.Reference, file, lineNo, "#define %s: id %d already bound under a different name", fields[1], id)
			return
		}
		if !ok {
			p.d.Addf(diag.Parse, file, lineNo, "#define %s: redefinition, second definition suppressed", fields[1])
		}
		return
	}

	name := fields[1]
	expr := strings.TrimSpace(strings.TrimPrefix(line, "#define"))
	expr = strings.TrimSpace(strings.TrimPrefix(expr, name))
	value, _, err := symtab.Eval(p.tab, file, expr)
	if err != nil {
		p.d.Addf(diag.Reference, file, lineNo, "#define %s: %v", name, err)
		return
	}
	if !p.tab.Define(file, name, value) {
		p.d.Addf(diag.Parse, file, lineNo, "#define %s: redefinition, second definition suppressed", name)
	}
}

// handleExtension fills in PSXExtensions/PCExtensions from an "N="
// directive inside [PSXExtensions]/[PCExtensions].
func (p *Parser) handleExtension(file string, lineNo int, cmd string, args []string) {
	name := strings.TrimSuffix(cmd, "=")
	slot, err := strconv.Atoi(name)
	if err != nil || slot < 0 || slot > 3 {
		p.d.Addf(diag.Parse, file, lineNo, "invalid extension slot %q", cmd)
		return
	}
	if len(args) == 0 {
		p.d.Addf(diag.Parse, file, lineNo, "%s: missing argument", cmd)
		return
	}
	value := args[0]
	if p.section == secPSXExt {
		p.model.PSXExtensions[slot] = value
	} else {
		p.model.PCExtensions[slot] = value
	}
}

// handleLanguageDirective collects "File= index, name" entries inside
// [Language] (e.g. "File= 0, english.txt"). The leading index is not
// used: files are recorded in the order they appear, and only the
// basename is kept.
func (p *Parser) handleLanguageDirective(file string, lineNo int, cmd string, args []string) {
	if !strings.EqualFold(cmd, "File=") {
		p.d.Addf(diag.Parse, file, lineNo, "unknown [Language] directive %q", cmd)
		return
	}
	if len(args) == 0 {
		p.d.Fatalf(diag.Parse, file, lineNo, "File=: missing argument")
		return
	}
	name := args[0]
	if len(args) > 1 {
		name = args[1]
	}
	p.model.LanguageFiles = append(p.model.LanguageFiles, strings.TrimSpace(name))
}

// optionsFlagBits maps an [Options] boolean-flag directive name to the
// bit it sets in ScriptModel.OptionsFlags (e.g. "LoadSave= ENABLED").
var optionsFlagBits = map[string]uint32{
	"LoadSave=": 1 << 0,
}

// handleOptionsDirective dispatches one [Options] line: Plugin=
// registers a symbol-table plugin and then falls through to NG
// encoding; options-only schema-catalog names route to the NG compiler; the
// remaining known boolean flags set a bit in OptionsFlags; anything
// else is a non-fatal unknown-directive warning.
func (p *Parser) handleOptionsDirective(file string, lineNo int, cmd string, args []string) {
	if strings.EqualFold(cmd, "Plugin=") {
		p.handlePluginDirective(file, lineNo, args)
		return
	}

	if schema, ok := ngcmd.Lookup(cmd); ok && schema.OptionsOnly {
		p.emitNGCommand(file, lineNo, cmd, args, schema, p.optionsCounters, p.model.Options)
		return
	}

	if bit, ok := optionsFlagBits[cmd]; ok {
		if len(args) > 0 && strings.EqualFold(strings.TrimSpace(args[0]), "ENABLED") {
			p.model.OptionsFlags |= bit
		}
		return
	}

	p.d.Addf(diag.Parse, file, lineNo, "unknown [Options] directive %q", cmd)
}

// handlePluginDirective parses "Plugin= id, name" and registers a
// plugin with that id and name and an empty constant table in the
// symbol table before the line is emitted as an NG command. No plugin
// descriptor or library file is looked for, so no plugin constants are
// loaded.
func (p *Parser) handlePluginDirective(file string, lineNo int, args []string) {
	if len(args) < 2 {
		p.d.Addf(diag.Parse, file, lineNo, "Plugin=: expected id and name")
		return
	}
	id, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		p.d.Addf(diag.Parse, file, lineNo, "Plugin=: invalid id %q", args[0])
		return
	}
	name := strings.TrimSpace(args[1])
	p.tab.AddPlugin(id, name, map[string]int32{})

	schema, ok := ngcmd.Lookup("Plugin=")
	if !ok {
		p.d.Addf(diag.Internal, file, lineNo, "Plugin=: schema missing from catalog")
		return
	}
	p.emitNGCommand(file, lineNo, "Plugin=", args[:1], schema, p.optionsCounters, p.model.Options)
}

// handleSectionDirective routes one [Level]/[Title] line to the
// classic compiler (by buffering it for later sorted emission) or the
// NG compiler, preferring the classic reserved list on a name
// collision. File=/CD= set Section's structural fields directly and
// never reach either compiler: a section's file path and CD number
// are plain attributes, not tag-dialect directives.
func (p *Parser) handleSectionDirective(file string, lineNo int, cmd string, args []string) {
	switch {
	case strings.EqualFold(cmd, "File="):
		if len(args) == 0 {
			p.d.Addf(diag.Parse, file, lineNo, "File=: missing argument")
			return
		}
		p.curSection.FilePath = strings.TrimSpace(args[0])
		return
	case strings.EqualFold(cmd, "CD="):
		if len(args) == 0 {
			p.d.Addf(diag.Parse, file, lineNo, "CD=: missing argument")
			return
		}
		v, _, err := symtab.Eval(p.tab, file, strings.TrimSpace(args[0]))
		if err != nil {
			p.d.Addf(diag.Reference, file, lineNo, "CD=: %v", err)
			return
		}
		p.curSection.CD = byte(v)
		return
	}

	if classic.IsReserved(cmd) {
		p.curSection.Lines = append(p.curSection.Lines, model.SourceLine{
			File:    file,
			Line:    lineNo,
			Command: cmd,
			Args:    args,
			Index:   len(p.curSection.Lines),
		})
		return
	}

	schema, ok := ngcmd.Lookup(cmd)
	if !ok {
		p.d.Addf(diag.Schema, file, lineNo, "unknown directive %q", cmd)
		return
	}
	if schema.OptionsOnly {
		p.d.Addf(diag.Schema, file, lineNo, "%s: only valid inside [Options]", cmd)
		return
	}
	p.emitNGCommand(file, lineNo, cmd, args, schema, p.levelCounters, p.curSection.NG)
}
