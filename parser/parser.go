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
	"os"
	"path/filepath"
	"strings"

	"github.com/nglevel/ngscript/classic"
	"github.com/nglevel/ngscript/cp1252"
	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/langfile"
	"github.com/nglevel/ngscript/lex"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/ngcmd"
	"github.com/nglevel/ngscript/symtab"
)

// section identifies the bracketed context the scanner is currently
// inside, one of the fixed set of recognized section headers.
type section int

const (
	secNone section = iota
	secPSXExt
	secPCExt
	secLanguage
	secOptions
	secTitle
	secLevel
)

func sectionFromHeader(s string) (section, bool) {
	norm := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	switch norm {
	case "[PSXEXTENSIONS]":
		return secPSXExt, true
	case "[PCEXTENSIONS]":
		return secPCExt, true
	case "[LANGUAGE]":
		return secLanguage, true
	case "[OPTIONS]":
		return secOptions, true
	case "[TITLE]":
		return secTitle, true
	case "[LEVEL]":
		return secLevel, true
	default:
		return secNone, false
	}
}

// openFile is one frame of the parser's include stack: a concrete
// stack of open-file descriptors with current line counters. The
// running line number lives in sc, per file.
type openFile struct {
	path string
	f    *os.File
	sc   *lex.Scanner
}

// Parser drives directive parsing end to end, mutating a single
// ScriptModel and SymbolTable; both are touched only from this one
// goroutine.
type Parser struct {
	d   *diag.Collector
	tab *symtab.Table

	model   *model.ScriptModel
	stack   []*openFile
	section section
	baseDir string

	optionsEntered  bool
	optionsCounters ngcmd.Counters

	curSection    *model.Section
	levelCounters ngcmd.Counters
}

// New returns a Parser ready to compile into a fresh ScriptModel,
// reporting diagnostics to d and resolving symbols through tab (tab is
// expected to already carry the engine/slot/static constant layers).
func New(d *diag.Collector, tab *symtab.Table) *Parser {
	return &Parser{
		d:               d,
		tab:             tab,
		model:           model.NewScriptModel(),
		optionsCounters: ngcmd.NewCounters(),
	}
}

// Parse reads mainPath and every file it pulls in with Include=, returning the
// populated ScriptModel. Parsing stops as soon as a fatal diagnostic is
// recorded.
func (p *Parser) Parse(mainPath string) (*model.ScriptModel, error) {
	p.baseDir = filepath.Dir(mainPath)
	if !p.pushFile(mainPath) {
		return p.model, p.d
	}

	for len(p.stack) > 0 && !p.d.Fatal() {
		top := p.stack[len(p.stack)-1]
		line, lineNo, ok := top.sc.Next()
		if !ok {
			if err := top.sc.Err(); err != nil {
				p.d.Fatalf(diag.Resource, top.path, lineNo, "read failed: %v", err)
			}
			p.tab.ClearDefines(top.path)
			top.f.Close()
			p.stack = p.stack[:len(p.stack)-1]
			continue
		}
		if line == "" {
			continue
		}
		p.handleLine(top.path, lineNo, line)
	}

	if p.curSection != nil {
		p.closeSection()
	}
	if p.d.Fatal() {
		return p.model, p.d
	}
	return p.model, nil
}

func (p *Parser) pushFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		p.d.Fatalf(diag.Resource, path, 0, "cannot open %s: %v", path, err)
		return false
	}
	p.stack = append(p.stack, &openFile{
		path: path,
		f:    f,
		sc:   lex.NewScanner(cp1252.NewReader(f)),
	})
	return true
}

func resolveInclude(fromFile, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(fromFile), name)
}

func (p *Parser) handleLine(file string, lineNo int, line string) {
	if strings.HasPrefix(line, "[") {
		if sec, ok := sectionFromHeader(line); ok {
			p.enterSection(sec, file, lineNo)
			return
		}
		p.d.Addf(diag.Parse, file, lineNo, "unknown section header %q", line)
		return
	}
	if strings.HasPrefix(line, "#define") {
		p.handleDefine(file, lineNo, line)
		return
	}

	cmd, args, ok := lex.SplitCommand(line)
	if !ok {
		p.d.Addf(diag.Parse, file, lineNo, "malformed directive (missing '='): %q", line)
		return
	}

	if strings.EqualFold(cmd, "Include=") {
		if len(args) == 0 {
			p.d.Fatalf(diag.Parse, file, lineNo, "Include=: missing filename")
			return
		}
		p.pushFile(resolveInclude(file, lex.UnquoteArg(args[0])))
		return
	}

	switch p.section {
	case secPSXExt, secPCExt:
		p.handleExtension(file, lineNo, cmd, args)
	case secLanguage:
		p.handleLanguageDirective(file, lineNo, cmd, args)
	case secOptions:
		p.handleOptionsDirective(file, lineNo, cmd, args)
	case secLevel, secTitle:
		p.handleSectionDirective(file, lineNo, cmd, args)
	default:
		p.d.Addf(diag.Parse, file, lineNo, "directive %q outside of any section", cmd)
	}
}

func (p *Parser) enterSection(sec section, file string, lineNo int) {
	if p.curSection != nil {
		p.closeSection()
	}
	p.section = sec

	if sec == secOptions && !p.optionsEntered {
		p.optionsEntered = true
		p.loadFirstLanguage(file, lineNo)
	}

	if sec == secLevel || sec == secTitle {
		kind := model.Title
		if sec == secLevel {
			kind = model.Level
		}
		p.curSection = &model.Section{
			Kind:  kind,
			Index: len(p.model.Sections),
			NG:    model.NewNGCommandGroup(),
		}
		p.levelCounters = ngcmd.NewCounters()
	}
}

func (p *Parser) closeSection() {
	sec := p.curSection
	p.curSection = nil
	classic.Compile(sec, p.currentLang(), p.tab, p.d)
	p.model.Sections = append(p.model.Sections, sec)
}

func (p *Parser) currentLang() *model.LanguageTable {
	if len(p.model.Languages) == 0 {
		return nil
	}
	return p.model.Languages[0]
}

func (p *Parser) loadFirstLanguage(file string, lineNo int) {
	if len(p.model.LanguageFiles) == 0 {
		return
	}
	path := filepath.Join(p.baseDir, p.model.LanguageFiles[0])
	f, err := os.Open(path)
	if err != nil {
		p.d.Fatalf(diag.Resource, file, lineNo, "cannot open language file %s: %v", path, err)
		return
	}
	defer f.Close()
	lt, err := langfile.Parse(cp1252.NewReader(f))
	if err != nil {
		p.d.Fatalf(diag.Resource, path, 0, "%v", err)
		return
	}
	p.model.Languages = append(p.model.Languages, lt)
}
