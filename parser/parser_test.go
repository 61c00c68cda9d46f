package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/symtab"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writeFile %s: %v", path, err)
	}
	return path
}

func newTable() *symtab.Table {
	tab := symtab.New()
	tab.LoadEngineConstants(map[string]int32{"TRUE": 1, "FALSE": 0})
	return tab
}

func TestParseOptionsAndLevelFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "english.txt", "[Strings]\nFirst Level\n")
	main := writeFile(t, dir, "SCRIPT.TXT", `
[Language]
File= 0, english.txt

[Options]
LoadSave= ENABLED

[Level]
Name= "First Level"
File= data\level1
LoadCamera= 0,0,0,0,0,0,0
YoungLara= ENABLED
`)
	d := diag.New()
	p := New(d, newTable())
	m, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, d.All())
	}
	if m.OptionsFlags&1 == 0 {
		t.Fatalf("expected LoadSave bit set, got flags=%#x", m.OptionsFlags)
	}
	if len(m.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(m.Sections))
	}
	sec := m.Sections[0]
	if sec.DisplayName != "" {
		// Name= is routed through the classic compiler, not recorded
		// directly on the model before compilation runs.
		t.Logf("DisplayName set early: %q", sec.DisplayName)
	}
	if sec.FilePath != `data\level1` {
		t.Fatalf("FilePath: want %q, got %q", `data\level1`, sec.FilePath)
	}
	if sec.LevelFlags&(1<<0) == 0 {
		t.Fatalf("expected YoungLara bit set, got flags=%#x", sec.LevelFlags)
	}
}

func TestParseIncludeChain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "english.txt", "[Strings]\nTitle Screen\nOnly Level\n")
	writeFile(t, dir, "EXTRA.TXT", `
[Title]
Name= "Title Screen"
LoadCamera= 0,0,0,0,0,0,0
`)
	main := writeFile(t, dir, "SCRIPT.TXT", `
[Language]
File= 0, english.txt

[Options]

Include= EXTRA.TXT

[Level]
Name= "Only Level"
LoadCamera= 0,0,0,0,0,0,0
`)
	d := diag.New()
	p := New(d, newTable())
	m, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, d.All())
	}
	if len(m.Sections) != 2 {
		t.Fatalf("expected 2 sections (title + level), got %d", len(m.Sections))
	}
	if m.Sections[0].Kind != model.Title {
		t.Fatalf("expected first section to be Title, got %v", m.Sections[0].Kind)
	}
	if m.Sections[1].Kind != model.Level {
		t.Fatalf("expected second section to be Level, got %v", m.Sections[1].Kind)
	}
}

func TestParseDefineScopedPerFile(t *testing.T) {
	dir := t.TempDir()
	included := writeFile(t, dir, "INC.TXT", `
#define LOCAL_ONLY 7
`)
	writeFile(t, dir, "english.txt", "[Strings]\nL\n")
	main := writeFile(t, dir, "SCRIPT.TXT", `
[Language]
File= 0, english.txt

[Options]

Include= INC.TXT
#define LOCAL_ONLY 9

[Level]
Name= "L"
LoadCamera= 0,0,0,0,0,0,0
CD= LOCAL_ONLY
`)
	d := diag.New()
	p := New(d, newTable())
	m, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, d.All())
	}
	_ = included
	if m.Sections[0].CD != 9 {
		t.Fatalf("CD=: want 9 (main file's own #define), got %d", m.Sections[0].CD)
	}
}

func TestParseDuplicateDefineWarnsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "english.txt", "[Strings]\nL\n")
	main := writeFile(t, dir, "SCRIPT.TXT", `
#define DUP 1
#define DUP 2

[Language]
File= 0, english.txt

[Options]

[Level]
Name= "L"
LoadCamera= 0,0,0,0,0,0,0
CD= DUP
`)
	d := diag.New()
	p := New(d, newTable())
	m, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", d.All())
	}
	if m.Sections[0].CD != 1 {
		t.Fatalf("CD=: want 1 (first definition wins), got %d", m.Sections[0].CD)
	}
	found := false
	for _, diagItem := range d.All() {
		if !diagItem.Fatal {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a non-fatal diagnostic for the redefinition")
	}
}

func TestParseUnknownSectionIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "english.txt", "[Strings]\nL\n")
	main := writeFile(t, dir, "SCRIPT.TXT", `
[Bogus]
Whatever= 1

[Language]
File= 0, english.txt

[Options]

[Level]
Name= "L"
LoadCamera= 0,0,0,0,0,0,0
`)
	d := diag.New()
	p := New(d, newTable())
	_, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", d.All())
	}
	if d.Len() == 0 {
		t.Fatal("expected a diagnostic for the unknown section header")
	}
}

func TestParseFileAndCDAreStructuralNotCompiled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "english.txt", "[Strings]\nL\n")
	main := writeFile(t, dir, "SCRIPT.TXT", `
[Language]
File= 0, english.txt

[Options]

[Level]
Name= "L"
LoadCamera= 0,0,0,0,0,0,0
File= data\a.trl
CD= 2
`)
	d := diag.New()
	p := New(d, newTable())
	m, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, d.All())
	}
	sec := m.Sections[0]
	if sec.FilePath != `data\a.trl` {
		t.Fatalf("FilePath: want %q, got %q", `data\a.trl`, sec.FilePath)
	}
	if sec.CD != 2 {
		t.Fatalf("CD: want 2, got %d", sec.CD)
	}
	for _, line := range sec.Lines {
		if line.Command == "File=" || line.Command == "CD=" {
			t.Fatalf("File=/CD= must not reach the classic line buffer, found %q", line.Command)
		}
	}
}

func TestParseLazyFirstLanguageLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "english.txt", "[Strings]\nHello\n")
	main := writeFile(t, dir, "SCRIPT.TXT", `
[Language]
File= 0, english.txt

[Options]
LoadSave= ENABLED
`)
	d := diag.New()
	p := New(d, newTable())
	m, err := p.Parse(main)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, d.All())
	}
	if len(m.Languages) != 1 {
		t.Fatalf("expected the first language file to be loaded lazily on [Options] entry, got %d tables", len(m.Languages))
	}
	if len(m.Languages[0].Strings[model.SecGeneral]) != 1 {
		t.Fatalf("expected one string in [Strings], got %d", len(m.Languages[0].Strings[model.SecGeneral]))
	}
}

func TestParseMissingIncludeIsFatal(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "SCRIPT.TXT", `
Include= DOES_NOT_EXIST.TXT
`)
	d := diag.New()
	p := New(d, newTable())
	_, err := p.Parse(main)
	if err == nil {
		t.Fatal("expected a fatal error for a missing include file")
	}
	if !d.Fatal() {
		t.Fatal("expected the collector to record a fatal diagnostic")
	}
}
