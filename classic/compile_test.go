package classic

import (
	"bytes"
	"testing"

	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/symtab"
)

func line(cmd string, args ...string) model.SourceLine {
	return model.SourceLine{File: "t.ini", Line: 1, Command: cmd, Args: args}
}

func TestAssignSortKeys(t *testing.T) {
	lines := []model.SourceLine{
		line("Legend=", "1"),
		line("FMV=", "0", "0"),
		line("Key=", "2"),
		line("Key=", "1"),
		line("Nonsense="),
	}
	AssignSortKeys(lines)
	StableSort(lines)

	// Keys: FMV= 0, Legend= 9000, Nonsense= 9999 (unknown), Key= 18000+item*10.
	want := []string{"FMV=", "Legend=", "Nonsense=", "Key=", "Key="}
	for i, l := range lines {
		if l.Command != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i], l.Command)
		}
	}
	if lines[3].Args[0] != "1" || lines[4].Args[0] != "2" {
		t.Fatalf("Key= lines not ordered by item number: %v, %v", lines[3].Args, lines[4].Args)
	}
}

func TestParseNumber(t *testing.T) {
	tab := symtab.New()
	tab.LoadEngineConstants(map[string]int32{"FOO": 42})

	data := []struct {
		name string
		arg  string
		want int64
		err  bool
	}{
		{"decimal", "123", 123, false},
		{"dollar_hex", "$FF", 255, false},
		{"amp_hex", "&HFF", 255, false},
		{"amp_hex_lower", "&hff", 255, false},
		{"symbol", "FOO", 42, false},
		{"unresolved", "BAR", 0, true},
		{"bad_hex", "$ZZ", 0, true},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			got, err := parseNumber(d.arg, tab, "t.ini")
			if d.err {
				if err == nil {
					t.Fatalf("expected error for %q", d.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != d.want {
				t.Fatalf("want %d, got %d", d.want, got)
			}
		})
	}
}

func TestResolveStringArg(t *testing.T) {
	lang := model.NewLanguageTable()
	lang.Strings[model.SecGeneral] = []string{"Hello", "World"}

	data := []struct {
		name string
		arg  string
		want int
		ok   bool
	}{
		{"literal_index", "#3", 3, true},
		{"extra_ng", "!2", 0x8002, true},
		{"raw_hex", "&1A", 0x1A, true},
		{"text_lookup", "World", 1, true},
		{"miss", "Nope", 0, false},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			got, ok := resolveStringArg(d.arg, lang)
			if ok != d.ok {
				t.Fatalf("ok: want %v, got %v", d.ok, ok)
			}
			if ok && got != d.want {
				t.Fatalf("want %d, got %d", d.want, got)
			}
		})
	}
}

func TestCompileMinimalLevel(t *testing.T) {
	lang := model.NewLanguageTable()
	lang.Strings[model.SecGeneral] = []string{"Catacombs"}
	tab := symtab.New()
	d := diag.New()

	sec := &model.Section{
		Kind:  model.Level,
		Index: 3,
		CD:    1,
		Lines: []model.SourceLine{
			line("Name=", "Catacombs"),
			line("LoadCamera=", "0", "0", "0", "0", "0", "0", "0"),
		},
	}
	Compile(sec, lang, tab, d)
	if d.Fatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", d.All())
	}

	if len(sec.Payload) == 0 {
		t.Fatal("expected non-empty payload")
	}
	// Level trailer: tag, name index, flags(2), section index, CD, terminator.
	tail := sec.Payload[len(sec.Payload)-7:]
	want := []byte{model.TagLevel, 0, 0, 0, byte(sec.Index), sec.CD, model.TagTerminator}
	if !bytes.Equal(tail, want) {
		t.Fatalf("trailer mismatch: want %v, got %v", want, tail)
	}
}

func TestCompileMissingLoadCameraFatal(t *testing.T) {
	d := diag.New()
	sec := &model.Section{
		Kind: model.Title,
		Lines: []model.SourceLine{
			line("FMV=", "0"),
		},
	}
	Compile(sec, nil, symtab.New(), d)
	if !d.Fatal() {
		t.Fatal("expected a fatal diagnostic for missing LoadCamera=")
	}
}

func TestCompileMissingNameFatalForLevel(t *testing.T) {
	d := diag.New()
	sec := &model.Section{
		Kind: model.Level,
		Lines: []model.SourceLine{
			line("LoadCamera=", "0", "0", "0", "0", "0", "0", "0"),
		},
	}
	Compile(sec, model.NewLanguageTable(), symtab.New(), d)
	if !d.Fatal() {
		t.Fatal("expected a fatal diagnostic for missing Name=")
	}
}

func TestCompileInventoryRangeError(t *testing.T) {
	d := diag.New()
	sec := &model.Section{
		Kind: model.Title,
		Lines: []model.SourceLine{
			line("LoadCamera=", "0", "0", "0", "0", "0", "0", "0"),
			line("Key=", "99", "#0", "0", "0", "0", "0", "0", "0"),
		},
	}
	Compile(sec, model.NewLanguageTable(), symtab.New(), d)
	if !d.Fatal() {
		t.Fatal("expected a fatal range diagnostic for an out-of-range Key= item")
	}
}
