package container

import (
	"encoding/binary"
	"testing"

	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/trailer"
)

// fixedRNG is a deterministic stand-in for container.PRNG, letting
// tests assert byte-exact output.
type fixedRNG struct{ seed uint32 }

func (r *fixedRNG) Intn(n int) int {
	r.seed = r.seed*1103515245 + 12345
	return int((r.seed >> 16) % uint32(n))
}

func newModel() *model.ScriptModel {
	m := model.NewScriptModel()
	m.OptionsFlags = 2
	m.Security = 7
	m.LanguageFiles = []string{"english.txt"}
	sec := &model.Section{
		Kind:    model.Title,
		Payload: []byte{0x91, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x82, 0, 0, 0, 0x83},
		NG:      model.NewNGCommandGroup(),
	}
	m.Sections = []*model.Section{sec}
	return m
}

func TestBuildBodyHeaderFields(t *testing.T) {
	m := newModel()
	body := BuildBody(m)
	if len(body) < 12 {
		t.Fatalf("body too short: %d bytes", len(body))
	}
	if got := binary.LittleEndian.Uint32(body[0:4]); got != m.OptionsFlags {
		t.Fatalf("options flags: want %d, got %d", m.OptionsFlags, got)
	}
	if got := body[8]; got != m.Security {
		t.Fatalf("security: want %d, got %d", m.Security, got)
	}
	if got := body[9]; got != byte(len(m.Sections)) {
		t.Fatalf("section count: want %d, got %d", len(m.Sections), got)
	}
}

func TestForceDAT(t *testing.T) {
	data := []struct{ in, want string }{
		{"english.txt", "english.DAT"},
		{"french.dat", "french.DAT"},
		{"noext", "noext.DAT"},
	}
	for _, d := range data {
		if got := forceDAT(d.in); got != d.want {
			t.Errorf("forceDAT(%q) = %q, want %q", d.in, got, d.want)
		}
	}
}

func TestSecurityChunkChecksumAndVerificationBytes(t *testing.T) {
	rng := &fixedRNG{seed: 42}
	words := BuildSecurityChunk(rng, 3, 0x1234, 0x56)

	buf := make([]byte, len(words)*2)
	for i, w := range words {
		binary.LittleEndian.PutUint16(buf[i*2:], w)
	}

	// Undo the XOR scramble to recover the pre-scramble buffer.
	plain := make([]byte, len(buf))
	copy(plain, buf)
	for i := 1; i < len(plain); i++ {
		plain[i] ^= securityKeyTable[(i-1)%len(securityKeyTable)]
	}

	sum := 0
	for _, b := range plain[1:] {
		sum += int(b)
	}
	if plain[0] != byte(sum) {
		t.Fatalf("checksum mismatch: header byte %d, computed sum %d", plain[0], byte(sum))
	}
	if plain[secPosLevelCount] != 3 {
		t.Fatalf("level count verification byte: want 3, got %d", plain[secPosLevelCount])
	}
	if plain[secPosOptionsFlags] != 0x34 {
		t.Fatalf("options flags verification byte: want 0x34, got %#x", plain[secPosOptionsFlags])
	}
	if plain[secPosNGSettings] != 0x56 {
		t.Fatalf("ng settings verification byte: want 0x56, got %#x", plain[secPosNGSettings])
	}
}

func TestBuildScriptDatTrailerFraming(t *testing.T) {
	m := newModel()
	d := diag.New()
	out := BuildScriptDat(m, &fixedRNG{seed: 1}, d)
	if d.Fatal() {
		t.Fatalf("unexpected fatal diagnostics: %v", d.All())
	}

	markerIdx := -1
	for i := 0; i+1 < len(out); i++ {
		if out[i] == 0x4E && out[i+1] == 0x47 {
			markerIdx = i
			break
		}
	}
	if markerIdx < 0 {
		t.Fatal("NG marker not found in output")
	}

	if !bytes_hasSuffixNGLE(out) {
		t.Fatal("output does not end in NGLE end record")
	}

	sigOff := len(out) - 8
	size := binary.LittleEndian.Uint32(out[sigOff+4:])
	trailerLen := len(out) - markerIdx
	if int(size) != trailerLen {
		t.Fatalf("NGLE size %d != actual trailer length %d", size, trailerLen)
	}
}

func bytes_hasSuffixNGLE(out []byte) bool {
	if len(out) < 8 {
		return false
	}
	sig := binary.LittleEndian.Uint32(out[len(out)-8:])
	return sig == trailer.SignatureNGLE
}

func TestBuildLanguageFileRoundTrip(t *testing.T) {
	lang := model.NewLanguageTable()
	lang.Strings[model.SecGeneral] = []string{"Hello", "World"}
	lang.SectionSizes[model.SecGeneral] = len("Hello") + 1 + len("World") + 1
	lang.Offsets = []int{0, len("Hello") + 1}

	data := BuildLanguageFile(lang)

	// header: total, psx count, pc count = 3 words = 6 bytes, then 4
	// section sizes (8 bytes), then 2 offsets (4 bytes) = 18 bytes
	// before the string blob starts.
	off := 18
	for _, want := range lang.Strings[model.SecGeneral] {
		for i := 0; i < len(want); i++ {
			got := data[off+i] ^ stringXORKey
			if got != want[i] {
				t.Fatalf("string round-trip mismatch at %d: want %q, got byte %d", off+i, want, got)
			}
		}
		if data[off+len(want)] != 0 {
			t.Fatalf("expected NUL terminator after %q", want)
		}
		off += len(want) + 1
	}
}

func TestBuildImportFileChunkAlwaysDWORD(t *testing.T) {
	f := model.ImportFile{ID: 1, Mode: 2, FileType: 3, FileNumber: 4, FileName: "x", Data: []byte{1, 2, 3}}
	chunk := BuildImportFileChunk(f)
	if chunk[0]&0x8000 == 0 {
		t.Fatal("ImportFile chunk must always use the DWORD size escape")
	}
}
