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

package langfile

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nglevel/ngscript/lex"
	"github.com/nglevel/ngscript/model"
)

// sectionHeader maps a normalized (upper-cased, space/underscore
// stripped) bracket header to its section index.
func sectionHeader(s string) (int, bool) {
	s = strings.ToUpper(s)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return -1
		}
		return r
	}, s)
	switch s {
	case "[STRINGS]":
		return model.SecGeneral, true
	case "[PSXSTRINGS]":
		return model.SecPSX, true
	case "[PCSTRINGS]":
		return model.SecPC, true
	case "[EXTRANG]":
		return model.SecExtraNG, true
	default:
		return 0, false
	}
}

// splitTag strips an optional ':'-terminated special-tag prefix: a
// token with no whitespace before the colon. Returns "" for tag if
// none is present.
func splitTag(line string) (tag string, rest string) {
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return "", line
	}
	prefix := line[:idx]
	if strings.ContainsAny(prefix, " \t") {
		return "", line
	}
	return prefix, line[idx+1:]
}

// decodeEscapes expands \n, \t, \\ and \xNN escapes.
func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		case 'x':
			if i+3 < len(s) {
				if n, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(n))
					i += 3
					continue
				}
			}
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Parse reads a language file (already decoded to UTF-8, see package
// cp1252) and returns its populated LanguageTable.
func Parse(r io.Reader) (*model.LanguageTable, error) {
	t := model.NewLanguageTable()
	sc := lex.NewScanner(r)
	section := -1

	for {
		line, lineNo, ok := sc.Next()
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if idx, isHeader := sectionHeader(line); isHeader {
				section = idx
				continue
			}
			return nil, errors.Errorf("line %d: unknown language section %q", lineNo, line)
		}
		if section < 0 {
			return nil, errors.Errorf("line %d: string literal outside of any section", lineNo)
		}

		if section == model.SecExtraNG {
			tag, rest := splitTag(line)
			idx, err := strconv.Atoi(strings.TrimSpace(tag))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed ExtraNG entry %q", lineNo, line)
			}
			text := decodeEscapes(strings.TrimSpace(rest))
			t.Strings[model.SecExtraNG] = append(t.Strings[model.SecExtraNG], text)
			t.ExtraIndices = append(t.ExtraIndices, idx)
			continue
		}

		tag, rest := splitTag(line)
		text := decodeEscapes(strings.TrimSpace(rest))
		t.Strings[section] = append(t.Strings[section], text)
		t.Tags[section] = append(t.Tags[section], tag)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "language file scan failed")
	}

	computeSizesAndOffsets(t)
	return t, nil
}

// computeSizesAndOffsets fills in SectionSizes and the cumulative
// Offsets table.
func computeSizesAndOffsets(t *model.LanguageTable) {
	offset := 0
	for sec := 0; sec < 4; sec++ {
		size := 0
		for _, s := range t.Strings[sec] {
			n := len(s) + 1
			size += n
			t.Offsets = append(t.Offsets, offset)
			offset += n
		}
		t.SectionSizes[sec] = size
	}
}
