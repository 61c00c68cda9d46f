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

// Package cp1252 decodes and encodes code page 1252 text, the encoding
// used by the main source file and by language files.
package cp1252

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// NewReader wraps r with a decoder that turns CP-1252 bytes into UTF-8.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.Windows1252.NewDecoder())
}

// DecodeBytes decodes a CP-1252 byte slice into a UTF-8 string.
func DecodeBytes(b []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrap(err, "cp1252 decode failed")
	}
	return string(out), nil
}

// EncodeString encodes a UTF-8 string into CP-1252 bytes. Runes with no
// CP-1252 representation are replaced with '?', matching the lossy
// behavior of the historical compiler's 8-bit string tables.
func EncodeString(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}
