// This file is part of ngaro - https://github.com/db47h/ngaro
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

// Package ngi holds binary-layout helpers shared by the container
// writer: a sticky-error io.Writer plus little-endian field and
// fixed-width padding helpers.
package ngi

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrWriter is a simple wrapper to track io errors. Write will keep returning
// the last error over and over.
type ErrWriter struct {
	w   io.Writer
	Err error
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// NewErrWriter returns a new ErrWriter.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w, nil}
}

// U16 writes v little-endian.
func (w *ErrWriter) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

// U32 writes v little-endian.
func (w *ErrWriter) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

// Byte writes a single byte.
func (w *ErrWriter) Byte(v byte) {
	w.Write([]byte{v})
}

// Words writes vs as consecutive little-endian 16-bit words.
func (w *ErrWriter) Words(vs []uint16) {
	buf := make([]byte, len(vs)*2)
	for i, v := range vs {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	w.Write(buf)
}

// Padded writes s truncated or NUL-padded to exactly n bytes, with no
// terminator of its own.
func (w *ErrWriter) Padded(s string, n int) {
	buf := make([]byte, n)
	copy(buf, s)
	w.Write(buf)
}

// CString writes s followed by a single NUL terminator.
func (w *ErrWriter) CString(s string) {
	w.Write([]byte(s))
	w.Byte(0)
}

// PackWords packs buf into little-endian 16-bit words, NUL-padding buf
// to an even length first.
func PackWords(buf []byte) []uint16 {
	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	words := make([]uint16, len(buf)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return words
}
