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

package lex

import (
	"bufio"
	"io"
	"strings"
)

// StripComment drops everything from the first top-level ';' onward.
// A ';' inside a paired '"..."' region is not a comment introducer.
func StripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}

// SplitArgs comma-splits s, treating commas inside a paired '"..."'
// region as literal. Each returned argument is trimmed of outer spaces;
// surrounding quotes are left in place (callers strip them only when
// the argument is consumed as a string-typed value).
func SplitArgs(s string) []string {
	var args []string
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(s[start:]))
	return args
}

// UnquoteArg strips a single pair of enclosing double quotes from arg,
// if present. Used where the argument is consumed as a string: string
// references (classic and NG) and Include= file names.
func UnquoteArg(arg string) string {
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return arg[1 : len(arg)-1]
	}
	return arg
}

// SplitCommand locates the first '=' in a normalized logical line and
// returns the command token (including the '=') and its comma-split
// argument list. ok is false if no '=' is present.
func SplitCommand(line string) (command string, args []string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", nil, false
	}
	command = strings.TrimSpace(line[:idx]) + "="
	args = SplitArgs(line[idx+1:])
	return command, args, true
}

// endsWithContinuation reports whether the trimmed line ends with '>'
// before any comment, i.e. should be joined with the next physical
// line.
func endsWithContinuation(trimmed string) bool {
	return strings.HasSuffix(trimmed, ">")
}

// Scanner reads physical lines from a decoded source and yields
// normalized logical lines: trimmed, comment-stripped, and with
// '>'-continuations joined by a single space.
type Scanner struct {
	sc     *bufio.Scanner
	lineNo int
	done   bool
}

// NewScanner returns a Scanner reading from r, which must already be
// decoded to UTF-8 (see package cp1252).
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Next returns the next normalized logical line and the physical line
// number it started on. ok is false once the source is exhausted.
func (s *Scanner) Next() (text string, startLine int, ok bool) {
	if s.done {
		return "", 0, false
	}
	var b strings.Builder
	first := true
	start := s.lineNo + 1
	for {
		if !s.sc.Scan() {
			s.done = true
			if b.Len() == 0 && first {
				return "", 0, false
			}
			return strings.TrimSpace(b.String()), start, true
		}
		s.lineNo++
		raw := strings.TrimSpace(s.sc.Text())
		raw = StripComment(raw)
		raw = strings.TrimSpace(raw)
		if first {
			start = s.lineNo
		}
		trimmed := strings.TrimRight(raw, " \t")
		if endsWithContinuation(trimmed) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSuffix(trimmed, ">"))
			first = false
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(trimmed)
		return strings.TrimSpace(b.String()), start, true
	}
}

// LineNo returns the current physical line counter, for error context
// when a caller needs it outside of Next's return value.
func (s *Scanner) LineNo() int {
	return s.lineNo
}

// Err returns the first error encountered by the underlying
// bufio.Scanner, if any.
func (s *Scanner) Err() error {
	return s.sc.Err()
}
