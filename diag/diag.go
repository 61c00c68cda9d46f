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

package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a Diagnostic.
type Kind int

const (
	// Parse covers unknown sections, missing '=', malformed #define.
	Parse Kind = iota
	// Range covers an argument value outside its documented bounds.
	Range
	// Schema covers unknown NG commands or wrong argument count/kind.
	Schema
	// Reference covers unknown symbols or unresolved strings.
	Reference
	// Occurrence covers a schema occurrence cap being exceeded.
	Occurrence
	// Resource covers missing files or unreadable encodings.
	Resource
	// Internal covers unreachable/impossible states.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Range:
		return "range"
	case Schema:
		return "schema"
	case Reference:
		return "reference"
	case Occurrence:
		return "occurrence"
	case Resource:
		return "resource"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single compiler message with source position context.
type Diagnostic struct {
	Kind    Kind
	File    string
	Line    int
	Fatal   bool
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Kind, d.Message)
}

// Collector accumulates diagnostics in insertion order and tracks
// whether any fatal diagnostic has been seen. It is append-only: once a
// Diagnostic is added it is never removed or mutated.
type Collector struct {
	items []Diagnostic
	fatal bool
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Add appends a non-fatal diagnostic.
func (c *Collector) Add(kind Kind, file string, line int, msg string) {
	c.items = append(c.items, Diagnostic{Kind: kind, File: file, Line: line, Message: msg})
}

// Addf appends a non-fatal diagnostic with a formatted message.
func (c *Collector) Addf(kind Kind, file string, line int, format string, args ...interface{}) {
	c.Add(kind, file, line, fmt.Sprintf(format, args...))
}

// Fatalf appends a fatal diagnostic and sets the abort flag.
func (c *Collector) Fatalf(kind Kind, file string, line int, format string, args ...interface{}) {
	c.items = append(c.items, Diagnostic{
		Kind:    kind,
		File:    file,
		Line:    line,
		Fatal:   true,
		Message: fmt.Sprintf(format, args...),
	})
	c.fatal = true
}

// Fatal reports whether a fatal diagnostic has been recorded. The
// pipeline must stop before emitting further files once this is true.
func (c *Collector) Fatal() bool {
	return c.fatal
}

// All returns every diagnostic recorded so far, in insertion order.
func (c *Collector) All() []Diagnostic {
	return c.items
}

// Len returns the number of diagnostics recorded.
func (c *Collector) Len() int {
	return len(c.items)
}

// Error implements the error interface so a Collector with at least one
// fatal diagnostic can be returned directly from a compile phase. Fatal
// diagnostics are listed first, each severity preserving insertion
// order.
func (c *Collector) Error() string {
	if len(c.items) == 0 {
		return "no diagnostics"
	}
	var b strings.Builder
	for _, d := range c.items {
		if !d.Fatal {
			continue
		}
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	for _, d := range c.items {
		if d.Fatal {
			continue
		}
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
