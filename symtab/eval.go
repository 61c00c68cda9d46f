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

package symtab

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ignoreSentinel is the value of the reserved "IGNORE" term.
const ignoreSentinel = -1

// Eval evaluates expr — a strictly left-to-right '+'/'-' sum of terms —
// against the table, scoped to file for user #define resolution. It
// returns the result and the plugin id of the last symbolic term that
// resolved through a plugin's constant table (0 if none did).
func Eval(t *Table, file, expr string) (int32, int, error) {
	terms, ops := splitTerms(expr)
	if len(terms) == 0 || terms[0] == "" {
		return 0, 0, errors.Errorf("empty expression")
	}

	acc, pluginID, err := evalTerm(t, file, terms[0])
	if err != nil {
		return 0, 0, err
	}
	for i := 1; i < len(terms); i++ {
		v, pid, err := evalTerm(t, file, terms[i])
		if err != nil {
			return 0, 0, err
		}
		if pid != 0 {
			pluginID = pid
		}
		switch ops[i-1] {
		case '+':
			acc += v
		case '-':
			acc -= v
		}
	}
	return acc, pluginID, nil
}

// splitTerms splits expr on top-level '+'/'-' operators. ops[i] is the
// operator immediately preceding terms[i+1].
func splitTerms(expr string) (terms []string, ops []byte) {
	start := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '+', '-':
			terms = append(terms, strings.TrimSpace(expr[start:i]))
			ops = append(ops, expr[i])
			start = i + 1
		}
	}
	terms = append(terms, strings.TrimSpace(expr[start:]))
	return terms, ops
}

// evalTerm evaluates a single additive term: a decimal literal, a
// '$'/'0x'/'#' hex literal, the IGNORE sentinel, or a resolver name.
func evalTerm(t *Table, file, term string) (int32, int, error) {
	switch {
	case term == "":
		return 0, 0, errors.Errorf("empty term")
	case term == "IGNORE":
		return ignoreSentinel, 0, nil
	case strings.HasPrefix(term, "$"):
		n, err := strconv.ParseInt(term[1:], 16, 32)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "invalid hex literal %q", term)
		}
		return int32(n), 0, nil
	case strings.HasPrefix(term, "#"):
		n, err := strconv.ParseInt(term[1:], 16, 32)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "invalid hex literal %q", term)
		}
		return int32(n), 0, nil
	case strings.HasPrefix(term, "0x") || strings.HasPrefix(term, "0X"):
		n, err := strconv.ParseInt(term[2:], 16, 32)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "invalid hex literal %q", term)
		}
		return int32(n), 0, nil
	}
	if n, err := strconv.ParseInt(term, 10, 32); err == nil {
		return int32(n), 0, nil
	}
	sym, ok := t.Lookup(file, term)
	if !ok {
		return 0, 0, errors.Errorf("unresolved symbol %q", term)
	}
	return sym.Value, sym.PluginID, nil
}
