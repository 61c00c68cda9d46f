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

package classic

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/nglevel/ngscript/lex"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/symtab"
)

// parseNumber evaluates a classic-directive numeric argument: $hex,
// &Hhex, decimal, or any user-defined name.
func parseNumber(arg string, tab *symtab.Table, file string) (int64, error) {
	switch {
	case strings.HasPrefix(arg, "$"):
		n, err := strconv.ParseInt(arg[1:], 16, 64)
		return n, errors.Wrapf(err, "invalid $hex literal %q", arg)
	case len(arg) > 2 && arg[0] == '&' && (arg[1] == 'H' || arg[1] == 'h'):
		n, err := strconv.ParseInt(arg[2:], 16, 64)
		return n, errors.Wrapf(err, "invalid &Hhex literal %q", arg)
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return n, nil
	}
	sym, ok := tab.Lookup(file, arg)
	if !ok {
		return 0, errors.Errorf("unresolved symbol %q", arg)
	}
	return int64(sym.Value), nil
}

// resolveStringArg resolves a classic string-reference argument:
// '#n' literal index, '!n' NG-extra index (high bit set), '&hex' raw
// literal index, or source text looked up in the language table
// (normal strings first, then ExtraNG).
// ResolveStringArg is the exported form of resolveStringArg, reused by
// package parser when evaluating String-kind NG arguments -- both
// dialects share one string-reference syntax.
func ResolveStringArg(arg string, lang *model.LanguageTable) (int, bool) {
	return resolveStringArg(arg, lang)
}

func resolveStringArg(arg string, lang *model.LanguageTable) (int, bool) {
	arg = lex.UnquoteArg(arg)
	switch {
	case strings.HasPrefix(arg, "#"):
		if n, err := strconv.Atoi(arg[1:]); err == nil {
			return n, true
		}
	case strings.HasPrefix(arg, "!"):
		if n, err := strconv.Atoi(arg[1:]); err == nil {
			return 0x8000 | n, true
		}
	case strings.HasPrefix(arg, "&"):
		if n, err := strconv.ParseInt(arg[1:], 16, 64); err == nil {
			return int(n), true
		}
	}
	if lang == nil {
		return 0, false
	}
	return lang.Resolve(arg)
}
