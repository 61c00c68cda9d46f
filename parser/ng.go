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

package parser

import (
	"strings"

	"github.com/nglevel/ngscript/classic"
	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/model"
	"github.com/nglevel/ngscript/ngcmd"
	"github.com/nglevel/ngscript/symtab"
)

// emitNGCommand evaluates rawArgs against schema, encodes the result
// through package ngcmd, and appends it to group on success. counters
// is the caller's Options- or Level-scoped occurrence map, reset per
// section rather than shared globally.
func (p *Parser) emitNGCommand(file string, lineNo int, cmd string, rawArgs []string, schema *ngcmd.Schema, counters ngcmd.Counters, group *model.NGCommandGroup) {
	args, ok := p.buildNGArgs(schema, rawArgs, file, lineNo)
	if !ok {
		return
	}
	nc := &model.NGCommand{
		Tag:  schema.Tag,
		Name: cmd,
		Args: args,
		File: file,
		Line: lineNo,
	}
	if ngcmd.Encode(nc, schema, counters, group, p.d) {
		group.Add(nc)
	}
}

// buildNGArgs evaluates rawArgs against schema.Args, one NGArg per
// declared kind: numeric kinds through symtab.Eval,
// String through classic.ResolveStringArg against the current language
// table, Bool through ENABLED/DISABLED text, and an Array kind (always
// last) consuming every remaining raw argument.
func (p *Parser) buildNGArgs(schema *ngcmd.Schema, rawArgs []string, file string, lineNo int) ([]model.NGArg, bool) {
	var out []model.NGArg
	for i, kind := range schema.Args {
		if kind.IsArray() {
			elem := model.NGArg{Kind: kind}
			for _, raw := range rawArgs[i:] {
				v, _, err := symtab.Eval(p.tab, file, strings.TrimSpace(raw))
				if err != nil {
					p.d.Fatalf(diag.Reference, file, lineNo, "%s: %v", schema.Name, err)
					return nil, false
				}
				elem.Array = append(elem.Array, int64(v))
			}
			out = append(out, elem)
			return out, true
		}
		if i >= len(rawArgs) {
			p.d.Fatalf(diag.Schema, file, lineNo, "%s: expected %d arguments, got %d", schema.Name, len(schema.Args), len(rawArgs))
			return nil, false
		}
		raw := strings.TrimSpace(rawArgs[i])
		switch kind {
		case model.String:
			idx, ok := classic.ResolveStringArg(raw, p.currentLang())
			if !ok {
				p.d.Addf(diag.Reference, file, lineNo, "%s: string %q not found, defaulting to 0", schema.Name, raw)
				idx = 0
			}
			out = append(out, model.NGArg{Kind: kind, Value: int64(idx)})
		case model.Bool:
			v := int64(0)
			if strings.EqualFold(raw, "ENABLED") {
				v = 1
			} else if !strings.EqualFold(raw, "DISABLED") {
				p.d.Addf(diag.Parse, file, lineNo, "%s: expected ENABLED/DISABLED, got %q", schema.Name, raw)
			}
			out = append(out, model.NGArg{Kind: kind, Value: v})
		default:
			v, pluginID, err := symtab.Eval(p.tab, file, raw)
			if err != nil {
				p.d.Fatalf(diag.Reference, file, lineNo, "%s: %v", schema.Name, err)
				return nil, false
			}
			out = append(out, model.NGArg{Kind: kind, Value: int64(v), PluginID: pluginID})
		}
	}
	return out, true
}

