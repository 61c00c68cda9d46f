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

import "fmt"

// Symbol is a resolved name: its value and the plugin that owns it, or
// plugin id 0 for engine/slot/static/user symbols.
type Symbol struct {
	Value    int32
	PluginID int
}

// Plugin is one discovered plugin's constant table.
type Plugin struct {
	ID        int
	Name      string
	Constants map[string]int32
}

// Table is the process-wide, layered symbol catalog. Lookup order is:
// user #defines scoped to the current file, engine constants, slot
// enum, static enum, then plugins in discovery (file mtime ascending)
// order.
type Table struct {
	userDefines map[string]map[string]int32 // file -> name -> value
	engine      map[string]int32
	slotEnum    map[string]int32
	staticEnum  map[string]int32
	plugins     []Plugin
	pluginByID  map[string]int // @name -> id, for #define @name id
}

// New returns an empty Table. The engine, slot and static enum maps are
// meant to be loaded once via LoadEngineConstants/LoadSlotEnum/
// LoadStaticEnum from the external constants catalog; they form the
// immutable outermost layer.
func New() *Table {
	return &Table{
		userDefines: make(map[string]map[string]int32),
		engine:      make(map[string]int32),
		slotEnum:    make(map[string]int32),
		staticEnum:  make(map[string]int32),
		pluginByID:  make(map[string]int),
	}
}

// LoadEngineConstants installs the engine constants catalog (an
// external collaborator, consumed only as name->value pairs).
func (t *Table) LoadEngineConstants(consts map[string]int32) {
	for k, v := range consts {
		t.engine[k] = v
	}
}

// LoadSlotEnum installs the slot/static item-slot enum.
func (t *Table) LoadSlotEnum(consts map[string]int32) {
	for k, v := range consts {
		t.slotEnum[k] = v
	}
}

// LoadStaticEnum installs the static-object enum.
func (t *Table) LoadStaticEnum(consts map[string]int32) {
	for k, v := range consts {
		t.staticEnum[k] = v
	}
}

// Define adds a user #define scoped to file. Returns false with
// "second wins suppressed" semantics if name is already defined in
// file: the first definition is kept and the caller should emit a
// warning.
func (t *Table) Define(file, name string, value int32) bool {
	m, ok := t.userDefines[file]
	if !ok {
		m = make(map[string]int32)
		t.userDefines[file] = m
	}
	if _, exists := m[name]; exists {
		return false
	}
	m[name] = value
	return true
}

// ClearDefines drops all user #defines scoped to file. Each source
// file gets a fresh scope.
func (t *Table) ClearDefines(file string) {
	delete(t.userDefines, file)
}

// AddPlugin registers a discovered plugin's constant table in
// discovery order. Plugins must be added in file-mtime-ascending order
// so Lookup's final fallback layer stays deterministic.
func (t *Table) AddPlugin(id int, name string, constants map[string]int32) {
	t.plugins = append(t.plugins, Plugin{ID: id, Name: name, Constants: constants})
}

// Plugins returns the registered plugin list, in discovery order.
func (t *Table) Plugins() []Plugin {
	return t.plugins
}

// BindPluginName registers "#define @name id". Reports dupID=true if id
// is already bound under a different name (duplicate ids are fatal);
// re-binding an already bound name returns ok=false ("second wins
// suppressed", a warning, not fatal).
func (t *Table) BindPluginName(name string, id int) (ok bool, dupID bool) {
	for n, existingID := range t.pluginByID {
		if existingID == id && n != name {
			return false, true
		}
	}
	if _, exists := t.pluginByID[name]; exists {
		return false, false
	}
	t.pluginByID[name] = id
	return true, false
}

// ClearPluginNames implements "#define @plugins clear".
func (t *Table) ClearPluginNames() {
	t.pluginByID = make(map[string]int)
}

// PluginIDByName resolves an @name binding to its id.
func (t *Table) PluginIDByName(name string) (int, bool) {
	id, ok := t.pluginByID[name]
	return id, ok
}

// Lookup resolves name in the layered precedence order, scoped to file
// for user #defines. It returns the symbol's value and the id of the
// plugin that owns it (0 if none).
func (t *Table) Lookup(file, name string) (Symbol, bool) {
	if m, ok := t.userDefines[file]; ok {
		if v, ok := m[name]; ok {
			return Symbol{Value: v}, true
		}
	}
	if v, ok := t.engine[name]; ok {
		return Symbol{Value: v}, true
	}
	if v, ok := t.slotEnum[name]; ok {
		return Symbol{Value: v}, true
	}
	if v, ok := t.staticEnum[name]; ok {
		return Symbol{Value: v}, true
	}
	for _, p := range t.plugins {
		if v, ok := p.Constants[name]; ok {
			return Symbol{Value: v, PluginID: p.ID}, true
		}
	}
	return Symbol{}, false
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d(plugin=%d)", s.Value, s.PluginID)
}
