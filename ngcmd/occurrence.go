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

package ngcmd

// Counters tracks each schema's running occurrence count. Options
// counters live in one Counters instance for the whole run; every
// Level/Title section gets its own fresh instance: a local hash map
// keyed by command name, reset at Level boundaries rather than shared
// globally.
type Counters map[string]int

// NewCounters returns an empty Counters map.
func NewCounters() Counters {
	return make(Counters)
}

// Check increments the counter for schema.Name and reports whether the
// new count stays within schema.MaxOccur (-1 means unlimited).
func (c Counters) Check(schema *Schema) bool {
	c[schema.Name]++
	if schema.MaxOccur < 0 {
		return true
	}
	return c[schema.Name] <= schema.MaxOccur
}
