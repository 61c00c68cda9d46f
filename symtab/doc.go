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

// Package symtab implements a layered symbol catalog (user #defines
// scoped to one source file, then engine constants, slot enum, static
// enum, then each plugin's constant table in discovery order) and a
// left-to-right '+'/'-' expression evaluator over that catalog.
package symtab
