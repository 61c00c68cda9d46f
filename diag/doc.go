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

// Package diag implements the compiler's error collector.
//
// Every phase of the pipeline — lexing, symbol resolution, classic and
// NG command compilation, language parsing, container framing — reports
// problems by appending a Diagnostic to a Collector rather than
// returning early. A Diagnostic marked fatal sets the Collector's abort
// flag; callers check Collector.Fatal at phase boundaries and stop the
// pipeline before any further file is written.
package diag
