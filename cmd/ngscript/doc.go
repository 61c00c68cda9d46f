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

// Command ngscript compiles a level-editor script project into
// script.dat and one language.dat per declared language file.
//
// Usage:
//
//	-dir directory
//		  project root containing script/SCRIPT.TXT and its language files (default ".")
//	-seed int
//		  PRNG seed for the script.dat security chunk, for reproducible builds (default: time-based)
//	-encrypt
//		  scramble the first 64 bytes of script.dat
//	-debug
//		  print diagnostics with full error context
//	-q
//		  suppress non-fatal diagnostic output
//
// Exit code is 0 on a clean compile, 1 if any fatal diagnostic was
// recorded; in that case no output file is written.
package main
