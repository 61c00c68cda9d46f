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

package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/nglevel/ngscript/container"
	"github.com/nglevel/ngscript/diag"
	"github.com/nglevel/ngscript/parser"
	"github.com/nglevel/ngscript/symtab"
)

func main() {
	dir := flag.String("dir", ".", "project root containing script/SCRIPT.TXT")
	seed := flag.Int64("seed", 0, "PRNG seed for the security chunk (default: time-based)")
	encrypt := flag.Bool("encrypt", false, "scramble the first 64 bytes of script.dat")
	debug := flag.Bool("debug", false, "print diagnostics with full error context")
	quiet := flag.Bool("q", false, "suppress non-fatal diagnostic output")
	flag.Parse()

	if err := run(*dir, *seed, *encrypt, *debug, *quiet); err != nil {
		if *debug {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

func run(dir string, seed int64, encrypt, debug, quiet bool) error {
	d := diag.New()
	tab := symtab.New()

	mainPath := filepath.Join(dir, "script", "SCRIPT.TXT")
	p := parser.New(d, tab)
	model, err := p.Parse(mainPath)
	if err != nil {
		printDiagnostics(d, quiet)
		return errors.Errorf("%s: compilation failed with %d diagnostic(s)", mainPath, d.Len())
	}
	model.Encrypt = encrypt

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	scriptDat := container.BuildScriptDat(model, rng, d)
	if d.Fatal() {
		printDiagnostics(d, quiet)
		return errors.Errorf("%s: compilation failed with %d diagnostic(s)", mainPath, d.Len())
	}

	type langOut struct {
		name string
		data []byte
	}
	outputs := make([]langOut, 0, len(model.Languages))
	for i, lt := range model.Languages {
		if i >= len(model.LanguageFiles) {
			break
		}
		outputs = append(outputs, langOut{
			name: forceDATName(model.LanguageFiles[i]),
			data: container.BuildLanguageFile(lt),
		})
	}

	scriptDir := filepath.Join(dir, "script")
	parentDir := dir
	if err := writeBoth(scriptDir, parentDir, "script.dat", scriptDat); err != nil {
		return err
	}
	for _, o := range outputs {
		if err := writeBoth(scriptDir, parentDir, o.name, o.data); err != nil {
			return err
		}
	}

	printDiagnostics(d, quiet)
	return nil
}

func writeBoth(dirA, dirB, name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(dirA, name), data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", filepath.Join(dirA, name))
	}
	if err := os.WriteFile(filepath.Join(dirB, name), data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", filepath.Join(dirB, name))
	}
	return nil
}

// forceDATName mirrors container.forceDAT for the basename the CLI
// writes to disk (package container applies the same rule inside the
// script.dat body's language-basename field).
func forceDATName(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i] + ".DAT"
		}
		if name[i] == '/' || name[i] == '\\' {
			break
		}
	}
	return name + ".DAT"
}

func printDiagnostics(d *diag.Collector, quiet bool) {
	for _, item := range d.All() {
		if quiet && !item.Fatal {
			continue
		}
		w := os.Stdout
		if item.Fatal {
			w = os.Stderr
		}
		fmt.Fprintln(w, item.String())
	}
}
