// This file is part of intscript - https://github.com/Scrumplesplunge/intscript
//
// Copyright 2020 The intscript Authors
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
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Scrumplesplunge/intscript/asm"
	"github.com/Scrumplesplunge/intscript/compiler"
	"github.com/Scrumplesplunge/intscript/internal/isi"
	"github.com/Scrumplesplunge/intscript/vm"
)

var (
	debug       bool
	dump        bool
	noRaw       bool
	interactive bool
)

func main() {
	flags := isi.NewFlagSet("run")
	debugFlag := flags.Bool("debug", "Show executed instructions on stderr.")
	dumpFlag := flags.Bool("dump", "Disassemble the program to stderr before running it.")
	noRawFlag := flags.Bool("noraw", "Disable raw terminal IO.")
	interactiveFlag := flags.Bool("interactive", "Exchange integers on an interactive prompt instead of bytes on stdio.")
	flags.Parse(os.Args[1:])
	debug, dump, noRaw, interactive = *debugFlag, *dumpFlag, *noRawFlag, *interactiveFlag
	if len(flags.Args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: run <filename>\n")
		os.Exit(1)
	}
	if err := run(flags.Args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// load produces an executable image from the given path, dispatching on the
// file extension: intcode loads directly, assembly and source compile on the
// fly. The path "-" reads intcode from stdin.
func load(path string) ([]vm.Cell, error) {
	if path == "-" {
		return vm.ReadProgram(os.Stdin)
	}
	switch filepath.Ext(path) {
	case ".ic":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open %q", path)
		}
		defer f.Close()
		return vm.ReadProgram(f)
	case ".asm":
		source, err := isi.Contents(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open %q", path)
		}
		statements, err := asm.Parse(path, source)
		if err != nil {
			return nil, err
		}
		return asm.Encode(statements)
	case ".is":
		modules, err := compiler.Load(path)
		if err != nil {
			return nil, err
		}
		compiled, err := compiler.Generate(modules)
		if err != nil {
			return nil, err
		}
		return asm.Encode(compiled)
	}
	return nil, errors.Errorf(
		"unknown extension %q, must be \".ic\", \".asm\", or \".is\"",
		filepath.Ext(path))
}

func run(path string) error {
	image, err := load(path)
	if err != nil {
		return err
	}
	if dump {
		if err := asm.DisassembleAll(image, os.Stderr); err != nil {
			return err
		}
	}
	var opts []vm.Option
	if debug {
		opts = append(opts, vm.Trace(func(p *vm.Program) {
			i, _ := asm.Decode(p.Fetch, p.PC())
			fmt.Fprintln(os.Stderr, i)
		}))
	}
	p, err := vm.New(image, opts...)
	if err != nil {
		return err
	}
	if interactive {
		return runInteractive(p)
	}
	return runStdio(p)
}

// runStdio wires the program's channels to stdin and stdout, one byte per
// value. On stdin EOF the program reads -1.
func runStdio(p *vm.Program) error {
	if tearDown := setupIO(); tearDown != nil {
		defer tearDown()
	}
	stdin := bufio.NewReader(os.Stdin)
	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()
	for {
		state, err := p.Resume()
		if err != nil {
			return err
		}
		switch state {
		case vm.WaitingForInput:
			// Anything already written must be visible before we block.
			stdout.Flush()
			if b, err := stdin.ReadByte(); err != nil {
				p.ProvideInput(-1)
			} else {
				p.ProvideInput(vm.Cell(b))
			}
		case vm.Output:
			stdout.WriteByte(byte(p.GetOutput()))
		case vm.Halt:
			return nil
		}
	}
}

// setupIO switches the terminal to raw mode so that the program sees bytes
// as they are typed. It returns nil if stdin is not a terminal, raw mode is
// disabled, or the switch fails.
func setupIO() (tearDown func()) {
	if noRaw || !isTerminal() {
		return nil
	}
	tearDown, err := setRawIO()
	if err != nil {
		return nil
	}
	return tearDown
}
