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

// Command as assembles intscript assembly into intcode.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/Scrumplesplunge/intscript/asm"
	"github.com/Scrumplesplunge/intscript/internal/isi"
	"github.com/Scrumplesplunge/intscript/vm"
)

func main() {
	flags := isi.NewFlagSet("as")
	input := flags.String("input", "-", "File to read from.")
	output := flags.String("output", "-", "File to write to.")
	flags.Parse(os.Args[1:])
	if err := run(*input, *output); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(input, output string) error {
	var name, source string
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read failed")
		}
		name, source = "stdin", string(data)
	} else {
		data, err := isi.Contents(input)
		if err != nil {
			return errors.Wrapf(err, "unable to open %q", input)
		}
		name, source = input, data
	}
	statements, err := asm.Parse(name, source)
	if err != nil {
		return err
	}
	encoded, err := asm.Encode(statements)
	if err != nil {
		return err
	}
	var w *bufio.Writer
	if output == "-" {
		w = bufio.NewWriter(os.Stdout)
	} else {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrapf(err, "could not open %q for writing", output)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
	}
	if err := vm.WriteProgram(w, encoded); err != nil {
		return err
	}
	return w.Flush()
}
