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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/Scrumplesplunge/intscript/vm"
)

// runInteractive exchanges whole integers with the program on a line-edited
// prompt: one integer per input suspension, one "output:" line per output.
// EOF at the prompt feeds -1, like stdin EOF in stdio mode.
func runInteractive(p *vm.Program) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	for {
		state, err := p.Resume()
		if err != nil {
			return err
		}
		switch state {
		case vm.WaitingForInput:
			value, err := promptInt(line)
			if err != nil {
				return err
			}
			p.ProvideInput(value)
		case vm.Output:
			fmt.Printf("output: %d\n", p.GetOutput())
		case vm.Halt:
			return nil
		}
	}
}

func promptInt(line *liner.State) (vm.Cell, error) {
	for {
		text, err := line.Prompt("input> ")
		if err == io.EOF {
			fmt.Println()
			return -1, nil
		}
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			fmt.Println("enter a single integer")
			continue
		}
		line.AppendHistory(text)
		return vm.Cell(value), nil
	}
}
