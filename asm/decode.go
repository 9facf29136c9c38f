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

package asm

import (
	"fmt"
	"io"

	"github.com/Scrumplesplunge/intscript/internal/isi"
	"github.com/Scrumplesplunge/intscript/vm"
)

func decodeValue(m vm.Cell, arg vm.Cell) ParamValue {
	switch m {
	case 0:
		return Address{Literal{int64(arg)}}
	case 2:
		return Relative{Literal{int64(arg)}}
	default:
		return Literal{int64(arg)}
	}
}

func decodeInput(m vm.Cell, arg vm.Cell) InputParam {
	return InputParam{Value: decodeValue(m, arg)}
}

func decodeOutput(m vm.Cell, arg vm.Cell) OutputParam {
	return OutputParam{Value: decodeValue(m, arg)}
}

// Decode decodes the instruction at pc, reading memory through at. It
// returns the instruction and the address of the following one. A cell that
// is not the head of a legal instruction decodes to a raw Literal of size
// one, so decoding and re-encoding a program reproduces it exactly.
func Decode(at func(vm.Cell) vm.Cell, pc vm.Cell) (Instruction, vm.Cell) {
	head := at(pc)
	literal := func() (Instruction, vm.Cell) {
		return Literal{int64(head)}, pc + 1
	}
	if head < 0 || head/100000 != 0 {
		return literal()
	}
	code := head % 100
	size := vm.Size(code)
	if size == 0 {
		return literal()
	}
	a := head / 100 % 10
	b := head / 1000 % 10
	c := head / 10000 % 10
	if a > 2 || b > 2 || c > 2 {
		return literal()
	}
	calc := func() (x, y InputParam, out OutputParam, ok bool) {
		if c == 1 {
			return x, y, out, false
		}
		return decodeInput(a, at(pc+1)), decodeInput(b, at(pc+2)),
			decodeOutput(c, at(pc+3)), true
	}
	// Mode digits beyond the instruction's operand count must be zero, or
	// re-encoding the decoded form would not reproduce the head.
	switch size {
	case 3:
		if c != 0 {
			return literal()
		}
	case 2:
		if b != 0 || c != 0 {
			return literal()
		}
	case 1:
		if a != 0 || b != 0 || c != 0 {
			return literal()
		}
	}
	next := pc + size
	switch code {
	case vm.OpAdd:
		if x, y, out, ok := calc(); ok {
			return Add{x, y, out}, next
		}
	case vm.OpMul:
		if x, y, out, ok := calc(); ok {
			return Mul{x, y, out}, next
		}
	case vm.OpLessThan:
		if x, y, out, ok := calc(); ok {
			return LessThan{x, y, out}, next
		}
	case vm.OpEquals:
		if x, y, out, ok := calc(); ok {
			return Equals{x, y, out}, next
		}
	case vm.OpJumpIfTrue:
		return JumpIfTrue{decodeInput(a, at(pc+1)), decodeInput(b, at(pc+2))}, next
	case vm.OpJumpIfFalse:
		return JumpIfFalse{decodeInput(a, at(pc+1)), decodeInput(b, at(pc+2))}, next
	case vm.OpInput:
		if a != 1 {
			return Input{decodeOutput(a, at(pc+1))}, next
		}
	case vm.OpOutput:
		return Output{decodeInput(a, at(pc+1))}, next
	case vm.OpAdjustRelativeBase:
		return AdjustRelativeBase{decodeInput(a, at(pc+1))}, next
	case vm.OpHalt:
		return Halt{}, next
	}
	return literal()
}

// Slice adapts a cell slice for use with Decode. Reads outside the slice
// return zero.
func Slice(cells []vm.Cell) func(vm.Cell) vm.Cell {
	return func(i vm.Cell) vm.Cell {
		if i < 0 || i >= vm.Cell(len(cells)) {
			return 0
		}
		return cells[i]
	}
}

// Disassemble writes a disassembly of the instruction at pc to w and returns
// the position of the next instruction and any write error.
func Disassemble(cells []vm.Cell, pc vm.Cell, w io.Writer) (vm.Cell, error) {
	ew, _ := w.(*isi.ErrWriter)
	if ew == nil {
		ew = isi.NewErrWriter(w)
	}
	i, next := Decode(Slice(cells), pc)
	io.WriteString(ew, i.String())
	return next, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to the
// specified io.Writer. It will return any write error.
func DisassembleAll(cells []vm.Cell, w io.Writer) error {
	ew := isi.NewErrWriter(w)
	for pc := vm.Cell(0); pc < vm.Cell(len(cells)); {
		fmt.Fprintf(ew, "% 10d\t", pc)
		pc, _ = Disassemble(cells, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
