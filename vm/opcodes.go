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

package vm

// Cell is the raw type stored in a memory location.
type Cell int64

// Intcode Virtual Machine Opcodes.
const (
	OpAdd                Cell = 1
	OpMul                Cell = 2
	OpInput              Cell = 3
	OpOutput             Cell = 4
	OpJumpIfTrue         Cell = 5
	OpJumpIfFalse        Cell = 6
	OpLessThan           Cell = 7
	OpEquals             Cell = 8
	OpAdjustRelativeBase Cell = 9
	OpHalt               Cell = 99
)

// Mode is an operand addressing mode.
type Mode uint8

// Addressing modes, numbered as they appear in an instruction head.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

// Size returns the number of cells an instruction with the given opcode
// occupies, including its head. It returns 0 for unknown opcodes.
func Size(code Cell) Cell {
	switch code {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		return 4
	case OpJumpIfTrue, OpJumpIfFalse:
		return 3
	case OpInput, OpOutput, OpAdjustRelativeBase:
		return 2
	case OpHalt:
		return 1
	}
	return 0
}

type opInfo struct {
	code  Cell // 0 for an illegal head
	modes [3]Mode
	size  Cell
}

// opTable maps every legal instruction head value to its decomposed form.
// The largest legal head is 22299 (halt, whose mode digits are accepted but
// unused); the table holds every head below 29999 so that a single bounds
// check covers validation.
var opTable [29999]opInfo

func init() {
	for i := range opTable {
		opTable[i] = parseOp(Cell(i))
	}
}

func parseOp(x Cell) opInfo {
	code := x % 100
	if Size(code) == 0 {
		return opInfo{}
	}
	result := opInfo{code: code, size: Size(code)}
	x /= 100
	for i := 0; i < 3; i++ {
		m := x % 10
		if m > 2 {
			return opInfo{}
		}
		result.modes[i] = Mode(m)
		x /= 10
	}
	// If this check fails, there are more mode digits than any opcode uses.
	if x != 0 {
		return opInfo{}
	}
	switch result.code {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		if result.modes[2] == Immediate {
			return opInfo{}
		}
	case OpInput:
		if result.modes[0] == Immediate {
			return opInfo{}
		}
	}
	return result
}

func decodeHead(x Cell) opInfo {
	if x < 0 || x >= Cell(len(opTable)) {
		return opInfo{}
	}
	return opTable[x]
}
