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

package asm_test

import (
	"strings"
	"testing"

	"github.com/Scrumplesplunge/intscript/asm"
	"github.com/Scrumplesplunge/intscript/vm"
)

type C []vm.Cell

func assemble(t *testing.T, source string) []vm.Cell {
	t.Helper()
	statements := parse(t, source)
	cells, err := asm.Encode(statements)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return cells
}

func expectEncodeError(t *testing.T, source, message string) {
	t.Helper()
	statements := parse(t, source)
	_, err := asm.Encode(statements)
	if err == nil {
		t.Errorf("expected an error for %q", source)
		return
	}
	if !strings.Contains(err.Error(), message) {
		t.Errorf("expected error containing %q for %q, got %q", message, source, err)
	}
}

func equal(a, b C) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var encodings = [...]struct {
	name   string
	source string
	cells  C
}{
	{"add-immediates", "add 1, 2, *3\n", C{1101, 1, 2, 3}},
	{"mul-modes", "mul *1, base[2], base[3]\n", C{22002, 1, 2, 3}},
	{"halt", "halt\n", C{99}},
	{"in-position", "in *4\n", C{3, 4}},
	{"in-relative", "in base[-1]\n", C{203, -1}},
	{"out-immediate", "out 9\n", C{104, 9}},
	{"jumps", "jnz 1, 4\njz *0, base[2]\n", C{1105, 1, 4, 2006, 0, 2}},
	{"arb", "arb -7\n", C{109, -7}},
	{"int", ".int -12\n", C{-12}},
	{"ascii", ".ascii \"AB\\n\"\n", C{65, 66, 10, 0}},
}

func TestEncodings(t *testing.T) {
	for _, test := range encodings {
		cells := assemble(t, test.source)
		if !equal(cells, test.cells) {
			t.Errorf("%s: expected %d, got %d", test.name, test.cells, cells)
		}
	}
}

func TestSizeLaw(t *testing.T) {
	sized := []struct {
		source string
		size   int
	}{
		{"add 1, 2, *3\n", 4},
		{"mul 1, 2, *3\n", 4},
		{"lt 1, 2, *3\n", 4},
		{"eq 1, 2, *3\n", 4},
		{"jnz 1, 2\n", 3},
		{"jz 1, 2\n", 3},
		{"in *0\n", 2},
		{"out 0\n", 2},
		{"arb 0\n", 2},
		{"halt\n", 1},
	}
	for _, test := range sized {
		statements := parse(t, test.source)
		i, ok := statements[0].(asm.Instruction)
		if !ok {
			t.Fatalf("%q did not parse to an instruction", test.source)
		}
		if int(i.Size()) != test.size {
			t.Errorf("%q: Size() = %d, expected %d", test.source, i.Size(), test.size)
		}
		cells := assemble(t, test.source)
		if len(cells) != test.size {
			t.Errorf("%q: encoded to %d cells, expected %d", test.source, len(cells), test.size)
		}
	}
}

func TestLabelResolution(t *testing.T) {
	cells := assemble(t, `
jz 0, end
data:
  .int 42
end:
  halt
`)
	if !equal(cells, C{1106, 0, 4, 42, 99}) {
		t.Errorf("unexpected encoding %d", cells)
	}
}

func TestOperandLabel(t *testing.T) {
	// "here" labels the output operand cell of the add, three cells in.
	cells := assemble(t, `
add 1, 2, *0 @ here
  .int here
halt
`)
	if !equal(cells, C{1101, 1, 2, 0, 3, 99}) {
		t.Errorf("unexpected encoding %d", cells)
	}
}

func TestDefineMacro(t *testing.T) {
	cells := assemble(t, `
.define x *5
.define n 7
out x
out n
`)
	if !equal(cells, C{4, 5, 104, 7}) {
		t.Errorf("unexpected encoding %d", cells)
	}
}

func TestDefineMacroWithName(t *testing.T) {
	cells := assemble(t, `
.define v *spot
out v
spot:
  .int 33
`)
	if !equal(cells, C{4, 2, 33}) {
		t.Errorf("unexpected encoding %d", cells)
	}
}

func TestEncodeErrors(t *testing.T) {
	expectEncodeError(t, "x:\nx:\n", "duplicate definition")
	expectEncodeError(t, ".define x 1\n.define x 2\n", "duplicate definition")
	expectEncodeError(t, "out missing\n", `undefined name "missing"`)
	expectEncodeError(t, ".define x 1\n.int x\n", `undefined name "x"`)
	expectEncodeError(t, "add 1, 2, *0 @ dup\nmul 3, 4, *0 @ dup\n", "duplicate definition")
}

func TestEncodeDeterminism(t *testing.T) {
	source := `
start:
  add 1, 2, *0 @ x
  out x
  jz 0, start
  .ascii "hello"
`
	statements := parse(t, source)
	first, err := asm.Encode(statements)
	if err != nil {
		t.Fatal(err)
	}
	second, err := asm.Encode(statements)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(first, second) {
		t.Errorf("two encodings differ: %d vs %d", first, second)
	}
}
