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

package compiler_test

import (
	"strings"
	"testing"

	"github.com/Scrumplesplunge/intscript/asm"
	"github.com/Scrumplesplunge/intscript/compiler"
	"github.com/Scrumplesplunge/intscript/vm"
)

type C []vm.Cell

func compile(t *testing.T, source string) []vm.Cell {
	t.Helper()
	modules, err := compiler.LoadSource("main.is", source)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	statements, err := compiler.Generate(modules)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	image, err := asm.Encode(statements)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return image
}

func compileAndRun(t *testing.T, source string, input C) C {
	t.Helper()
	p, err := vm.New(compile(t, source))
	if err != nil {
		t.Fatal(err)
	}
	output, err := p.Run(input)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return output
}

func expectGenerateError(t *testing.T, source, message string) {
	t.Helper()
	modules, err := compiler.LoadSource("main.is", source)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	_, err = compiler.Generate(modules)
	if err == nil {
		t.Errorf("expected an error for:\n%s", source)
		return
	}
	if !strings.Contains(err.Error(), message) {
		t.Errorf("expected error containing %q, got %q", message, err)
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

func expectOutput(t *testing.T, name, source string, input, output C) {
	t.Helper()
	got := compileAndRun(t, source, input)
	if !equal(got, output) {
		t.Errorf("%s: expected output %d, got %d", name, output, got)
	}
}

func TestHello(t *testing.T) {
	expectOutput(t, "hello", `
function main() {
  var i = 0;
  while i < 5 {
    output 65 + i;
    i += 1;
  }
}
`, nil, C{'A', 'B', 'C', 'D', 'E'})
}

func TestEcho(t *testing.T) {
	expectOutput(t, "echo", `
function main() {
  var c = input;
  while c != 0 {
    output c;
    c = input;
  }
}
`, C{'h', 'i', 0}, C{'h', 'i'})
}

func TestSum(t *testing.T) {
	expectOutput(t, "sum", `
function main() {
  var a = input;
  var b = input;
  output a + b;
}
`, C{2, 3}, C{5})
}

func TestShortCircuitAnd(t *testing.T) {
	expectOutput(t, "short-circuit-and", `
function f() {
  output 70;
  return 0;
}

function g() {
  output 71;
  return 1;
}

function main() {
  if f() && g() {
    output 63;
  } else {
    output 33;
  }
}
`, nil, C{70, 33})
}

func TestShortCircuitOr(t *testing.T) {
	expectOutput(t, "short-circuit-or", `
function g() {
  output 71;
  return 1;
}

function main() {
  if 1 || g() {
    output 63;
  }
}
`, nil, C{63})
}

func TestArrays(t *testing.T) {
	expectOutput(t, "arrays", `
function main() {
  var a[3];
  a[0] = 49;
  a[1] = 50;
  a[2] = 51;
  var i = 0;
  while i < 3 {
    output a[i];
    i += 1;
  }
}
`, nil, C{'1', '2', '3'})
}

func TestBreakContinue(t *testing.T) {
	expectOutput(t, "break-continue", `
function main() {
  var i = 0;
  while 1 {
    i += 1;
    if i == 3 {
      continue;
    }
    if 5 < i {
      break;
    }
    output 48 + i;
  }
}
`, nil, C{49, 50, 52, 53})
}

func TestGlobals(t *testing.T) {
	expectOutput(t, "globals", `
var counter;
const step = 2;

function bump() {
  counter = counter + step;
  return counter;
}

function main() {
  bump();
  output 48 + bump();
}
`, nil, C{52})
}

func TestGlobalArray(t *testing.T) {
	expectOutput(t, "global-array", `
var table[2];

function main() {
  table[0] = 7;
  table[1] = 8;
  output 48 + table[0] + table[1];
}
`, nil, C{63})
}

func TestStringConstant(t *testing.T) {
	expectOutput(t, "string-constant", `
const greeting = "AB";

function main() {
  output *greeting;
  output *(greeting + 1);
}
`, nil, C{'A', 'B'})
}

func TestHeapstart(t *testing.T) {
	expectOutput(t, "heapstart", `
function main() {
  *heapstart = 7;
  output *heapstart + 41;
}
`, nil, C{48})
}

func TestDerefAddAssign(t *testing.T) {
	expectOutput(t, "deref-add-assign", `
function main() {
  var a[2];
  a[1] = 40;
  a[1] += 2;
  *heapstart = 5;
  *heapstart += 1;
  output a[1] + *heapstart;
}
`, nil, C{48})
}

func TestFunctionArguments(t *testing.T) {
	expectOutput(t, "function-arguments", `
function sub3(a, b, c) {
  return a - b - c;
}

function main() {
  output sub3(100, 30, 20);
}
`, nil, C{50})
}

func TestIndirectCall(t *testing.T) {
	expectOutput(t, "indirect-call", `
function double(x) {
  return x + x;
}

function main() {
  var f = double;
  output f(24);
}
`, nil, C{48})
}

func TestSequentialCalls(t *testing.T) {
	// Call results feed the next call through a variable: the calling
	// convention stores arguments relative to the callee's frame, so a call
	// may not appear in argument position.
	expectOutput(t, "sequential-calls", `
function inc(x) {
  return x + 1;
}

function main() {
  var a = inc(62);
  var b = inc(a);
  output inc(b);
}
`, nil, C{65})
}

func TestConstantFolding(t *testing.T) {
	expectOutput(t, "constant-folding", `
const a = 2 * 3 + 1;
const b = a - 2;

function main() {
  const c = b * 2;
  output 38 + c;
}
`, nil, C{48})
}

func TestShadowing(t *testing.T) {
	expectOutput(t, "shadowing", `
const x = 1;

function main() {
  const x = 2;
  var i = 0;
  while i < 1 {
    const x = 65;
    output x;
    i += 1;
  }
  output 48 + x;
}
`, nil, C{65, 50})
}

func TestHaltStatement(t *testing.T) {
	expectOutput(t, "halt", `
function main() {
  output 65;
  halt;
  output 66;
}
`, nil, C{65})
}

func TestRecursionIsRejected(t *testing.T) {
	// A function's name is only bound once its body has generated, so a
	// recursive call fails to resolve.
	expectGenerateError(t, `
function f(n) {
  if n == 0 {
    return 0;
  }
  return f(n - 1);
}

function main() {
  output 48 + f(3);
}
`, `"f" not found in function "f"`)
}

func TestGenerateErrors(t *testing.T) {
	expectGenerateError(t, "function main() {\noutput y;\n}\n",
		`"y" not found in function "main"`)
	expectGenerateError(t, "function main() {\nconst c = 1;\nc = 2;\n}\n",
		`Cannot use constant "c" as an lvalue`)
	expectGenerateError(t, "function main() {\nbreak;\n}\n",
		"Illegal break statement")
	expectGenerateError(t, "function main() {\ncontinue;\n}\n",
		"Illegal continue statement")
	expectGenerateError(t, "function main() {\nvar a[input];\n}\n",
		"Array size is not a compile-time constant.")
	expectGenerateError(t, "var x;\nvar x;\nfunction main() {\n}\n",
		`Multiple definitions for "x" at global scope.`)
	expectGenerateError(t, "function main() {\nvar x;\nconst x = 1;\n}\n",
		`Multiple definitions for "x" in function "main"`)
	expectGenerateError(t, "function main() {\nconst c = input;\n}\n",
		"is not a constant expression.")
	expectGenerateError(t, "var x;\nconst y = x + 1;\nfunction main() {\n}\n",
		"is not a constant")
}

func TestMissingMain(t *testing.T) {
	modules, err := compiler.LoadSource("main.is", "var x;\n")
	if err != nil {
		t.Fatal(err)
	}
	statements, err := compiler.Generate(modules)
	if err != nil {
		t.Fatal(err)
	}
	// The synthetic entry point references func_main, which nothing
	// defines, so encoding fails.
	if _, err := asm.Encode(statements); err == nil {
		t.Error("expected an unresolved reference to func_main")
	}
}

func TestGenerateDeterminism(t *testing.T) {
	source := `
function main() {
  var i = 0;
  while i < 3 {
    output 65 + i;
    i += 1;
  }
}
`
	first := compile(t, source)
	second := compile(t, source)
	if !equal(first, second) {
		t.Error("two compilations of the same source differ")
	}
}

// TestListingRoundTrip feeds the generated assembly listing back through the
// assembly parser and checks that it encodes to the same image.
func TestListingRoundTrip(t *testing.T) {
	source := `
const greeting = "hi\n";

function twice(x) {
  return x * 2;
}

function main() {
  var i = 0;
  while i < 2 {
    output *(greeting + i);
    i += 1;
  }
  output twice(5);
}
`
	modules, err := compiler.LoadSource("main.is", source)
	if err != nil {
		t.Fatal(err)
	}
	statements, err := compiler.Generate(modules)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := asm.Encode(statements)
	if err != nil {
		t.Fatal(err)
	}
	var listing strings.Builder
	if err := asm.WriteListing(&listing, statements); err != nil {
		t.Fatal(err)
	}
	reparsed, err := asm.Parse("listing.asm", listing.String())
	if err != nil {
		t.Fatalf("listing did not reparse: %v\n%s", err, listing.String())
	}
	viaListing, err := asm.Encode(reparsed)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(direct, viaListing) {
		t.Error("listing round trip changed the program")
	}
}
