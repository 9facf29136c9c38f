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
	"path/filepath"
	"strings"
	"testing"

	"github.com/Scrumplesplunge/intscript/compiler"
)

func parse(t *testing.T, source string) *compiler.Module {
	t.Helper()
	m, err := compiler.Parse("test.is", source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return m
}

func expectParseError(t *testing.T, source, message string) {
	t.Helper()
	_, err := compiler.Parse("test.is", source)
	if err == nil {
		t.Errorf("expected an error for %q", source)
		return
	}
	if !strings.Contains(err.Error(), message) {
		t.Errorf("expected error containing %q for %q, got %q", message, source, err)
	}
}

// body parses a function wrapped around the given statements and returns
// them.
func body(t *testing.T, statements string) []compiler.Stmt {
	t.Helper()
	m := parse(t, "function main() {\n"+statements+"}\n")
	f, ok := m.Body[0].(compiler.Function)
	if !ok {
		t.Fatalf("expected a function, got %v", m.Body[0])
	}
	return f.Body
}

func TestParseDeclarations(t *testing.T) {
	m := parse(t, `
const size = 3, greeting = "hi";
var total;
var cells[size];

function main() {
}
`)
	if len(m.Body) != 5 {
		t.Fatalf("expected 5 declarations, got %d", len(m.Body))
	}
	if c, ok := m.Body[0].(compiler.Const); !ok || c.Name != "size" {
		t.Errorf("expected const size, got %v", m.Body[0])
	}
	if c, ok := m.Body[1].(compiler.Const); !ok || c.Name != "greeting" {
		t.Errorf("expected const greeting, got %v", m.Body[1])
	}
	if d, ok := m.Body[2].(compiler.DeclareScalar); !ok || d.Name != "total" {
		t.Errorf("expected var total, got %v", m.Body[2])
	}
	if d, ok := m.Body[3].(compiler.DeclareArray); !ok || d.Name != "cells" {
		t.Errorf("expected var cells[size], got %v", m.Body[3])
	}
	if f, ok := m.Body[4].(compiler.Function); !ok || f.Name != "main" {
		t.Errorf("expected function main, got %v", m.Body[4])
	}
}

func TestParseImports(t *testing.T) {
	m := parse(t, "import foo.bar;\nimport baz;\n")
	if len(m.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(m.Imports))
	}
	want := filepath.Join("lib", "foo", "bar") + ".is"
	if got := m.Imports[0].Resolve("lib"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := m.Imports[1].Resolve("."); got != "baz.is" {
		t.Errorf("expected baz.is, got %q", got)
	}
}

func TestParseVarInitialisers(t *testing.T) {
	statements := body(t, "var a, b = 1, c;\n")
	if len(statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(statements))
	}
	if d, ok := statements[0].(compiler.DeclareScalar); !ok || d.Name != "a" {
		t.Errorf("expected var a, got %v", statements[0])
	}
	if d, ok := statements[1].(compiler.DeclareScalar); !ok || d.Name != "b" {
		t.Errorf("expected var b, got %v", statements[1])
	}
	if a, ok := statements[2].(compiler.Assign); !ok || a.Left.String() != "b" {
		t.Errorf("expected b = 1, got %v", statements[2])
	}
	if d, ok := statements[3].(compiler.DeclareScalar); !ok || d.Name != "c" {
		t.Errorf("expected var c, got %v", statements[3])
	}
}

func TestParseElseIfChain(t *testing.T) {
	statements := body(t, `if 1 {
  output 1;
} else if 2 {
  output 2;
} else {
  output 3;
}
`)
	outer, ok := statements[0].(compiler.If)
	if !ok {
		t.Fatalf("expected an if, got %v", statements[0])
	}
	if len(outer.Else) != 1 {
		t.Fatalf("expected a single nested else-if, got %d statements", len(outer.Else))
	}
	inner, ok := outer.Else[0].(compiler.If)
	if !ok {
		t.Fatalf("expected a nested if, got %v", outer.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Errorf("expected the final else to hold one statement, got %d", len(inner.Else))
	}
}

// condition parses "if <source> { ... }" and returns the condition tree.
func condition(t *testing.T, source string) compiler.Expr {
	t.Helper()
	statements := body(t, "if "+source+" {\n}\n")
	i, ok := statements[0].(compiler.If)
	if !ok {
		t.Fatalf("expected an if, got %v", statements[0])
	}
	return i.Condition
}

func TestParseDesugaring(t *testing.T) {
	// a > b is b < a.
	lt, ok := condition(t, "a > b").(compiler.LessThan)
	if !ok || lt.Left.String() != "b" || lt.Right.String() != "a" {
		t.Errorf("expected a > b to parse as (b < a), got %v", condition(t, "a > b"))
	}
	// a != b is (a == b) == 0.
	ne, ok := condition(t, "a != b").(compiler.Equals)
	if !ok || ne.Left.String() != "(a == b)" || ne.Right.String() != "0" {
		t.Errorf("expected a != b to parse as ((a == b) == 0), got %v", condition(t, "a != b"))
	}
	// <= and >= wrap with logical not.
	le, ok := condition(t, "a <= b").(compiler.Equals)
	if !ok || le.Left.String() != "(b < a)" || le.Right.String() != "0" {
		t.Errorf("expected a <= b to parse as ((b < a) == 0), got %v", condition(t, "a <= b"))
	}
	// -y is 0 - y.
	statements := body(t, "x = -y;\nx = a[i];\n")
	neg, ok := statements[0].(compiler.Assign).Right.(compiler.Sub)
	if !ok || neg.Left.String() != "0" || neg.Right.String() != "y" {
		t.Errorf("expected -y to parse as (0 - y), got %v", statements[0].(compiler.Assign).Right)
	}
	// a[i] is *(a + i).
	read, ok := statements[1].(compiler.Assign).Right.(compiler.Read)
	if !ok || read.Addr.String() != "(a + i)" {
		t.Errorf("expected a[i] to parse as *(a + i), got %v", statements[1].(compiler.Assign).Right)
	}
}

func TestParseShortCircuitOperators(t *testing.T) {
	or, ok := condition(t, "a && b || c && d").(compiler.LogicalOr)
	if !ok {
		t.Fatalf("expected || at the top, got %v", condition(t, "a && b || c && d"))
	}
	if _, ok := or.Left.(compiler.LogicalAnd); !ok {
		t.Errorf("expected && on the left of ||, got %v", or.Left)
	}
	if _, ok := or.Right.(compiler.LogicalAnd); !ok {
		t.Errorf("expected && on the right of ||, got %v", or.Right)
	}
}

func TestParseAddAssign(t *testing.T) {
	statements := body(t, "i += 1;\n*p += 2;\n")
	if _, ok := statements[0].(compiler.AddAssign); !ok {
		t.Errorf("expected i += 1 to parse, got %v", statements[0])
	}
	if _, ok := statements[1].(compiler.AddAssign); !ok {
		t.Errorf("expected *p += 2 to parse, got %v", statements[1])
	}
}

func TestParseInput(t *testing.T) {
	statements := body(t, "x = input;\n")
	if _, ok := statements[0].(compiler.Assign).Right.(compiler.Input); !ok {
		t.Errorf("expected input expression, got %v", statements[0].(compiler.Assign).Right)
	}
}

func TestLvalueDiscipline(t *testing.T) {
	// Accepted lvalues.
	body(t, "x = 1;\n*x = 2;\narr[i] = 3;\n")
	// Rejected lvalues.
	expectParseError(t, "function main() {\n1 = 2;\n}\n", "1 is not an lvalue.")
	expectParseError(t, "function main() {\nf() = 3;\n}\n", "f() is not an lvalue.")
	expectParseError(t, "function main() {\n(a+b) = 4;\n}\n", "(a + b) is not an lvalue.")
	expectParseError(t, "function main() {\nf() += 1;\n}\n", "f() is not an lvalue.")
}

func TestParseErrors(t *testing.T) {
	expectParseError(t, "function main() {\nx + 1;\n}\n",
		"Only call expressions can be performed as statements.")
	expectParseError(t, "var 1x;\n", "Names cannot start with numbers.")
	expectParseError(t, "function main() {\nvar a[;];\n}\n", "Expected name.")
	expectParseError(t, "blah;\n", "Expected declaration.")
	expectParseError(t, "const x = \"bad\\q\";\n", "Invalid escape sequence.")
	expectParseError(t, "function f(x {\n}\n", `Expected ")"`)
}

func TestParseDiagnosticFormat(t *testing.T) {
	_, err := compiler.Parse("test.is", "function main() {\n1 = 2;\n}\n")
	if err == nil {
		t.Fatal("expected an error")
	}
	text := err.Error()
	if !strings.HasPrefix(text, "test.is:2:") {
		t.Errorf("expected position test.is:2:..., got %q", text)
	}
	if !strings.Contains(text, ": error: ") || !strings.Contains(text, "^") {
		t.Errorf("expected a caret diagnostic, got %q", text)
	}
}
