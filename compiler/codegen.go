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

package compiler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Scrumplesplunge/intscript/asm"
)

// genError carries a fatal code generation fault to the recover in Generate.
type genError struct{ err error }

func die(format string, args ...interface{}) {
	panic(genError{errors.Errorf(format, args...)})
}

// Generate lowers modules to assembly. Modules are processed in dependency
// order; the output starts with a synthetic entry point that calls main and
// halts, and ends with the data segments and the heapstart label.
func Generate(modules map[string]*Module) (statements []asm.Statement, err error) {
	defer func() {
		if e := recover(); e != nil {
			g, ok := e.(genError)
			if !ok {
				panic(e)
			}
			statements, err = nil, g.err
		}
	}()
	order, err := dependencyOrder(modules)
	if err != nil {
		return nil, err
	}
	g := newGenerator()
	for _, name := range order {
		g.genModule(modules[name])
	}
	return g.finish(), nil
}

// dependencyOrder topologically sorts modules by their imports. If no
// progress can be made, the remaining modules form at least one import cycle.
func dependencyOrder(modules map[string]*Module) ([]string, error) {
	outstanding := make(map[string]bool, len(modules))
	for name := range modules {
		outstanding[name] = true
	}
	var output []string
	for len(outstanding) > 0 {
		names := make([]string, 0, len(outstanding))
		for name := range outstanding {
			names = append(names, name)
		}
		sort.Strings(names)
		progress := false
		for _, name := range names {
			m := modules[name]
			ready := true
			for _, dep := range m.Imports {
				if outstanding[dep.Resolve(m.Context())] {
					ready = false
					break
				}
			}
			if ready {
				output = append(output, name)
				delete(outstanding, name)
				progress = true
			}
		}
		if !progress {
			names = names[:0]
			for name := range outstanding {
				names = append(names, name)
			}
			sort.Strings(names)
			return nil, errors.Errorf(
				"import cycle involving {%s}", strings.Join(names, ", "))
		}
	}
	return output, nil
}

type moduleExports struct {
	variables map[string]bool
	constants map[string]asm.Immediate
}

type generator struct {
	labels  map[string]int
	modules map[string]*moduleExports

	text, rodata, data []asm.Statement
}

// newGenerator creates a generator whose text stream starts with the
// synthetic entry point: a call to main followed by a halt.
func newGenerator() *generator {
	g := &generator{
		labels:  make(map[string]int),
		modules: make(map[string]*moduleExports),
	}
	root := newModuleContext(g, &Module{})
	f := newFunctionContext(root, "_start")
	f.top().constants["main"] = asm.Name{Text: "func_main"}
	f.genStmt(Call{Fn: Name{"main"}})
	g.emit(asm.Halt{})
	return g
}

// label returns a fresh label with the given prefix.
func (g *generator) label(name string) string {
	id := g.labels[name]
	g.labels[name]++
	return name + strconv.Itoa(id)
}

func (g *generator) emit(s ...asm.Statement) { g.text = append(g.text, s...) }

// makeString materialises a string constant in the read-only data segment
// and returns the name of its first cell.
func (g *generator) makeString(value string) asm.Immediate {
	address := g.label("string")
	g.rodata = append(g.rodata, asm.Label{Name: address}, asm.Ascii{Value: value})
	return asm.Name{Text: address}
}

func (g *generator) finish() []asm.Statement {
	output := g.text
	output = append(output, g.rodata...)
	output = append(output, g.data...)
	output = append(output, asm.Label{Name: "heapstart"})
	return output
}

func (g *generator) genModule(m *Module) {
	mc := newModuleContext(g, m)
	mc.genDecls(m.Body)
	g.modules[m.Name] = &moduleExports{
		variables: mc.variables,
		constants: mc.constants,
	}
}

type moduleContext struct {
	g *generator

	importedVariables map[string]bool
	importedConstants map[string]asm.Immediate
	variables         map[string]bool
	constants         map[string]asm.Immediate
}

func newModuleContext(g *generator, m *Module) *moduleContext {
	mc := &moduleContext{
		g:                 g,
		importedVariables: make(map[string]bool),
		importedConstants: map[string]asm.Immediate{
			"heapstart": asm.Name{Text: "heapstart"},
		},
		variables: make(map[string]bool),
		constants: make(map[string]asm.Immediate),
	}
	context := m.Context()
	for _, imp := range m.Imports {
		dependency := g.modules[imp.Resolve(context)]
		for name := range dependency.variables {
			mc.importedVariables[name] = true
		}
		for name, value := range dependency.constants {
			mc.importedConstants[name] = value
		}
	}
	return mc
}

func (m *moduleContext) hasGlobal(name string) bool {
	if m.importedVariables[name] || m.variables[name] {
		return true
	}
	if _, ok := m.importedConstants[name]; ok {
		return true
	}
	_, ok := m.constants[name]
	return ok
}

func (m *moduleContext) checkNewGlobal(name string) {
	if m.hasGlobal(name) {
		die("Multiple definitions for %q at global scope.", name)
	}
}

func (m *moduleContext) evalExpr(e Expr) asm.Immediate {
	return evalExpr(e, m.g, func(n string) (asm.Immediate, bool) {
		if v, ok := m.constants[n]; ok {
			return v, true
		}
		v, ok := m.importedConstants[n]
		return v, ok
	})
}

func (m *moduleContext) genDecls(declarations []Decl) {
	for _, d := range declarations {
		m.genDecl(d)
	}
}

func (m *moduleContext) genDecl(d Decl) {
	switch d := d.(type) {
	case Const:
		m.checkNewGlobal(d.Name)
		m.constants[d.Name] = m.evalExpr(d.Value)
	case DeclareScalar:
		m.checkNewGlobal(d.Name)
		m.g.data = append(m.g.data,
			asm.Label{Name: "gv_" + d.Name},
			asm.Integer{Value: asm.Literal{Value: 0}})
		m.variables[d.Name] = true
	case DeclareArray:
		m.checkNewGlobal(d.Name)
		size, ok := m.evalExpr(d.Size).(asm.Literal)
		if !ok {
			die("Array size is not a constant expression.")
		}
		m.g.data = append(m.g.data, asm.Label{Name: "gv_" + d.Name})
		for i := int64(0); i < size.Value; i++ {
			m.g.data = append(m.g.data, asm.Integer{Value: asm.Literal{Value: 0}})
		}
		m.constants[d.Name] = asm.Name{Text: "gv_" + d.Name}
	case Function:
		m.genFunction(d)
	}
}

// genFunction emits a function's frame cells (arguments, output address,
// return address) immediately before its entry label, so that a caller can
// address the frame relative to the function address. The function name is
// bound after the body generates, so a function cannot call itself.
func (m *moduleContext) genFunction(d Function) {
	m.checkNewGlobal(d.Name)
	f := newFunctionContext(m, d.Name)
	for _, parameter := range d.Params {
		m.g.emit(
			asm.Label{Name: "arg_" + d.Name + "_" + parameter},
			asm.Integer{Value: asm.Literal{Value: 0}})
		f.arguments[parameter] = true
	}
	m.g.emit(
		asm.Label{Name: "func_" + d.Name + "_output"},
		asm.Integer{Value: asm.Literal{Value: 0}},
		asm.Label{Name: "func_" + d.Name + "_return"},
		asm.Integer{Value: asm.Literal{Value: 0}},
		asm.Label{Name: "func_" + d.Name})
	f.genStmts(d.Body)
	f.genStmt(Return{Value: IntLit{Value: 0}})
	m.constants[d.Name] = asm.Name{Text: "func_" + d.Name}
	for i := 0; i < f.maxSize; i++ {
		m.g.data = append(m.g.data,
			asm.Label{Name: "lv_" + d.Name + "_" + strconv.Itoa(i)},
			asm.Integer{Value: asm.Literal{Value: 0}})
	}
}

// evalExpr folds a constant expression to an immediate. String literals
// materialise in the read-only data segment and fold to their address.
func evalExpr(e Expr, g *generator, lookup func(string) (asm.Immediate, bool)) asm.Immediate {
	fold := func(l, r Expr, op string, f func(x, y int64) int64) asm.Immediate {
		x, xok := evalExpr(l, g, lookup).(asm.Literal)
		y, yok := evalExpr(r, g, lookup).(asm.Literal)
		if !xok || !yok {
			die("Cannot %s %s and %s in a constant expression.", op, l, r)
		}
		return asm.Literal{Value: f(x.Value, y.Value)}
	}
	switch e := e.(type) {
	case IntLit:
		return asm.Literal{Value: e.Value}
	case StrLit:
		return g.makeString(e.Value)
	case Name:
		if value, ok := lookup(e.Text); ok {
			return value
		}
		die("%q is not a constant.", e.Text)
	case Add:
		return fold(e.Left, e.Right, "add", func(x, y int64) int64 { return x + y })
	case Sub:
		return fold(e.Left, e.Right, "subtract", func(x, y int64) int64 { return x - y })
	case Mul:
		return fold(e.Left, e.Right, "multiply", func(x, y int64) int64 { return x * y })
	}
	die("Expression %s is not a constant expression.", e)
	return nil
}

type scopeFrame struct {
	size      int
	variables map[string]int
	constants map[string]asm.Immediate

	breakLabel, continueLabel string
}

func newScopeFrame(size int, breakLabel, continueLabel string) *scopeFrame {
	return &scopeFrame{
		size:          size,
		variables:     make(map[string]int),
		constants:     make(map[string]asm.Immediate),
		breakLabel:    breakLabel,
		continueLabel: continueLabel,
	}
}

type functionContext struct {
	mod       *moduleContext
	name      string
	arguments map[string]bool
	scope     []*scopeFrame
	maxSize   int
}

func newFunctionContext(mod *moduleContext, name string) *functionContext {
	return &functionContext{
		mod:       mod,
		name:      name,
		arguments: make(map[string]bool),
		scope:     []*scopeFrame{newScopeFrame(0, "", "")},
	}
}

func (f *functionContext) top() *scopeFrame { return f.scope[len(f.scope)-1] }

func (f *functionContext) pushScope() {
	current := f.top()
	f.scope = append(f.scope,
		newScopeFrame(current.size, current.breakLabel, current.continueLabel))
}

func (f *functionContext) popScope() { f.scope = f.scope[:len(f.scope)-1] }

type varKind int

const (
	notFound varKind = iota
	globalConstant
	globalVariable
	localConstant
	localVariable
	argument
)

func (f *functionContext) lookup(name string) varKind {
	if f.arguments[name] {
		return argument
	}
	for i := len(f.scope) - 1; i >= 0; i-- {
		if _, ok := f.scope[i].variables[name]; ok {
			return localVariable
		}
		if _, ok := f.scope[i].constants[name]; ok {
			return localConstant
		}
	}
	if f.mod.variables[name] {
		return globalVariable
	}
	if _, ok := f.mod.constants[name]; ok {
		return globalConstant
	}
	if f.mod.importedVariables[name] {
		return globalVariable
	}
	if _, ok := f.mod.importedConstants[name]; ok {
		return globalConstant
	}
	return notFound
}

// checkNewLocal rejects redefinition within the innermost scope. Shadowing a
// binding from an enclosing scope is allowed.
func (f *functionContext) checkNewLocal(name string) {
	current := f.top()
	_, v := current.variables[name]
	_, c := current.constants[name]
	if v || c {
		die("Multiple definitions for %q in function %q.", name, f.name)
	}
}

func (f *functionContext) localVariable(name string) asm.OutputParam {
	if f.arguments[name] {
		return asm.OutputParam{
			Value: asm.Address{Value: asm.Name{Text: "arg_" + f.name + "_" + name}},
		}
	}
	for i := len(f.scope) - 1; i >= 0; i-- {
		if slot, ok := f.scope[i].variables[name]; ok {
			label := "lv_" + f.name + "_" + strconv.Itoa(slot)
			return asm.OutputParam{Value: asm.Address{Value: asm.Name{Text: label}}}
		}
	}
	die("Local variable %q not found.", name)
	return asm.OutputParam{}
}

func (f *functionContext) constant(name string) (asm.Immediate, bool) {
	for i := len(f.scope) - 1; i >= 0; i-- {
		if value, ok := f.scope[i].constants[name]; ok {
			return value, true
		}
	}
	if value, ok := f.mod.constants[name]; ok {
		return value, true
	}
	value, ok := f.mod.importedConstants[name]
	return value, ok
}

func (f *functionContext) defineScalar(name string) {
	current := f.top()
	current.variables[name] = current.size
	current.size++
	if current.size > f.maxSize {
		f.maxSize = current.size
	}
}

func (f *functionContext) defineArray(name string, size int64) {
	current := f.top()
	label := "lv_" + f.name + "_" + strconv.Itoa(current.size)
	current.constants[name] = asm.Name{Text: label}
	current.size += int(size)
	if current.size > f.maxSize {
		f.maxSize = current.size
	}
}

func (f *functionContext) evalExpr(e Expr) asm.Immediate {
	return evalExpr(e, f.mod.g, func(n string) (asm.Immediate, bool) {
		return f.constant(n)
	})
}

var zero = asm.InputParam{Value: asm.Literal{Value: 0}}

func address(name string) asm.OutputParam {
	return asm.OutputParam{Value: asm.Address{Value: asm.Name{Text: name}}}
}

// result wraps a fresh expression value: an immediate zero whose cell is
// labelled so that the producing instruction can patch the value into the
// consuming instruction's operand.
func result(label string) asm.InputParam {
	return asm.InputParam{Label: label, Value: asm.Literal{Value: 0}}
}

func immediateName(name string) asm.InputParam {
	return asm.InputParam{Value: asm.Name{Text: name}}
}

// genAddr lowers an lvalue to a writable operand.
func (f *functionContext) genAddr(e Expr) asm.OutputParam {
	switch e := e.(type) {
	case Name:
		switch f.lookup(e.Text) {
		case notFound:
			die("%q not found in function %q.", e.Text, f.name)
		case globalConstant, localConstant:
			die("Cannot use constant %q as an lvalue in function %q.", e.Text, f.name)
		case globalVariable:
			return address("gv_" + e.Text)
		case argument:
			return address("arg_" + f.name + "_" + e.Text)
		case localVariable:
			return f.localVariable(e.Text)
		}
	case Read:
		value := f.genExpr(e.Addr)
		label := f.mod.g.label("read")
		f.mod.g.emit(asm.Add{A: zero, B: value, Out: address(label)})
		return asm.OutputParam{
			Label: label,
			Value: asm.Address{Value: asm.Literal{Value: 0}},
		}
	}
	die("Cannot use expression %s as lvalue in function %q.", e, f.name)
	return asm.OutputParam{}
}

func (f *functionContext) genExpr(e Expr) asm.InputParam {
	switch e := e.(type) {
	case IntLit:
		return asm.InputParam{Value: asm.Literal{Value: e.Value}}
	case StrLit:
		return asm.InputParam{Value: f.mod.g.makeString(e.Value)}
	case Name:
		return f.genName(e)
	case Call:
		return f.genCall(e)
	case Add:
		return f.genCalc("add", e.Left, e.Right,
			func(a, b asm.InputParam, out asm.OutputParam) asm.Instruction {
				return asm.Add{A: a, B: b, Out: out}
			})
	case Mul:
		return f.genCalc("mul", e.Left, e.Right,
			func(a, b asm.InputParam, out asm.OutputParam) asm.Instruction {
				return asm.Mul{A: a, B: b, Out: out}
			})
	case Sub:
		negated := Mul{e.Right, IntLit{Value: -1}}
		return f.genExpr(Add{e.Left, negated})
	case LessThan:
		return f.genCalc("lt", e.Left, e.Right,
			func(a, b asm.InputParam, out asm.OutputParam) asm.Instruction {
				return asm.LessThan{A: a, B: b, Out: out}
			})
	case Equals:
		return f.genCalc("eq", e.Left, e.Right,
			func(a, b asm.InputParam, out asm.OutputParam) asm.Instruction {
				return asm.Equals{A: a, B: b, Out: out}
			})
	case Input:
		label := f.mod.g.label("input")
		f.mod.g.emit(asm.Input{Out: address(label)})
		return result(label)
	case Read:
		return f.genAddr(e).Input()
	case LogicalAnd:
		return f.genShortCircuit(e.Left, e.Right, true)
	case LogicalOr:
		return f.genShortCircuit(e.Left, e.Right, false)
	}
	die("Cannot generate code for expression %s.", e)
	return asm.InputParam{}
}

func (f *functionContext) genName(n Name) asm.InputParam {
	switch f.lookup(n.Text) {
	case notFound:
		die("%q not found in function %q.", n.Text, f.name)
	case globalConstant, localConstant:
		value, _ := f.constant(n.Text)
		return asm.InputParam{Value: value}
	case globalVariable:
		return address("gv_" + n.Text).Input()
	case argument:
		return address("arg_" + f.name + "_" + n.Text).Input()
	case localVariable:
		return f.localVariable(n.Text).Input()
	}
	return asm.InputParam{}
}

func (f *functionContext) genCalc(prefix string, left, right Expr,
	instruction func(a, b asm.InputParam, out asm.OutputParam) asm.Instruction) asm.InputParam {
	a := f.genExpr(left)
	b := f.genExpr(right)
	label := f.mod.g.label(prefix)
	f.mod.g.emit(instruction(a, b, address(label)))
	return result(label)
}

// genCall lowers a function call. The callee's frame (arguments, output
// address, return address) lives immediately before its entry point, so the
// relative base is pointed at calleeAddress - (n + 2) while the arguments
// are stored, and restored before the jump.
func (f *functionContext) genCall(c Call) asm.InputParam {
	g := f.mod.g
	n := int64(len(c.Args))
	// Compute the function address.
	callee := f.genExpr(c.Fn)
	if callee.Label == "" {
		out := g.label("callee")
		g.emit(asm.Add{A: zero, B: callee, Out: address(out)})
		callee = result(out)
	}
	getCallee := address(callee.Label).Input()
	// Adjust the relative base to point at the start of the arguments.
	args := g.label("args")
	g.emit(asm.Add{
		A:   getCallee,
		B:   asm.InputParam{Value: asm.Literal{Value: -(n + 2)}},
		Out: address(args),
	})
	g.emit(asm.AdjustRelativeBase{Amount: result(args)})
	// Compute the arguments.
	for i := int64(0); i < n; i++ {
		param := f.genExpr(c.Args[i])
		out := asm.OutputParam{Value: asm.Relative{Value: asm.Literal{Value: i}}}
		g.emit(asm.Add{A: zero, B: param, Out: out})
	}
	// Store the output address.
	outputLabel := g.label("return")
	g.emit(asm.Add{
		A:   zero,
		B:   immediateName(outputLabel),
		Out: asm.OutputParam{Value: asm.Relative{Value: asm.Literal{Value: n}}},
	})
	// Store the return address.
	returnLabel := g.label("call")
	g.emit(asm.Add{
		A:   zero,
		B:   immediateName(returnLabel),
		Out: asm.OutputParam{Value: asm.Relative{Value: asm.Literal{Value: n + 1}}},
	})
	// Revert the relative base.
	args2 := g.label("revertargs")
	g.emit(asm.Mul{
		A:   address(args).Input(),
		B:   asm.InputParam{Value: asm.Literal{Value: -1}},
		Out: address(args2),
	})
	g.emit(asm.AdjustRelativeBase{Amount: result(args2)})
	// Jump into the function.
	g.emit(asm.JumpIfFalse{Condition: zero, Target: callee})
	g.emit(asm.Label{Name: returnLabel})
	return result(outputLabel)
}

// genShortCircuit lowers && and ||. The result cell is initialised to the
// identity of the operation and flipped on the short-circuit path.
func (f *functionContext) genShortCircuit(left, right Expr, and bool) asm.InputParam {
	g := f.mod.g
	one := asm.InputParam{Value: asm.Literal{Value: 1}}
	var label, shortCircuit, end string
	if and {
		label = g.label("and")
		shortCircuit = g.label("andfalse")
		end = g.label("andend")
		g.emit(asm.Add{A: zero, B: one, Out: address(label)})
	} else {
		label = g.label("or")
		shortCircuit = g.label("ortrue")
		end = g.label("orend")
		g.emit(asm.Add{A: zero, B: zero, Out: address(label)})
	}
	l := f.genExpr(left)
	if and {
		g.emit(asm.JumpIfFalse{Condition: l, Target: immediateName(shortCircuit)})
	} else {
		g.emit(asm.JumpIfTrue{Condition: l, Target: immediateName(shortCircuit)})
	}
	r := f.genExpr(right)
	if and {
		g.emit(asm.JumpIfTrue{Condition: r, Target: immediateName(end)})
		g.emit(asm.Label{Name: shortCircuit})
		g.emit(asm.Add{A: zero, B: zero, Out: address(label)})
	} else {
		g.emit(asm.JumpIfFalse{Condition: r, Target: immediateName(end)})
		g.emit(asm.Label{Name: shortCircuit})
		g.emit(asm.Add{A: zero, B: one, Out: address(label)})
	}
	g.emit(asm.Label{Name: end})
	return result(label)
}

func (f *functionContext) genStmts(statements []Stmt) {
	f.pushScope()
	for _, s := range statements {
		f.genStmt(s)
	}
	f.popScope()
}

func (f *functionContext) genStmt(s Stmt) {
	g := f.mod.g
	switch s := s.(type) {
	case Const:
		f.checkNewLocal(s.Name)
		f.top().constants[s.Name] = f.evalExpr(s.Value)
	case Call:
		// The call's value is stored into a scratch cell that doubles as
		// the instruction's own operand.
		value := f.genExpr(s)
		self := g.label("ignore")
		g.emit(asm.Add{A: value, B: result(self), Out: address(self)})
	case DeclareScalar:
		f.checkNewLocal(s.Name)
		f.defineScalar(s.Name)
	case DeclareArray:
		f.checkNewLocal(s.Name)
		size, ok := f.evalExpr(s.Size).(asm.Literal)
		if !ok {
			die("Array size is not a compile-time constant.")
		}
		f.defineArray(s.Name, size.Value)
	case Assign:
		value := f.genExpr(s.Right)
		address := f.genAddr(s.Left)
		g.emit(asm.Add{A: zero, B: value, Out: address})
	case AddAssign:
		f.genAddAssign(s)
	case If:
		condition := f.genExpr(s.Condition)
		endIf := g.label("endif")
		elseBranch := endIf
		if len(s.Else) > 0 {
			elseBranch = g.label("else")
		}
		g.emit(asm.JumpIfFalse{Condition: condition, Target: immediateName(elseBranch)})
		f.genStmts(s.Then)
		if len(s.Else) > 0 {
			g.emit(asm.JumpIfFalse{Condition: zero, Target: immediateName(endIf)})
			g.emit(asm.Label{Name: elseBranch})
			f.genStmts(s.Else)
		}
		g.emit(asm.Label{Name: endIf})
	case While:
		f.pushScope()
		whileStart := g.label("whilestart")
		whileCond := g.label("whilecond")
		whileEnd := g.label("whileend")
		f.top().breakLabel = whileEnd
		f.top().continueLabel = whileCond
		g.emit(asm.JumpIfFalse{Condition: zero, Target: immediateName(whileCond)})
		g.emit(asm.Label{Name: whileStart})
		f.genStmts(s.Body)
		g.emit(asm.Label{Name: whileCond})
		condition := f.genExpr(s.Condition)
		g.emit(asm.JumpIfTrue{Condition: condition, Target: immediateName(whileStart)})
		g.emit(asm.Label{Name: whileEnd})
		f.popScope()
	case Output:
		value := f.genExpr(s.Value)
		g.emit(asm.Output{X: value})
	case Return:
		// Store the return value at the output address.
		outputLabel := g.label("output")
		outputAddress := address("func_" + f.name + "_output").Input()
		g.emit(asm.Add{A: zero, B: outputAddress, Out: address(outputLabel)})
		output := asm.OutputParam{
			Label: outputLabel,
			Value: asm.Address{Value: asm.Literal{Value: 0}},
		}
		value := f.genExpr(s.Value)
		g.emit(asm.Add{A: zero, B: value, Out: output})
		// Return to the caller.
		returnAddress := address("func_" + f.name + "_return").Input()
		g.emit(asm.JumpIfFalse{Condition: zero, Target: returnAddress})
	case Break:
		if f.top().breakLabel == "" {
			die("Illegal break statement in function %q.", f.name)
		}
		g.emit(asm.JumpIfFalse{Condition: zero, Target: immediateName(f.top().breakLabel)})
	case Continue:
		if f.top().continueLabel == "" {
			die("Illegal continue statement in function %q.", f.name)
		}
		g.emit(asm.JumpIfFalse{Condition: zero, Target: immediateName(f.top().continueLabel)})
	case Halt:
		g.emit(asm.Halt{})
	}
}

// genAddAssign reads and writes through the same lvalue. When the address
// was computed at run time, the write operand needs its own patched copy of
// the address: the label on the read operand covers only that one cell.
func (f *functionContext) genAddAssign(s AddAssign) {
	g := f.mod.g
	value := f.genExpr(s.Right)
	addr := f.genAddr(s.Left)
	out := asm.OutputParam{Value: addr.Value}
	if addr.Label != "" {
		writeLabel := g.label("write")
		g.emit(asm.Add{A: address(addr.Label).Input(), B: zero, Out: address(writeLabel)})
		out = asm.OutputParam{
			Label: writeLabel,
			Value: asm.Address{Value: asm.Literal{Value: 0}},
		}
	}
	g.emit(asm.Add{A: addr.Input(), B: value, Out: out})
}
