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
	"strconv"
	"strings"
)

// A ParamValue is the operand proper: an Immediate used directly (immediate
// mode), an Address (position mode), or a Relative cell (relative mode).
type ParamValue interface {
	isParamValue()
	String() string
}

// An Immediate is a literal cell value or a symbolic name for one. Every
// Name must resolve to a Literal before a program can be encoded.
type Immediate interface {
	ParamValue
	isImmediate()
}

// Literal is a known cell value. As a Statement it embeds one raw cell in
// the image.
type Literal struct{ Value int64 }

// Name is a symbolic reference to a label, constant, or macro.
type Name struct{ Text string }

// Address denotes the memory cell whose index is the immediate.
type Address struct{ Value Immediate }

// Relative denotes the cell at relative base plus the immediate.
type Relative struct{ Value Immediate }

func (Literal) isImmediate() {}
func (Name) isImmediate()    {}

func (Literal) isParamValue()  {}
func (Name) isParamValue()     {}
func (Address) isParamValue()  {}
func (Relative) isParamValue() {}

func (l Literal) String() string { return strconv.FormatInt(l.Value, 10) }
func (n Name) String() string    { return n.Text }
func (a Address) String() string { return "*" + a.Value.String() }
func (r Relative) String() string {
	return "base[" + r.Value.String() + "]"
}

// An InputParam is a readable operand. A non-empty Label names the cell that
// holds this operand in the encoded image, so later code can patch it.
type InputParam struct {
	Label string
	Value ParamValue
}

// An OutputParam is a writable operand: an Address or a Relative, never a
// bare Immediate.
type OutputParam struct {
	Label string
	Value ParamValue
}

func (p InputParam) String() string  { return paramString(p.Value, p.Label) }
func (p OutputParam) String() string { return paramString(p.Value, p.Label) }

func paramString(v ParamValue, label string) string {
	if label == "" {
		return v.String()
	}
	return v.String() + " @ " + label
}

// Input returns p as an InputParam. Anything writable is also readable.
func (p OutputParam) Input() InputParam {
	return InputParam{Label: p.Label, Value: p.Value}
}

// A Statement is one line of assembly: a label, an instruction, or a
// directive.
type Statement interface {
	isStatement()
	String() string
}

// An Instruction is a statement that occupies cells in the encoded image.
type Instruction interface {
	Statement
	isInstruction()
	// Size returns the number of cells the instruction encodes to.
	Size() int64
}

// A Directive is a pseudo statement: a macro definition or embedded data.
type Directive interface {
	Statement
	isDirective()
}

// Label marks the current offset with a name.
type Label struct{ Name string }

// Add stores A + B in Out.
type Add struct {
	A, B InputParam
	Out  OutputParam
}

// Mul stores A * B in Out.
type Mul struct {
	A, B InputParam
	Out  OutputParam
}

// LessThan stores 1 in Out if A < B, and 0 otherwise.
type LessThan struct {
	A, B InputParam
	Out  OutputParam
}

// Equals stores 1 in Out if A == B, and 0 otherwise.
type Equals struct {
	A, B InputParam
	Out  OutputParam
}

// JumpIfTrue jumps to Target if Condition is nonzero.
type JumpIfTrue struct {
	Condition, Target InputParam
}

// JumpIfFalse jumps to Target if Condition is zero.
type JumpIfFalse struct {
	Condition, Target InputParam
}

// Input reads one value from the input channel into Out.
type Input struct{ Out OutputParam }

// Output writes X to the output channel.
type Output struct{ X InputParam }

// AdjustRelativeBase adds Amount to the relative base register.
type AdjustRelativeBase struct{ Amount InputParam }

// Halt stops the program.
type Halt struct{}

// Define binds a name to an operand for symbol substitution. It emits no
// cells.
type Define struct {
	Name  string
	Value InputParam
}

// Integer embeds one cell with the given value.
type Integer struct{ Value Immediate }

// Ascii embeds the bytes of a string followed by a zero cell.
type Ascii struct{ Value string }

func (Label) isStatement()              {}
func (Literal) isStatement()            {}
func (Add) isStatement()                {}
func (Mul) isStatement()                {}
func (LessThan) isStatement()           {}
func (Equals) isStatement()             {}
func (JumpIfTrue) isStatement()         {}
func (JumpIfFalse) isStatement()        {}
func (Input) isStatement()              {}
func (Output) isStatement()             {}
func (AdjustRelativeBase) isStatement() {}
func (Halt) isStatement()               {}
func (Define) isStatement()             {}
func (Integer) isStatement()            {}
func (Ascii) isStatement()              {}

func (Literal) isInstruction()            {}
func (Add) isInstruction()                {}
func (Mul) isInstruction()                {}
func (LessThan) isInstruction()           {}
func (Equals) isInstruction()             {}
func (JumpIfTrue) isInstruction()         {}
func (JumpIfFalse) isInstruction()        {}
func (Input) isInstruction()              {}
func (Output) isInstruction()             {}
func (AdjustRelativeBase) isInstruction() {}
func (Halt) isInstruction()               {}

func (Define) isDirective()  {}
func (Integer) isDirective() {}
func (Ascii) isDirective()   {}

func (Literal) Size() int64            { return 1 }
func (Add) Size() int64                { return 4 }
func (Mul) Size() int64                { return 4 }
func (LessThan) Size() int64           { return 4 }
func (Equals) Size() int64             { return 4 }
func (JumpIfTrue) Size() int64         { return 3 }
func (JumpIfFalse) Size() int64        { return 3 }
func (Input) Size() int64              { return 2 }
func (Output) Size() int64             { return 2 }
func (AdjustRelativeBase) Size() int64 { return 2 }
func (Halt) Size() int64               { return 1 }

func (l Label) String() string { return l.Name + ":" }

func calcString(mnemonic string, a, b InputParam, out OutputParam) string {
	return mnemonic + " " + a.String() + ", " + b.String() + ", " + out.String()
}

func (i Add) String() string      { return calcString("add", i.A, i.B, i.Out) }
func (i Mul) String() string      { return calcString("mul", i.A, i.B, i.Out) }
func (i LessThan) String() string { return calcString("lt", i.A, i.B, i.Out) }
func (i Equals) String() string   { return calcString("eq", i.A, i.B, i.Out) }

func (i JumpIfTrue) String() string {
	return "jnz " + i.Condition.String() + ", " + i.Target.String()
}

func (i JumpIfFalse) String() string {
	return "jz " + i.Condition.String() + ", " + i.Target.String()
}

func (i Input) String() string  { return "in " + i.Out.String() }
func (i Output) String() string { return "out " + i.X.String() }

func (i AdjustRelativeBase) String() string {
	return "arb " + i.Amount.String()
}

func (Halt) String() string { return "halt" }

func (d Define) String() string {
	return ".define " + d.Name + " " + d.Value.String()
}

func (d Integer) String() string { return ".int " + d.Value.String() }

func (d Ascii) String() string { return `.ascii ` + quoteAscii(d.Value) }

// quoteAscii quotes a string with exactly the escapes the parser accepts.
func quoteAscii(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
