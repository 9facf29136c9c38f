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

	"github.com/Scrumplesplunge/intscript/internal/isi"
)

// Parse parses assembly source into statements. The name parameter is used
// in diagnostics to name the source of an error; if the source was read from
// a file, it should be the file name. The returned error, if not nil, is a
// *isi.Diagnostic pointing at the first syntactic fault.
func Parse(name, source string) (statements []Statement, err error) {
	p := &parser{file: name, src: source, line: 1, column: 1}
	defer func() {
		if e := recover(); e != nil {
			d, ok := e.(*isi.Diagnostic)
			if !ok {
				panic(e)
			}
			statements, err = nil, d
		}
	}()
	return p.parseProgram(), nil
}

type parser struct {
	file         string
	src          string
	pos          int
	line, column int
}

func (p *parser) die(message string) {
	panic(&isi.Diagnostic{
		File:   p.file,
		Line:   p.line,
		Col:    p.column,
		Msg:    message,
		Source: p.src,
	})
}

func (p *parser) rest() string { return p.src[p.pos:] }

func (p *parser) empty() bool { return p.pos == len(p.src) }

func (p *parser) advance(amount int) {
	for _, c := range []byte(p.src[p.pos : p.pos+amount]) {
		if c == '\n' {
			p.line++
			p.column = 1
		} else {
			p.column++
		}
	}
	p.pos += amount
}

func (p *parser) skipWhitespace() {
	for {
		rest := p.rest()
		i := 0
		for i < len(rest) && rest[i] == ' ' {
			i++
		}
		if i < len(rest) && rest[i] == '#' {
			// Skip a comment.
			end := strings.IndexByte(rest[i:], '\n')
			if end < 0 {
				p.advance(len(rest))
				return
			}
			p.advance(i + end)
			continue
		}
		p.advance(i)
		return
	}
}

func (p *parser) eat(value string) {
	p.skipWhitespace()
	if !strings.HasPrefix(p.rest(), value) {
		p.die("Expected " + strconv.Quote(value) + ".")
	}
	p.advance(len(value))
}

func (p *parser) peek() byte {
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	return p.src[p.pos]
}

func (p *parser) get() byte {
	c := p.peek()
	p.advance(1)
	return c
}

func (p *parser) parseLiteral() Literal {
	p.skipWhitespace()
	rest := p.rest()
	i := 0
	if i < len(rest) && rest[i] == '-' {
		i++
	}
	for i < len(rest) && isi.IsDigit(rest[i]) {
		i++
	}
	value, err := strconv.ParseInt(rest[:i], 10, 64)
	if err != nil {
		p.die("Expected numeric literal.")
	}
	p.advance(i)
	return Literal{value}
}

// isNameByte matches assembly name characters. Unlike source identifiers,
// assembly names may contain underscores: the code generator builds labels
// like arg_main_x, and its listings must assemble.
func isNameByte(c byte) bool { return isi.IsAlnum(c) || c == '_' }

func (p *parser) parseName() Name {
	p.skipWhitespace()
	rest := p.rest()
	i := 0
	for i < len(rest) && isNameByte(rest[i]) {
		i++
	}
	if i == 0 {
		p.die("Expected name.")
	}
	if isi.IsDigit(rest[0]) {
		p.die("Names cannot start with numbers.")
	}
	p.advance(i)
	return Name{rest[:i]}
}

func (p *parser) parseImmediate() Immediate {
	p.skipWhitespace()
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	if c := p.peek(); isi.IsAlpha(c) || c == '_' {
		return p.parseName()
	}
	return p.parseLiteral()
}

func (p *parser) parseAddress() Address {
	p.eat("*")
	return Address{p.parseImmediate()}
}

func (p *parser) parseRelative() Relative {
	p.eat("base[")
	i := p.parseImmediate()
	p.eat("]")
	return Relative{i}
}

func (p *parser) parseLabelAnnotation() string {
	p.skipWhitespace()
	if !p.empty() && p.peek() == '@' {
		p.eat("@")
		return p.parseName().Text
	}
	return ""
}

func (p *parser) parseInputParam() InputParam {
	p.skipWhitespace()
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	var result InputParam
	if p.peek() == '*' {
		result.Value = p.parseAddress()
	} else if strings.HasPrefix(p.rest(), "base[") {
		result.Value = p.parseRelative()
	} else {
		result.Value = p.parseImmediate()
	}
	result.Label = p.parseLabelAnnotation()
	return result
}

func (p *parser) parseOutputParam() OutputParam {
	p.skipWhitespace()
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	var result OutputParam
	if p.peek() == '*' {
		result.Value = p.parseAddress()
	} else {
		if !strings.HasPrefix(p.rest(), "base[") {
			p.die("Expected *x or base[x].")
		}
		result.Value = p.parseRelative()
	}
	result.Label = p.parseLabelAnnotation()
	return result
}

func (p *parser) parseCalculation() (a, b InputParam, out OutputParam) {
	a = p.parseInputParam()
	p.eat(",")
	b = p.parseInputParam()
	p.eat(",")
	out = p.parseOutputParam()
	return a, b, out
}

func (p *parser) parseJump() (condition, target InputParam) {
	condition = p.parseInputParam()
	p.eat(",")
	target = p.parseInputParam()
	return condition, target
}

func (p *parser) parseInstruction(mnemonic string) Instruction {
	switch mnemonic {
	case "add":
		a, b, out := p.parseCalculation()
		return Add{a, b, out}
	case "mul":
		a, b, out := p.parseCalculation()
		return Mul{a, b, out}
	case "lt":
		a, b, out := p.parseCalculation()
		return LessThan{a, b, out}
	case "eq":
		a, b, out := p.parseCalculation()
		return Equals{a, b, out}
	case "in":
		return Input{p.parseOutputParam()}
	case "out":
		return Output{p.parseInputParam()}
	case "jnz":
		condition, target := p.parseJump()
		return JumpIfTrue{condition, target}
	case "jz":
		condition, target := p.parseJump()
		return JumpIfFalse{condition, target}
	case "arb":
		return AdjustRelativeBase{p.parseInputParam()}
	case "halt":
		return Halt{}
	}
	p.die("Unknown op " + strconv.Quote(mnemonic) + ".")
	return nil
}

func (p *parser) parseDirective() Directive {
	p.eat(".")
	id := p.parseName().Text
	switch id {
	case "define":
		name := p.parseName().Text
		value := p.parseInputParam()
		return Define{name, value}
	case "int":
		return Integer{p.parseImmediate()}
	case "ascii":
		return Ascii{p.parseString()}
	}
	p.die("Invalid directive.")
	return nil
}

func (p *parser) parseString() string {
	p.eat(`"`)
	var value []byte
	for p.peek() != '"' {
		if p.peek() == '\\' {
			p.advance(1)
			switch p.peek() {
			case '\\', '"':
				value = append(value, p.get())
			case 'n':
				value = append(value, '\n')
				p.advance(1)
			default:
				p.die("Invalid escape sequence.")
			}
		} else {
			value = append(value, p.get())
		}
	}
	p.advance(1)
	return string(value)
}

func (p *parser) parseStatement() Statement {
	p.skipWhitespace()
	lookahead := p.peek()
	if lookahead == '.' {
		return p.parseDirective()
	}
	if !isNameByte(lookahead) {
		p.die("Expected label or instruction.")
	}
	id := p.parseName().Text
	p.skipWhitespace()
	if !p.empty() && p.peek() == ':' {
		p.eat(":")
		return Label{id}
	}
	return p.parseInstruction(id)
}

func (p *parser) parseNewline() {
	p.skipWhitespace()
	if p.get() != '\n' {
		p.die("Expected newline.")
	}
}

func (p *parser) parseProgram() []Statement {
	p.skipWhitespace()
	var output []Statement
	for !p.empty() {
		if p.peek() != '\n' {
			output = append(output, p.parseStatement())
		}
		if p.empty() {
			break
		}
		p.parseNewline()
		p.skipWhitespace()
	}
	return output
}
