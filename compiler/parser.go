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
	"strconv"
	"strings"

	"github.com/Scrumplesplunge/intscript/internal/isi"
)

// symbolChars are the characters that may form an operator symbol. A symbol
// token is the maximal run of these, so "<=" never parses as "<" then "=".
const symbolChars = "+-=<>!.&|"

// Parse parses a single module. The file parameter names the module in
// diagnostics and is the path against which its imports resolve. The
// returned error, if not nil, is a *isi.Diagnostic pointing at the first
// syntactic fault.
func Parse(file, source string) (m *Module, err error) {
	p := &parser{file: file, src: source, line: 1, column: 1}
	defer func() {
		if e := recover(); e != nil {
			d, ok := e.(*isi.Diagnostic)
			if !ok {
				panic(e)
			}
			m, err = nil, d
		}
	}()
	return p.parseModule(), nil
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

func (p *parser) parseNewline() {
	p.skipWhitespace()
	if p.get() != '\n' {
		p.die("Expected newline.")
	}
}

// peekName returns the alphanumeric run at the cursor without consuming it.
func (p *parser) peekName() string {
	p.skipWhitespace()
	rest := p.rest()
	i := 0
	for i < len(rest) && isi.IsAlnum(rest[i]) {
		i++
	}
	return rest[:i]
}

func (p *parser) consumeName(value string) bool {
	if p.peekName() == value {
		p.advance(len(value))
		return true
	}
	return false
}

func (p *parser) eatName(value string) {
	if !p.consumeName(value) {
		p.die("Expected " + strconv.Quote(value) + ".")
	}
}

// peekSymbol returns the operator-character run at the cursor without
// consuming it.
func (p *parser) peekSymbol() string {
	p.skipWhitespace()
	rest := p.rest()
	i := 0
	for i < len(rest) && strings.IndexByte(symbolChars, rest[i]) >= 0 {
		i++
	}
	return rest[:i]
}

func (p *parser) consumeSymbol(value string) bool {
	if p.peekSymbol() == value {
		p.advance(len(value))
		return true
	}
	return false
}

func (p *parser) eatSymbol(value string) {
	if !p.consumeSymbol(value) {
		p.die("Expected " + strconv.Quote(value) + ".")
	}
}

func (p *parser) parseInteger() int64 {
	rest := p.rest()
	i := 0
	for i < len(rest) && isi.IsDigit(rest[i]) {
		i++
	}
	value, err := strconv.ParseInt(rest[:i], 10, 64)
	if err != nil {
		p.die("Expected numeric literal.")
	}
	p.advance(i)
	return value
}

func (p *parser) parseStringLiteral() string {
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

func (p *parser) parseLiteral() Expr {
	p.skipWhitespace()
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	if isi.IsDigit(p.peek()) {
		return IntLit{p.parseInteger()}
	}
	if p.peek() == '"' {
		return StrLit{p.parseStringLiteral()}
	}
	p.die("Expected a literal value.")
	return nil
}

func (p *parser) parseName() Name {
	name := p.peekName()
	if name == "" {
		p.die("Expected name.")
	}
	if isi.IsDigit(name[0]) {
		p.die("Names cannot start with numbers.")
	}
	p.advance(len(name))
	return Name{name}
}

func (p *parser) parseTerm() Expr {
	p.skipWhitespace()
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	if p.peek() == '"' || isi.IsDigit(p.peek()) {
		return p.parseLiteral()
	}
	if p.peek() == '(' {
		p.eat("(")
		result := p.parseCondition()
		p.eat(")")
		return result
	}
	name := p.parseName()
	if name.Text == "input" {
		return Input{}
	}
	return name
}

func (p *parser) parseSuffix() Expr {
	result := p.parseTerm()
	for {
		p.skipWhitespace()
		if p.empty() {
			break
		}
		if p.peek() == '[' {
			// Array index.
			p.eat("[")
			address := p.parseExpression()
			p.eat("]")
			result = Read{Add{result, address}}
		} else if p.peek() == '(' {
			// Function call.
			p.eat("(")
			var arguments []Expr
			p.skipWhitespace()
			if p.peek() != ')' {
				arguments = append(arguments, p.parseExpression())
				p.skipWhitespace()
				for p.peek() != ')' {
					p.eat(",")
					arguments = append(arguments, p.parseExpression())
					p.skipWhitespace()
				}
			}
			p.eat(")")
			result = Call{result, arguments}
		} else {
			break
		}
	}
	return result
}

func (p *parser) parsePrefix() Expr {
	p.skipWhitespace()
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	if p.peek() == '*' {
		p.eat("*")
		return Read{p.parsePrefix()}
	}
	if p.peek() == '-' {
		p.eat("-")
		return Sub{IntLit{0}, p.parsePrefix()}
	}
	return p.parseSuffix()
}

func (p *parser) parseProduct() Expr {
	result := p.parsePrefix()
	p.skipWhitespace()
	for !p.empty() && p.peek() == '*' {
		p.eat("*")
		result = Mul{result, p.parsePrefix()}
		p.skipWhitespace()
	}
	return result
}

func (p *parser) parseSum() Expr {
	result := p.parseProduct()
	for {
		p.skipWhitespace()
		if p.empty() {
			break
		}
		if lookahead := p.peek(); lookahead == '+' {
			if strings.HasPrefix(p.rest(), "+=") {
				break
			}
			p.eat("+")
			result = Add{result, p.parseProduct()}
		} else if lookahead == '-' {
			p.eat("-")
			result = Sub{result, p.parseProduct()}
		} else {
			break
		}
	}
	return result
}

func (p *parser) parseExpression() Expr { return p.parseSum() }

func (p *parser) parseComparison() Expr {
	left := p.parseSum()
	switch {
	case p.consumeSymbol("<"):
		return LessThan{left, p.parseExpression()}
	case p.consumeSymbol("=="):
		return Equals{left, p.parseExpression()}
	case p.consumeSymbol(">"):
		return greaterThan(left, p.parseExpression())
	case p.consumeSymbol("<="):
		return lessOrEqual(left, p.parseExpression())
	case p.consumeSymbol(">="):
		return greaterOrEqual(left, p.parseExpression())
	case p.consumeSymbol("!="):
		return notEquals(left, p.parseExpression())
	}
	return left
}

func (p *parser) parseConjunction() Expr {
	left := p.parseComparison()
	for p.consumeSymbol("&&") {
		left = LogicalAnd{left, p.parseComparison()}
	}
	return left
}

func (p *parser) parseDisjunction() Expr {
	left := p.parseConjunction()
	for p.consumeSymbol("||") {
		left = LogicalOr{left, p.parseConjunction()}
	}
	return left
}

func (p *parser) parseCondition() Expr { return p.parseDisjunction() }

// parseVar parses a var statement. Initialisers are only permitted in
// statement position, where each one becomes a separate assignment.
func (p *parser) parseVar(allowInit bool) []Stmt {
	p.eatName("var")
	var output []Stmt
	for {
		id := p.parseName().Text
		p.skipWhitespace()
		if p.peek() == '[' {
			p.eat("[")
			size := p.parseExpression()
			p.eat("]")
			output = append(output, DeclareArray{id, size})
		} else {
			output = append(output, DeclareScalar{id})
		}
		if allowInit && p.peek() == '=' {
			p.eat("=")
			output = append(output, Assign{Name{id}, p.parseExpression()})
			p.skipWhitespace()
		}
		if p.peek() != ',' {
			break
		}
		p.eat(",")
	}
	p.eat(";")
	return output
}

func (p *parser) parseConstant() []Stmt {
	p.eatName("const")
	var output []Stmt
	for {
		id := p.parseName().Text
		p.eat("=")
		output = append(output, Const{id, p.parseExpression()})
		p.skipWhitespace()
		if p.peek() != ',' {
			break
		}
		p.eat(",")
	}
	p.eat(";")
	return output
}

func (p *parser) parseIfStatement() Stmt {
	p.eatName("if")
	condition := p.parseCondition()
	p.eat("{")
	p.parseNewline()
	thenBranch := p.parseStatements()
	p.eat("}")
	p.skipWhitespace()
	var elseBranch []Stmt
	if p.consumeName("else") {
		if p.peekName() == "if" {
			elseBranch = []Stmt{p.parseIfStatement()}
		} else {
			p.eat("{")
			p.parseNewline()
			elseBranch = p.parseStatements()
			p.eat("}")
		}
	}
	return If{condition, thenBranch, elseBranch}
}

func (p *parser) parseWhileStatement() Stmt {
	p.eatName("while")
	condition := p.parseCondition()
	p.eat("{")
	p.parseNewline()
	body := p.parseStatements()
	p.eat("}")
	return While{condition, body}
}

func (p *parser) parseLine(output []Stmt) []Stmt {
	if p.empty() {
		p.die("Unexpected end of input.")
	}
	if isi.IsAlpha(p.peek()) {
		switch p.peekName() {
		case "const":
			return append(output, p.parseConstant()...)
		case "var":
			return append(output, p.parseVar(true)...)
		case "if":
			return append(output, p.parseIfStatement())
		case "while":
			return append(output, p.parseWhileStatement())
		case "output":
			p.eatName("output")
			value := p.parseExpression()
			p.eat(";")
			return append(output, Output{value})
		case "return":
			p.eatName("return")
			value := p.parseExpression()
			p.eat(";")
			return append(output, Return{value})
		case "break":
			p.eatName("break")
			p.eat(";")
			return append(output, Break{})
		case "continue":
			p.eatName("continue")
			p.eat(";")
			return append(output, Continue{})
		case "halt":
			p.eatName("halt")
			p.eat(";")
			return append(output, Halt{})
		}
	}
	expr := p.parseExpression()
	p.skipWhitespace()
	rest := p.rest()
	if len(rest) > 0 && rest[0] == '=' && (len(rest) == 1 || rest[1] != '=') {
		if !IsLvalue(expr) {
			p.die(expr.String() + " is not an lvalue.")
		}
		p.eat("=")
		value := p.parseExpression()
		p.eat(";")
		return append(output, Assign{expr, value})
	}
	if strings.HasPrefix(rest, "+=") {
		if !IsLvalue(expr) {
			p.die(expr.String() + " is not an lvalue.")
		}
		p.eat("+=")
		value := p.parseExpression()
		p.eat(";")
		return append(output, AddAssign{expr, value})
	}
	if c, ok := expr.(Call); ok {
		p.eat(";")
		return append(output, c)
	}
	p.die("Only call expressions can be performed as statements.")
	return nil
}

func (p *parser) parseStatements() []Stmt {
	p.skipWhitespace()
	var output []Stmt
	for !p.empty() && p.peek() != '}' {
		output = p.parseLine(output)
		p.eat("\n")
		p.skipWhitespace()
	}
	return output
}

func (p *parser) parseFunctionDefinition() Function {
	p.eatName("function")
	name := p.parseName().Text
	p.eat("(")
	var params []string
	for {
		p.skipWhitespace()
		if p.peek() == ')' {
			break
		}
		params = append(params, p.parseName().Text)
		p.skipWhitespace()
		if p.peek() != ',' {
			break
		}
		p.eat(",")
	}
	p.eat(")")
	p.eat("{")
	p.parseNewline()
	body := p.parseStatements()
	p.eat("}")
	return Function{name, params, body}
}

func (p *parser) parseImport() Import {
	p.eatName("import")
	parts := []string{p.parseName().Text}
	for p.peekSymbol() == "." {
		p.eatSymbol(".")
		parts = append(parts, p.parseName().Text)
	}
	p.eat(";")
	return Import{parts}
}

func (p *parser) parseModule() *Module {
	output := &Module{Name: p.file}
	for p.peekName() == "import" {
		output.Imports = append(output.Imports, p.parseImport())
		p.parseNewline()
	}
	for {
		p.skipWhitespace()
		if p.empty() {
			break
		}
		if p.peek() == '\n' {
			p.parseNewline()
			continue
		}
		switch p.peekName() {
		case "const":
			for _, s := range p.parseConstant() {
				output.Body = append(output.Body, s.(Decl))
			}
		case "var":
			for _, s := range p.parseVar(false) {
				output.Body = append(output.Body, s.(Decl))
			}
		case "function":
			output.Body = append(output.Body, p.parseFunctionDefinition())
		default:
			p.die("Expected declaration.")
		}
		p.parseNewline()
	}
	return output
}
