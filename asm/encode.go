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
	"github.com/pkg/errors"

	"github.com/Scrumplesplunge/intscript/vm"
)

func mode(v ParamValue) int64 {
	switch v.(type) {
	case Address:
		return 0
	case Relative:
		return 2
	default:
		return 1
	}
}

// inputParams lists an instruction's readable operands with their 1-based
// positions. Writable operands are listed separately by outputParam.
func inputParams(i Instruction) []struct {
	param InputParam
	index int64
} {
	type ref = struct {
		param InputParam
		index int64
	}
	switch i := i.(type) {
	case Add:
		return []ref{{i.A, 1}, {i.B, 2}}
	case Mul:
		return []ref{{i.A, 1}, {i.B, 2}}
	case LessThan:
		return []ref{{i.A, 1}, {i.B, 2}}
	case Equals:
		return []ref{{i.A, 1}, {i.B, 2}}
	case JumpIfTrue:
		return []ref{{i.Condition, 1}, {i.Target, 2}}
	case JumpIfFalse:
		return []ref{{i.Condition, 1}, {i.Target, 2}}
	case Output:
		return []ref{{i.X, 1}}
	case AdjustRelativeBase:
		return []ref{{i.Amount, 1}}
	}
	return nil
}

func outputParam(i Instruction) (OutputParam, int64, bool) {
	switch i := i.(type) {
	case Add:
		return i.Out, 3, true
	case Mul:
		return i.Out, 3, true
	case LessThan:
		return i.Out, 3, true
	case Equals:
		return i.Out, 3, true
	case Input:
		return i.Out, 1, true
	}
	return OutputParam{}, 0, false
}

type environment struct {
	constants map[string]int64
	macros    map[string]InputParam
}

func (e *environment) setConstant(name string, value int64) error {
	if _, ok := e.constants[name]; ok {
		return errors.Errorf("duplicate definition for %q", name)
	}
	e.constants[name] = value
	return nil
}

// newEnvironment runs the first encoder pass: it assigns every label an
// offset, including operand labels, which bind to the cell holding the
// annotated operand, and collects .define macros.
func newEnvironment(statements []Statement) (*environment, error) {
	e := &environment{
		constants: make(map[string]int64),
		macros:    make(map[string]InputParam),
	}
	offset := int64(0)
	for _, s := range statements {
		switch s := s.(type) {
		case Label:
			if err := e.setConstant(s.Name, offset); err != nil {
				return nil, err
			}
		case Define:
			if _, ok := e.macros[s.Name]; ok {
				return nil, errors.Errorf("duplicate definition for %q", s.Name)
			}
			e.macros[s.Name] = s.Value
		case Integer:
			offset++
		case Ascii:
			offset += int64(len(s.Value)) + 1
		case Instruction:
			for _, r := range inputParams(s) {
				if r.param.Label != "" {
					if err := e.setConstant(r.param.Label, offset+r.index); err != nil {
						return nil, err
					}
				}
			}
			if out, index, ok := outputParam(s); ok && out.Label != "" {
				if err := e.setConstant(out.Label, offset+index); err != nil {
					return nil, err
				}
			}
			offset += s.Size()
		}
	}
	return e, nil
}

func (e *environment) resolveImmediate(x Immediate) (Literal, error) {
	switch x := x.(type) {
	case Literal:
		return x, nil
	case Name:
		if value, ok := e.constants[x.Text]; ok {
			return Literal{value}, nil
		}
		return Literal{}, errors.Errorf("undefined name %q", x.Text)
	}
	return Literal{}, errors.New("unresolvable immediate")
}

func (e *environment) resolveValue(v ParamValue) (ParamValue, error) {
	switch v := v.(type) {
	case Address:
		x, err := e.resolveImmediate(v.Value)
		if err != nil {
			return nil, err
		}
		return Address{x}, nil
	case Relative:
		x, err := e.resolveImmediate(v.Value)
		if err != nil {
			return nil, err
		}
		return Relative{x}, nil
	case Immediate:
		return e.resolveImmediate(v)
	}
	return nil, errors.New("unresolvable operand")
}

func (e *environment) resolveInput(p InputParam) (InputParam, error) {
	// A bare name may reference a macro, which substitutes the whole
	// operand.
	if n, ok := p.Value.(Name); ok {
		if m, ok := e.macros[n.Text]; ok {
			p.Value = m.Value
		}
	}
	v, err := e.resolveValue(p.Value)
	if err != nil {
		return InputParam{}, err
	}
	return InputParam{Label: p.Label, Value: v}, nil
}

func (e *environment) resolveOutput(p OutputParam) (OutputParam, error) {
	v, err := e.resolveValue(p.Value)
	if err != nil {
		return OutputParam{}, err
	}
	return OutputParam{Label: p.Label, Value: v}, nil
}

func (e *environment) resolveCalculation(a, b InputParam, out OutputParam) (ra, rb InputParam, rout OutputParam, err error) {
	if ra, err = e.resolveInput(a); err != nil {
		return
	}
	if rb, err = e.resolveInput(b); err != nil {
		return
	}
	rout, err = e.resolveOutput(out)
	return
}

func (e *environment) resolveInstruction(i Instruction) (Instruction, error) {
	switch i := i.(type) {
	case Literal, Halt:
		return i, nil
	case Add:
		a, b, out, err := e.resolveCalculation(i.A, i.B, i.Out)
		return Add{a, b, out}, err
	case Mul:
		a, b, out, err := e.resolveCalculation(i.A, i.B, i.Out)
		return Mul{a, b, out}, err
	case LessThan:
		a, b, out, err := e.resolveCalculation(i.A, i.B, i.Out)
		return LessThan{a, b, out}, err
	case Equals:
		a, b, out, err := e.resolveCalculation(i.A, i.B, i.Out)
		return Equals{a, b, out}, err
	case JumpIfTrue:
		c, err := e.resolveInput(i.Condition)
		if err != nil {
			return nil, err
		}
		t, err := e.resolveInput(i.Target)
		return JumpIfTrue{c, t}, err
	case JumpIfFalse:
		c, err := e.resolveInput(i.Condition)
		if err != nil {
			return nil, err
		}
		t, err := e.resolveInput(i.Target)
		return JumpIfFalse{c, t}, err
	case Input:
		out, err := e.resolveOutput(i.Out)
		return Input{out}, err
	case Output:
		x, err := e.resolveInput(i.X)
		return Output{x}, err
	case AdjustRelativeBase:
		amount, err := e.resolveInput(i.Amount)
		return AdjustRelativeBase{amount}, err
	}
	return nil, errors.Errorf("cannot resolve instruction %s", i)
}

func opcode(i Instruction) int64 {
	switch i.(type) {
	case Add:
		return 1
	case Mul:
		return 2
	case Input:
		return 3
	case Output:
		return 4
	case JumpIfTrue:
		return 5
	case JumpIfFalse:
		return 6
	case LessThan:
		return 7
	case Equals:
		return 8
	case AdjustRelativeBase:
		return 9
	case Halt:
		return 99
	}
	return 0
}

func paramValue(v ParamValue) (int64, error) {
	var imm Immediate
	switch v := v.(type) {
	case Address:
		imm = v.Value
	case Relative:
		imm = v.Value
	case Immediate:
		imm = v
	}
	l, ok := imm.(Literal)
	if !ok {
		return 0, errors.Errorf("unresolved immediate %q", imm)
	}
	return l.Value, nil
}

func encodeInstruction(out []vm.Cell, i Instruction) ([]vm.Cell, error) {
	if l, ok := i.(Literal); ok {
		return append(out, vm.Cell(l.Value)), nil
	}
	head := opcode(i)
	factor := int64(100)
	var values []int64
	for _, r := range inputParams(i) {
		v, err := paramValue(r.param.Value)
		if err != nil {
			return nil, err
		}
		head += factor * mode(r.param.Value)
		factor *= 10
		values = append(values, v)
	}
	if o, _, ok := outputParam(i); ok {
		v, err := paramValue(o.Value)
		if err != nil {
			return nil, err
		}
		head += factor * mode(o.Value)
		values = append(values, v)
	}
	out = append(out, vm.Cell(head))
	for _, v := range values {
		out = append(out, vm.Cell(v))
	}
	return out, nil
}

// Encode flattens statements into the numeric program image. It is a pure
// function of its input: the same statements always produce the same cells.
func Encode(statements []Statement) ([]vm.Cell, error) {
	e, err := newEnvironment(statements)
	if err != nil {
		return nil, err
	}
	var output []vm.Cell
	for _, s := range statements {
		switch s := s.(type) {
		case Label, Define:
		case Integer:
			x, err := e.resolveImmediate(s.Value)
			if err != nil {
				return nil, err
			}
			output = append(output, vm.Cell(x.Value))
		case Ascii:
			for _, c := range []byte(s.Value) {
				output = append(output, vm.Cell(c))
			}
			output = append(output, 0)
		case Instruction:
			resolved, err := e.resolveInstruction(s)
			if err != nil {
				return nil, err
			}
			if output, err = encodeInstruction(output, resolved); err != nil {
				return nil, err
			}
		}
	}
	return output, nil
}
