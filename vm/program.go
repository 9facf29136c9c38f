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

import "github.com/pkg/errors"

// State describes where a Program stopped when Resume returned.
type State int

const (
	// Ready means the program can execute its next instruction.
	Ready State = iota
	// WaitingForInput means the program suspended on an input instruction
	// and needs ProvideInput before the next Resume.
	WaitingForInput
	// Output means the program suspended on an output instruction and needs
	// GetOutput before the next Resume.
	Output
	// Halt means the program has terminated.
	Halt
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case WaitingForInput:
		return "waiting_for_input"
	case Output:
		return "output"
	case Halt:
		return "halt"
	}
	return "unknown"
}

// TraceFunc is called before each instruction executes when tracing is
// enabled with the Trace option.
type TraceFunc func(p *Program)

// Option interface
type Option func(*Program) error

// Trace installs a hook that runs before each instruction executes. The hook
// may inspect the Program with PC, RelativeBase and Fetch but must not drive
// it.
func Trace(f TraceFunc) Option {
	return func(p *Program) error {
		p.trace = f
		return nil
	}
}

// A Program is a loaded Intcode program together with its execution state.
type Program struct {
	mem          memory
	pc           Cell
	relativeBase Cell
	state        State
	output       Cell
	inputAddress Cell
	trace        TraceFunc
	insCount     int64
}

// New creates a Program with the given image loaded at address zero.
func New(image []Cell, opts ...Option) (*Program, error) {
	p := &Program{mem: make(memory)}
	for i, v := range image {
		p.mem.set(Cell(i), v)
	}
	if err := p.SetOptions(opts...); err != nil {
		return nil, err
	}
	return p, nil
}

// SetOptions sets the provided options.
func (p *Program) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return err
		}
	}
	return nil
}

// PC returns the current program counter.
func (p *Program) PC() Cell { return p.pc }

// RelativeBase returns the current relative base register.
func (p *Program) RelativeBase() Cell { return p.relativeBase }

// State returns the current execution state.
func (p *Program) State() State { return p.state }

// Done reports whether the program has halted.
func (p *Program) Done() bool { return p.state == Halt }

// InstructionCount returns the number of instructions executed so far.
func (p *Program) InstructionCount() int64 { return p.insCount }

// Fetch returns the value of the memory cell at the given address without
// affecting execution. Negative addresses read as zero.
func (p *Program) Fetch(addr Cell) Cell {
	if addr < 0 {
		return 0
	}
	return p.mem.get(addr)
}

func (p *Program) arg(op opInfo, i int) (Cell, error) {
	x := p.mem.get(p.pc + Cell(i) + 1)
	switch op.modes[i] {
	case Immediate:
		return x, nil
	case Relative:
		x += p.relativeBase
	}
	if x < 0 {
		return 0, errors.Errorf("read from negative address %d at pc=%d", x, p.pc)
	}
	return p.mem.get(x), nil
}

func (p *Program) writeAddress(op opInfo, i int) (Cell, error) {
	x := p.mem.get(p.pc + Cell(i) + 1)
	switch op.modes[i] {
	case Immediate:
		return 0, errors.Errorf("immediate-mode destination at pc=%d", p.pc)
	case Relative:
		x += p.relativeBase
	}
	if x < 0 {
		return 0, errors.Errorf("write to negative address %d at pc=%d", x, p.pc)
	}
	return x, nil
}

func (p *Program) put(op opInfo, i int, v Cell) error {
	addr, err := p.writeAddress(op, i)
	if err != nil {
		return err
	}
	p.mem.set(addr, v)
	return nil
}

func b2c(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

// Resume executes instructions until the program halts, needs input, or has
// produced output, and returns the matching state. A non-nil error is a trap:
// the program hit an illegal instruction or an out-of-range address, and must
// not be resumed again. Calling Resume while the program is suspended or
// halted is a programming error and panics.
func (p *Program) Resume() (State, error) {
	if p.state != Ready {
		panic("vm: Resume called in state " + p.state.String())
	}
	for {
		if p.trace != nil {
			p.trace(p)
		}
		if p.pc < 0 {
			return p.state, errors.Errorf("execution at negative address %d", p.pc)
		}
		head := p.mem.get(p.pc)
		op := decodeHead(head)
		if op.code == 0 {
			return p.state, errors.Errorf("illegal instruction %d at pc=%d", head, p.pc)
		}
		p.insCount++
		switch op.code {
		case OpAdd, OpMul, OpLessThan, OpEquals:
			a, err := p.arg(op, 0)
			if err != nil {
				return p.state, err
			}
			b, err := p.arg(op, 1)
			if err != nil {
				return p.state, err
			}
			var v Cell
			switch op.code {
			case OpAdd:
				v = a + b
			case OpMul:
				v = a * b
			case OpLessThan:
				v = b2c(a < b)
			case OpEquals:
				v = b2c(a == b)
			}
			if err := p.put(op, 2, v); err != nil {
				return p.state, err
			}
			p.pc += 4
		case OpJumpIfTrue, OpJumpIfFalse:
			c, err := p.arg(op, 0)
			if err != nil {
				return p.state, err
			}
			t, err := p.arg(op, 1)
			if err != nil {
				return p.state, err
			}
			if (c != 0) == (op.code == OpJumpIfTrue) {
				p.pc = t
			} else {
				p.pc += 3
			}
		case OpInput:
			addr, err := p.writeAddress(op, 0)
			if err != nil {
				return p.state, err
			}
			p.inputAddress = addr
			p.state = WaitingForInput
			return p.state, nil
		case OpOutput:
			v, err := p.arg(op, 0)
			if err != nil {
				return p.state, err
			}
			p.output = v
			p.state = Output
			return p.state, nil
		case OpAdjustRelativeBase:
			v, err := p.arg(op, 0)
			if err != nil {
				return p.state, err
			}
			p.relativeBase += v
			p.pc += 2
		case OpHalt:
			p.state = Halt
			return p.state, nil
		}
	}
}

// ProvideInput completes an input suspension with the given value and
// advances past the input instruction. It panics unless the program is
// waiting for input.
func (p *Program) ProvideInput(x Cell) {
	if p.state != WaitingForInput {
		panic("vm: ProvideInput called in state " + p.state.String())
	}
	p.state = Ready
	p.mem.set(p.inputAddress, x)
	p.pc += 2
}

// GetOutput completes an output suspension, advancing past the output
// instruction, and returns the value. It panics unless the program is
// suspended on an output.
func (p *Program) GetOutput() Cell {
	if p.state != Output {
		panic("vm: GetOutput called in state " + p.state.String())
	}
	p.state = Ready
	p.pc += 2
	return p.output
}

// Run resumes the program until it halts, answering input suspensions from
// input in order and collecting output values. It fails if the program asks
// for more input than was supplied, or on any trap.
func (p *Program) Run(input []Cell) ([]Cell, error) {
	var output []Cell
	for {
		state, err := p.Resume()
		if err != nil {
			return output, err
		}
		switch state {
		case WaitingForInput:
			if len(input) == 0 {
				return output, errors.New("program wants input but none is left")
			}
			p.ProvideInput(input[0])
			input = input[1:]
		case Output:
			output = append(output, p.GetOutput())
		case Halt:
			return output, nil
		}
	}
}
