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

// Package vm implements the Intcode virtual machine.
//
// A Program owns an infinite sparse memory of signed 64-bit cells and runs
// cooperatively: Resume executes instructions until the program halts, needs
// an input value, or has produced an output value, and returns the matching
// State. The caller completes an input suspension with ProvideInput and an
// output suspension with GetOutput; both advance the program counter past the
// suspended instruction. Driving the Program in any other order is a
// programming error and panics.
//
// Instruction heads are validated with a precomputed lookup table that
// decomposes the opcode and the three addressing-mode digits in one step;
// every head value the table rejects is reported as a trap, not executed.
package vm
