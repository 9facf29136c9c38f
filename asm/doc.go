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

// Package asm implements the symbolic assembly layer of the toolchain.
//
// Assembly source is line oriented. A line holds a label ("name:"), an
// instruction ("add a, b, out"), or a dot directive (".define", ".int",
// ".ascii"). Comments run from '#' to the end of the line. An operand is an
// immediate (a number or a name), an address ("*x"), or a relative cell
// ("base[x]"), and may carry a label annotation ("@ name") that names the
// cell holding the operand in the encoded image. Label binding happens at
// cell granularity, so a label can resolve into the middle of another
// instruction; this is how generated code patches its own operands.
//
// Encode flattens statements into the numeric program in two passes: the
// first assigns every label an offset and collects .define macros, the second
// resolves names and emits cells. Decode is the inverse of Encode for legal
// instruction heads; cells that do not decode to an instruction come back as
// raw Literal values.
package asm
