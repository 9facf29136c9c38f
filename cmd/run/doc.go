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

// Command run executes an intcode program.
//
//	run [flags] <filename>
//
// The program format is selected by the file extension: ".ic" is intcode,
// ".asm" is assembled on the fly, and ".is" is compiled and then assembled.
// The path "-" reads intcode from stdin.
//
// The program's input and output channels are wired to stdin and stdout, one
// byte per value; when stdin reaches EOF the program reads -1. When stdin is
// a terminal it is put into raw mode so bytes arrive as they are typed; pass
// --noraw to disable this. With --interactive the channels instead exchange
// whole integers on a line-edited prompt.
//
// --debug writes each decoded instruction to stderr before it executes, and
// --dump writes a full disassembly to stderr before the program starts.
package main
