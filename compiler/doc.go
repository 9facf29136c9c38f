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

// Package compiler implements the intscript front end: a recursive-descent
// parser for the source language, a module loader that resolves imports
// against the importing file's directory, and a code generator that lowers
// module ASTs to symbolic assembly for package asm to encode.
//
// Compilation is a pure function over loaded modules: Load parses a file and
// everything it imports, Generate orders the modules by their imports and
// lowers them into a single statement list ending with the synthetic
// heapstart label. A synthetic entry point calls main and halts.
package compiler
