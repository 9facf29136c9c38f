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

package isi

import (
	"strconv"
	"strings"
)

// A Diagnostic is a fatal front-end error with a source location. Its Error
// string has the shape
//
//	file:line:column: error: message
//	    offending source line
//	    ^
//
// with the caret under the offending column.
type Diagnostic struct {
	File      string
	Line, Col int
	Msg       string
	Source    string // full source text, used to extract the offending line
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.File)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(d.Line))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(d.Col))
	b.WriteString(": error: ")
	b.WriteString(d.Msg)
	if line, ok := sourceLine(d.Source, d.Line); ok {
		b.WriteString("\n    ")
		b.WriteString(line)
		b.WriteString("\n    ")
		col := d.Col
		if col < 1 {
			col = 1
		}
		if col > len(line)+1 {
			col = len(line) + 1
		}
		b.WriteString(strings.Repeat(" ", col-1))
		b.WriteByte('^')
	}
	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	for n := 1; ; n++ {
		end := strings.IndexByte(source, '\n')
		if n == line {
			if end < 0 {
				return source, source != "" || line == 1
			}
			return source[:end], true
		}
		if end < 0 {
			return "", false
		}
		source = source[end+1:]
	}
}
