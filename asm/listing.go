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
	"io"

	"github.com/Scrumplesplunge/intscript/internal/isi"
)

// WriteListing writes statements as assembly text that Parse accepts:
// labels flush left, everything else indented, one statement per line.
func WriteListing(w io.Writer, statements []Statement) error {
	ew := isi.NewErrWriter(w)
	for _, s := range statements {
		if _, ok := s.(Label); !ok {
			io.WriteString(ew, "  ")
		}
		io.WriteString(ew, s.String())
		ew.Write([]byte{'\n'})
	}
	return ew.Err
}
