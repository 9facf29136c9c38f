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

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Scrumplesplunge/intscript/internal/isi"
)

// MaxProgramSize is the largest number of cells ReadProgram accepts.
const MaxProgramSize = 5000

// ReadProgram parses the textual intcode format: a single line of base-10
// signed integers separated by commas. Leading and trailing whitespace is
// permitted.
func ReadProgram(r io.Reader) ([]Cell, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, errors.New("malformed intcode: empty program")
	}
	parts := strings.Split(text, ",")
	if len(parts) > MaxProgramSize {
		return nil, errors.Errorf("program too large: %d cells, the maximum is %d", len(parts), MaxProgramSize)
	}
	cells := make([]Cell, len(parts))
	for i, s := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, errors.Errorf("malformed intcode: bad cell %d: %q", i, s)
		}
		cells[i] = Cell(n)
	}
	return cells, nil
}

// WriteProgram writes cells in the textual intcode format: comma-separated
// integers terminated by a newline.
func WriteProgram(w io.Writer, cells []Cell) error {
	ew := isi.NewErrWriter(w)
	for i, c := range cells {
		if i > 0 {
			io.WriteString(ew, ",")
		}
		io.WriteString(ew, strconv.FormatInt(int64(c), 10))
	}
	io.WriteString(ew, "\n")
	return ew.Err
}
