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

package vm_test

import (
	"strings"
	"testing"

	"github.com/Scrumplesplunge/intscript/vm"
)

func TestReadProgram(t *testing.T) {
	cells, err := vm.ReadProgram(strings.NewReader("1,-2,3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !equal(cells, C{1, -2, 3}) {
		t.Fatalf("expected [1 -2 3], got %d", cells)
	}
}

func TestReadProgramWhitespace(t *testing.T) {
	cells, err := vm.ReadProgram(strings.NewReader("  99 , 1 , 2 \n"))
	if err != nil {
		t.Fatal(err)
	}
	if !equal(cells, C{99, 1, 2}) {
		t.Fatalf("expected [99 1 2], got %d", cells)
	}
}

func TestReadProgramErrors(t *testing.T) {
	for _, text := range []string{"", "\n", "1,two,3", "1,,3", "1 2 3"} {
		if _, err := vm.ReadProgram(strings.NewReader(text)); err == nil {
			t.Errorf("expected an error for %q", text)
		}
	}
}

func TestReadProgramTooLarge(t *testing.T) {
	text := strings.Repeat("1,", vm.MaxProgramSize) + "1"
	if _, err := vm.ReadProgram(strings.NewReader(text)); err == nil {
		t.Error("expected an error for an oversized program")
	}
}

func TestWriteProgramRoundTrip(t *testing.T) {
	original := C{109, 1, 204, -1, 99}
	var b strings.Builder
	if err := vm.WriteProgram(&b, original); err != nil {
		t.Fatal(err)
	}
	if b.String() != "109,1,204,-1,99\n" {
		t.Fatalf("unexpected encoding %q", b.String())
	}
	cells, err := vm.ReadProgram(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}
	if !equal(cells, original) {
		t.Fatalf("round trip changed the program: %d", cells)
	}
}
