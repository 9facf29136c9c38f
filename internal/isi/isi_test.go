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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiagnosticFormat(t *testing.T) {
	d := &Diagnostic{
		File:   "x.is",
		Line:   2,
		Col:    3,
		Msg:    "Expected newline.",
		Source: "first\nsecond line\nthird\n",
	}
	want := "x.is:2:3: error: Expected newline.\n    second line\n      ^"
	if got := d.Error(); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestDiagnosticClampsColumn(t *testing.T) {
	d := &Diagnostic{File: "x", Line: 1, Col: 99, Msg: "m", Source: "ab"}
	text := d.Error()
	if !strings.Contains(text, "ab") || !strings.Contains(text, "^") {
		t.Errorf("expected a clamped caret, got %q", text)
	}
}

func TestErrWriterSticksOnError(t *testing.T) {
	w := NewErrWriter(failingWriter{})
	if _, err := w.Write([]byte("x")); err == nil {
		t.Fatal("expected an error")
	}
	if w.Err == nil {
		t.Fatal("expected the error to stick")
	}
	first := w.Err
	w.Write([]byte("y"))
	if w.Err != first {
		t.Error("expected the first error to be preserved")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestFlagSet(t *testing.T) {
	f := NewFlagSet("test")
	input := f.String("input", "-", "File to read from.")
	verbose := f.Bool("verbose", "Noise.")
	f.Parse([]string{"--input", "x.is", "--verbose", "a", "--", "--b"})
	if *input != "x.is" {
		t.Errorf("expected input x.is, got %q", *input)
	}
	if !*verbose {
		t.Error("expected verbose to be set")
	}
	if len(f.Args) != 2 || f.Args[0] != "a" || f.Args[1] != "--b" {
		t.Errorf("unexpected positional arguments %q", f.Args)
	}
}

func TestFlagSetIgnoresUnknown(t *testing.T) {
	f := NewFlagSet("test")
	f.Parse([]string{"--bogus", "positional"})
	if len(f.Args) != 1 || f.Args[0] != "positional" {
		t.Errorf("unexpected positional arguments %q", f.Args)
	}
}

func TestContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	text, err := Contents(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "hello" {
		t.Errorf("expected %q, got %q", "hello", text)
	}
	if _, err := Contents(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
