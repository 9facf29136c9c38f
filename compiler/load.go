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

package compiler

import (
	"os"

	"github.com/pkg/errors"

	"github.com/Scrumplesplunge/intscript/internal/isi"
)

// Load parses the named file and, recursively, every module it imports, and
// returns all modules keyed by filesystem path. Imports resolve relative to
// the importing module's directory; a missing dependency is fatal.
func Load(filename string) (map[string]*Module, error) {
	modules := make(map[string]*Module)
	if err := loadRecursive(modules, filename); err != nil {
		return nil, err
	}
	return modules, nil
}

// LoadSource parses source as a module named name and loads its imports,
// which resolve relative to name's directory.
func LoadSource(name, source string) (map[string]*Module, error) {
	modules := make(map[string]*Module)
	m, err := Parse(name, source)
	if err != nil {
		return nil, err
	}
	modules[name] = m
	if err := loadImports(modules, m); err != nil {
		return nil, err
	}
	return modules, nil
}

func loadRecursive(modules map[string]*Module, filename string) error {
	if _, ok := modules[filename]; ok {
		return nil
	}
	source, err := isi.Contents(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot read %q", filename)
	}
	m, err := Parse(filename, source)
	if err != nil {
		return err
	}
	modules[filename] = m
	return loadImports(modules, m)
}

func loadImports(modules map[string]*Module, m *Module) error {
	context := m.Context()
	for _, imp := range m.Imports {
		path := imp.Resolve(context)
		if _, err := os.Stat(path); err != nil {
			return errors.Errorf("cannot find dependency %q required by %q", path, m.Name)
		}
		if err := loadRecursive(modules, path); err != nil {
			return err
		}
	}
	return nil
}
