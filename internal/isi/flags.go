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
	"fmt"
	"os"
	"strings"
)

type flagDef struct {
	name        string
	value       string // default, shown in --help for value flags
	description string
	isBool      bool
	set         func(string)
}

// A FlagSet parses --name and --name value options. Unknown flags produce a
// warning on stderr and are otherwise ignored; a missing value is fatal.
// "--" ends option processing. --help prints usage and exits 0.
type FlagSet struct {
	name  string
	flags []*flagDef

	// Args holds the positional arguments after Parse.
	Args []string
}

func NewFlagSet(name string) *FlagSet {
	return &FlagSet{name: name}
}

func (f *FlagSet) String(name, value, description string) *string {
	out := new(string)
	*out = value
	f.flags = append(f.flags, &flagDef{
		name:        name,
		value:       value,
		description: description,
		set:         func(s string) { *out = s },
	})
	return out
}

func (f *FlagSet) Bool(name, description string) *bool {
	out := new(bool)
	f.flags = append(f.flags, &flagDef{
		name:        name,
		description: description,
		isBool:      true,
		set:         func(string) { *out = true },
	})
	return out
}

func (f *FlagSet) usage() {
	fmt.Printf("Usage of %s:\n\nFlags:\n", f.name)
	fmt.Printf("  --help\tDisplays the usage information.\n")
	for _, d := range f.flags {
		fmt.Printf("  --%s\t%s", d.name, d.description)
		if !d.isBool {
			fmt.Printf(" Default value: %q", d.value)
		}
		fmt.Printf("\n")
	}
}

func (f *FlagSet) lookup(name string) *flagDef {
	for _, d := range f.flags {
		if d.name == name {
			return d
		}
	}
	return nil
}

// Parse processes args (typically os.Args[1:]).
func (f *FlagSet) Parse(args []string) {
	optionsDone := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if optionsDone || !strings.HasPrefix(arg, "--") {
			f.Args = append(f.Args, arg)
			continue
		}
		if arg == "--" {
			optionsDone = true
			continue
		}
		name := arg[2:]
		if name == "help" {
			f.usage()
			os.Exit(0)
		}
		d := f.lookup(name)
		if d == nil {
			fmt.Fprintf(os.Stderr, "Ignoring unknown flag --%s.\n", name)
			continue
		}
		if d.isBool {
			d.set("")
			continue
		}
		if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			fmt.Fprintf(os.Stderr, "Missing argument for --%s.\n", name)
			os.Exit(1)
		}
		i++
		d.set(args[i])
	}
}
