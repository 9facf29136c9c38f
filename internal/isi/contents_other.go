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

//go:build !unix

package isi

import (
	"os"

	"github.com/pkg/errors"
)

// Contents returns the bytes of the named file. On platforms without mmap
// support it simply reads the whole file.
func Contents(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", errors.Wrap(err, "read failed")
	}
	return string(data), nil
}
