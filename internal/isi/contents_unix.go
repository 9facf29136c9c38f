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

//go:build unix

package isi

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"

	"golang.org/x/sys/unix"
)

// Contents maps the named file into memory and returns a read-only view of
// its bytes. The mapping is never unmapped; it lives until the process exits,
// which outlasts any parse that reads it.
func Contents(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", errors.Wrap(err, "open failed")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(err, "stat failed")
	}
	size := st.Size()
	if size == 0 {
		return "", nil
	}
	if size != int64(int(size)) {
		return "", errors.Errorf("%v: file too large", name)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return "", errors.Wrap(err, "mmap failed")
	}
	return unsafe.String(&data[0], len(data)), nil
}
