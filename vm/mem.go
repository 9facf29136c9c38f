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

const chunkSize = 1024

// memory is an infinite sparse vector of cells, stored as fixed-size chunks
// indexed by chunk number. Reads of never-written cells return zero. Callers
// must not pass negative indices.
type memory map[Cell]*[chunkSize]Cell

func (m memory) get(i Cell) Cell {
	c := m[i/chunkSize]
	if c == nil {
		return 0
	}
	return c[i%chunkSize]
}

func (m memory) set(i, v Cell) {
	n := i / chunkSize
	c := m[n]
	if c == nil {
		c = new([chunkSize]Cell)
		m[n] = c
	}
	c[i%chunkSize] = v
}
