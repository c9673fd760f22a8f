// This file is part of tiny-forth - https://github.com/tuttlem/tiny-forth
//
// Copyright 2026 The tiny-forth authors
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

	"github.com/tuttlem/tiny-forth/internal/tfi"
)

// Cell is the type of a value on the data stack.
type Cell int32

const defaultDataSize = 64

// Dict maps a word name to its absolute entry address in the program.
type Dict map[string]int

// Instance represents a tiny-forth VM instance.
type Instance struct {
	PC       int // Program Counter (aka. Instruction Pointer)
	prog     []Instr
	data     []Cell
	address  []int
	dict     Dict
	insCount int64
	maxSteps int64
}

// Option interface
type Option func(*Instance) error

// DataSize sets the initial capacity of the data stack in cells. The stack
// still grows on demand; this only avoids reallocations for programs with a
// known working depth. The default is 64 cells.
func DataSize(size int) Option {
	return func(i *Instance) error {
		if size < len(i.data) {
			size = len(i.data)
		}
		t := make([]Cell, len(i.data), size)
		copy(t, i.data)
		i.data = t
		return nil
	}
}

// Dictionary installs the word dictionary used to resolve OpCallWord. The
// dictionary must be installed at construction time; it is not mutated, and
// cannot be swapped, while the instance runs.
func Dictionary(d Dict) Option {
	return func(i *Instance) error {
		i.dict = d
		return nil
	}
}

// MaxSteps bounds a Run invocation to n executed instructions. Exceeding the
// budget traps with StepLimit. n <= 0 means no limit, which is the default.
func MaxSteps(n int64) Option {
	return func(i *Instance) error {
		i.maxSteps = n
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new tiny-forth Virtual Machine instance.
//
// The prog parameter is the instruction slice executed by the VM, either
// built by hand or produced by asm.Assemble. The VM never mutates it, so a
// single program may back any number of instances.
//
// Options will be set by calling SetOptions.
func New(prog []Instr, opts ...Option) (*Instance, error) {
	i := &Instance{
		PC:   0,
		prog: prog,
		data: make([]Cell, 0, defaultDataSize),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Data returns the data stack, bottom first. Note that value changes will be
// reflected in the instance's stack, but re-slicing will not affect it. To
// add/remove values on the data stack, use the Push and Pop functions.
func (i *Instance) Data() []Cell {
	return i.data
}

// Address returns the return address stack, bottom first.
func (i *Instance) Address() []int {
	return i.address
}

// Depth returns the data stack depth.
func (i *Instance) Depth() int {
	return len(i.data)
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Push pushes the argument on top of the data stack.
func (i *Instance) Push(v Cell) {
	i.data = append(i.data, v)
}

// Pop pops the value on top of the data stack and returns it. It panics with
// an *Error on an empty stack; inside Run the panic is converted to the
// error returned to the caller.
func (i *Instance) Pop() Cell {
	sp := len(i.data) - 1
	if sp < 0 {
		panic(trap(StackUnderflow))
	}
	v := i.data[sp]
	i.data = i.data[:sp]
	return v
}

// Rpush pushes the argument on top of the return address stack.
func (i *Instance) Rpush(v int) {
	i.address = append(i.address, v)
}

// Rpop pops the value on top of the return address stack and returns it.
// Like Pop, it panics with an *Error when the stack is empty.
func (i *Instance) Rpop() int {
	rsp := len(i.address) - 1
	if rsp < 0 {
		panic(trap(ReturnStackUnderflow))
	}
	v := i.address[rsp]
	i.address = i.address[:rsp]
	return v
}

// Dump writes the data and return address stacks to the specified io.Writer,
// bottom first, one stack per line.
func (i *Instance) Dump(w io.Writer) error {
	ew := tfi.NewErrWriter(w)
	io.WriteString(ew, "stack:")
	for _, v := range i.data {
		io.WriteString(ew, " "+strconv.Itoa(int(v)))
	}
	io.WriteString(ew, "\nrstack:")
	for _, v := range i.address {
		io.WriteString(ew, " "+strconv.Itoa(v))
	}
	ew.Write([]byte{'\n'})
	return ew.Err
}
