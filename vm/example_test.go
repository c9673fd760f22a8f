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

package vm_test

import (
	"fmt"
	"os"

	"github.com/tuttlem/tiny-forth/vm"
)

// Build a program by hand, run it and read back the final stack.
func ExampleInstance_Run() {
	prog := []vm.Instr{
		vm.Push(2), vm.Push(3), vm.Add, vm.Push(4), vm.Mul, vm.Halt,
	}
	i, err := vm.New(prog)
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	fmt.Println(i.Data())

	// Output:
	// [20]
}

// Calls by name are resolved through the dictionary when they execute, so a
// program may reference a word whose address is supplied separately.
func ExampleDictionary() {
	prog := []vm.Instr{
		vm.Push(5), vm.CallWord("square"), vm.Halt,
		vm.Dup, vm.Mul, vm.Return,
	}
	i, err := vm.New(prog, vm.Dictionary(vm.Dict{"square": 3}))
	if err != nil {
		panic(err)
	}
	if err = i.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	fmt.Println(i.Data())

	// Output:
	// [25]
}

// A step budget turns a runaway program into a typed error instead of a
// hang.
func ExampleMaxSteps() {
	i, err := vm.New([]vm.Instr{vm.Jump(0)}, vm.MaxSteps(1000))
	if err != nil {
		panic(err)
	}
	fmt.Println(i.Run())

	// Output:
	// tiny-forth: step limit exceeded on jump 0 at pc=0
}
