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

// Package vm implements the tiny-forth virtual machine.
//
// The machine executes a flat, immutable slice of instructions over two
// runtime stacks: a growable data stack of signed 32-bit cells and a return
// address stack holding resume addresses for nested word calls. A program is
// either built by hand from Instr values or compiled from source with the
// asm package, which also yields the dictionary used to resolve OpCallWord
// at execution time.
//
// Run executes until the program counter runs off the end of the program or
// an OpHalt is reached. There is no I/O inside the VM; the observable result
// of a run is the final contents of the data stack, available through Data.
//
// Every trap condition (stack underflow, return stack underflow, unknown
// word, illegal opcode, out-of-range branch target, exceeded step budget) is
// returned from Run as an *Error carrying the trap kind, the faulting
// instruction and program counter, and a snapshot of both stacks. A host may
// inspect the failure and start over with a fresh instance; nothing is ever
// fatal to the embedding process.
//
// If you venture into hacking the VM code itself, be aware that the PC is
// not incremented in a single place, rather each opcode deals with the PC as
// needed: branching opcodes set it directly and skip the default increment.
package vm
