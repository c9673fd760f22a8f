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

package asm

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/tuttlem/tiny-forth/internal/tfi"
	"github.com/tuttlem/tiny-forth/vm"
)

const maxErrors = 10

var builtins = [...]struct {
	names []string
	op    vm.Op
}{
	{[]string{"+", "add"}, vm.OpAdd},
	{[]string{"*", "mul"}, vm.OpMul},
	{[]string{"dup"}, vm.OpDup},
	{[]string{"drop"}, vm.OpDrop},
	{[]string{"swap"}, vm.OpSwap},
	{[]string{"over"}, vm.OpOver},
	{[]string{"rot"}, vm.OpRot},
	{[]string{"nip"}, vm.OpNip},
	{[]string{"tuck"}, vm.OpTuck},
	{[]string{"2dup"}, vm.OpTwoDup},
	{[]string{"2drop"}, vm.OpTwoDrop},
	{[]string{"2swap"}, vm.OpTwoSwap},
	{[]string{"depth"}, vm.OpDepth},
	{[]string{"halt", "bye"}, vm.OpHalt},
}

var builtinIndex = make(map[string]vm.Op)

func init() {
	for _, b := range builtins {
		for _, n := range b.names {
			builtinIndex[n] = b.op
		}
	}
}

// Error describes a single parse error and the position that raised it.
// Malformed definitions (a dangling `;`, a nested or unterminated `:`) are
// reported this way along with plain syntax errors.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// ErrAsm is the error type returned by Assemble. It holds up to 10 parse
// errors, after which the parser stops recording new ones.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Assemble compiles source read from the supplied io.Reader and returns the
// resulting program and word dictionary, laid out as the main body, an
// implicit halt, then every word body in definition order.
//
// The name parameter is used only in error messages to name the source of
// the error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value.
func Assemble(name string, r io.Reader) ([]vm.Instr, vm.Dict, error) {
	p := newParser()
	p.Parse(name, r)
	if len(p.errs) > 0 {
		return nil, nil, p.errs
	}
	prog, dict := p.finalize()
	return prog, dict, nil
}

// Disassemble writes a disassembly of the instruction at position pc to the
// specified io.Writer and returns the position of the next instruction and
// any write error.
func Disassemble(prog []vm.Instr, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*tfi.ErrWriter)
	if ew == nil {
		ew = tfi.NewErrWriter(w)
	}
	io.WriteString(ew, prog[pc].String())
	return pc + 1, ew.Err
}

// DisassembleAll writes a disassembly of all instructions in the given slice
// to the specified io.Writer. The base argument specifies the real address
// of the first instruction (prog[0]). It will return any write error.
func DisassembleAll(prog []vm.Instr, base int, w io.Writer) error {
	ew := tfi.NewErrWriter(w)
	for pc := 0; pc < len(prog); {
		fmt.Fprintf(ew, "% 6d\t", base+pc)
		pc, _ = Disassemble(prog, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
