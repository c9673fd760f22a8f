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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuttlem/tiny-forth/vm"
)

type C []vm.Cell

func setup(t *testing.T, prog []vm.Instr, stack C, opts ...vm.Option) *vm.Instance {
	t.Helper()
	i, err := vm.New(prog, opts...)
	require.NoError(t, err)
	for _, v := range stack {
		i.Push(v)
	}
	return i
}

func check(t *testing.T, i *vm.Instance, want C, rwant []int) {
	t.Helper()
	assert.Equal(t, want, C(i.Data()), "data stack")
	got := i.Address()
	if len(rwant) != 0 || len(got) != 0 {
		assert.Equal(t, rwant, got, "return stack")
	}
}

var coreTests = [...]struct {
	name  string
	prog  []vm.Instr
	in    C
	want  C
	rwant []int
}{
	{"push", []vm.Instr{vm.Push(25)}, nil, C{25}, nil},
	{"add", []vm.Instr{vm.Add}, C{2, 3}, C{5}, nil},
	{"add-neg", []vm.Instr{vm.Push(2), vm.Push(-3), vm.Add}, nil, C{-1}, nil},
	{"mul", []vm.Instr{vm.Mul}, C{5, 5}, C{25}, nil},
	{"dup", []vm.Instr{vm.Dup}, C{1234}, C{1234, 1234}, nil},
	{"drop", []vm.Instr{vm.Drop}, C{50}, C{}, nil},
	{"swap", []vm.Instr{vm.Swap}, C{50, 60}, C{60, 50}, nil},
	{"over", []vm.Instr{vm.Over}, C{1, 2}, C{1, 2, 1}, nil},
	{"rot", []vm.Instr{vm.Rot}, C{1, 2, 3}, C{2, 3, 1}, nil},
	{"nip", []vm.Instr{vm.Nip}, C{1, 2}, C{2}, nil},
	{"tuck", []vm.Instr{vm.Tuck}, C{1, 2}, C{2, 1, 2}, nil},
	{"2dup", []vm.Instr{vm.TwoDup}, C{1, 2}, C{1, 2, 1, 2}, nil},
	{"2drop", []vm.Instr{vm.TwoDrop}, C{1, 2}, C{}, nil},
	{"2swap", []vm.Instr{vm.TwoSwap}, C{1, 2, 3, 4}, C{3, 4, 1, 2}, nil},
	{"2swap-deep", []vm.Instr{vm.TwoSwap}, C{9, 1, 2, 3, 4}, C{9, 3, 4, 1, 2}, nil},
	{"depth-empty", []vm.Instr{vm.Depth}, nil, C{0}, nil},
	{"depth", []vm.Instr{vm.Depth}, C{7, 7}, C{7, 7, 2}, nil},
	{"jump", []vm.Instr{vm.Push(1), vm.Jump(3), vm.Push(2), vm.Push(3), vm.Push(4)}, nil, C{1, 4}, nil},
	{"jz-taken", []vm.Instr{vm.IfZero(2), vm.Push(1), vm.Push(2)}, C{0}, C{2}, nil},
	{"jz-not-taken", []vm.Instr{vm.IfZero(2), vm.Push(1), vm.Push(2)}, C{5}, C{1, 2}, nil},
	{"call", []vm.Instr{vm.Call(2), vm.Halt, vm.Push(7)}, nil, C{7}, []int{1}},
	{"call-return", []vm.Instr{vm.Call(3), vm.Push(2), vm.Halt, vm.Push(1), vm.Return}, nil, C{1, 2}, []int{}},
	{"halt", []vm.Instr{vm.Push(1), vm.Halt, vm.Push(2)}, nil, C{1}, nil},
}

func TestCore(t *testing.T) {
	for _, test := range coreTests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.prog, test.in)
			require.NoError(t, i.Run())
			check(t, i, test.want, test.rwant)
		})
	}
}

// Each operation invoked with fewer stack elements than it requires must
// trap with the matching kind, leaving the PC on the faulting instruction.
var trapTests = [...]struct {
	name string
	prog []vm.Instr
	in   C
	kind vm.ErrKind
	pc   int
}{
	{"add-empty", []vm.Instr{vm.Add}, nil, vm.StackUnderflow, 0},
	{"add-one", []vm.Instr{vm.Push(1), vm.Add}, nil, vm.StackUnderflow, 1},
	{"mul-one", []vm.Instr{vm.Mul}, C{1}, vm.StackUnderflow, 0},
	{"dup-empty", []vm.Instr{vm.Dup}, nil, vm.StackUnderflow, 0},
	{"drop-empty", []vm.Instr{vm.Drop}, nil, vm.StackUnderflow, 0},
	{"swap-one", []vm.Instr{vm.Swap}, C{1}, vm.StackUnderflow, 0},
	{"over-one", []vm.Instr{vm.Over}, C{1}, vm.StackUnderflow, 0},
	{"rot-two", []vm.Instr{vm.Rot}, C{1, 2}, vm.StackUnderflow, 0},
	{"nip-one", []vm.Instr{vm.Nip}, C{1}, vm.StackUnderflow, 0},
	{"tuck-one", []vm.Instr{vm.Tuck}, C{1}, vm.StackUnderflow, 0},
	{"2dup-one", []vm.Instr{vm.TwoDup}, C{1}, vm.StackUnderflow, 0},
	{"2drop-one", []vm.Instr{vm.TwoDrop}, C{1}, vm.StackUnderflow, 0},
	{"2swap-three", []vm.Instr{vm.TwoSwap}, C{1, 2, 3}, vm.StackUnderflow, 0},
	{"jz-empty", []vm.Instr{vm.IfZero(1)}, nil, vm.StackUnderflow, 0},
	{"return-empty", []vm.Instr{vm.Return}, nil, vm.ReturnStackUnderflow, 0},
	{"unknown-word", []vm.Instr{vm.CallWord("nope")}, nil, vm.UnknownWord, 0},
	{"illegal-op", []vm.Instr{{Op: vm.Op(99)}}, nil, vm.IllegalInstruction, 0},
	{"jump-before-start", []vm.Instr{vm.Push(1), vm.Jump(-5)}, nil, vm.PCRange, 1},
	{"jump-past-end", []vm.Instr{vm.Jump(2)}, nil, vm.PCRange, 0},
	{"call-past-end", []vm.Instr{vm.Call(7)}, nil, vm.PCRange, 0},
}

func TestTraps(t *testing.T) {
	for _, test := range trapTests {
		t.Run(test.name, func(t *testing.T) {
			i := setup(t, test.prog, test.in)
			err := i.Run()
			require.Error(t, err)
			var e *vm.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, test.kind, e.Kind, "trap kind")
			assert.Equal(t, test.pc, e.PC, "trap pc")
			assert.Equal(t, test.pc, i.PC, "instance pc")
		})
	}
}

// A binary operation pops its right operand before discovering that the left
// one is missing. That first pop stays observable in the trap snapshot.
func TestTrapStackSnapshot(t *testing.T) {
	i := setup(t, []vm.Instr{vm.Push(7), vm.Add}, nil)
	err := i.Run()
	var e *vm.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, vm.StackUnderflow, e.Kind)
	assert.Empty(t, e.Stack)

	// in-place shuffles check their preconditions up front and leave the
	// stack untouched
	i = setup(t, []vm.Instr{vm.Swap}, C{1})
	err = i.Run()
	require.ErrorAs(t, err, &e)
	assert.Equal(t, C{1}, C(e.Stack))
}
