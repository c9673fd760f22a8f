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

import "strconv"

// Op identifies a VM instruction. The opcode set is closed: Run switches
// exhaustively over it, and any value outside the range below traps with
// IllegalInstruction.
type Op int

// Tiny-forth Virtual Machine opcodes.
const (
	OpPush Op = iota
	OpAdd
	OpMul
	OpDup
	OpDrop
	OpSwap
	OpOver
	OpRot
	OpNip
	OpTuck
	OpTwoDup
	OpTwoDrop
	OpTwoSwap
	OpDepth
	OpJump
	OpIfZero
	OpCall
	OpCallWord
	OpReturn
	OpHalt
)

var opNames = [...]string{
	"",
	"+",
	"*",
	"dup",
	"drop",
	"swap",
	"over",
	"rot",
	"nip",
	"tuck",
	"2dup",
	"2drop",
	"2swap",
	"depth",
	"jump",
	"jz",
	"call",
	"",
	";",
	"halt",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	switch op {
	case OpPush:
		return "push"
	case OpCallWord:
		return "word"
	}
	return opNames[op]
}

// Instr is a single VM instruction. Arg carries the literal for OpPush, the
// signed relative offset for OpJump and OpIfZero, and the absolute address
// for OpCall. Word carries the callee name for OpCallWord and is resolved
// against the dictionary at execution time.
type Instr struct {
	Op   Op
	Arg  Cell
	Word string
}

// Ready-made zero-operand instructions for building programs by hand.
var (
	Add     = Instr{Op: OpAdd}
	Mul     = Instr{Op: OpMul}
	Dup     = Instr{Op: OpDup}
	Drop    = Instr{Op: OpDrop}
	Swap    = Instr{Op: OpSwap}
	Over    = Instr{Op: OpOver}
	Rot     = Instr{Op: OpRot}
	Nip     = Instr{Op: OpNip}
	Tuck    = Instr{Op: OpTuck}
	TwoDup  = Instr{Op: OpTwoDup}
	TwoDrop = Instr{Op: OpTwoDrop}
	TwoSwap = Instr{Op: OpTwoSwap}
	Depth   = Instr{Op: OpDepth}
	Return  = Instr{Op: OpReturn}
	Halt    = Instr{Op: OpHalt}
)

// Push returns an instruction that pushes v on the data stack.
func Push(v Cell) Instr { return Instr{Op: OpPush, Arg: v} }

// Jump returns an unconditional branch by the signed relative offset off.
func Jump(off int) Instr { return Instr{Op: OpJump, Arg: Cell(off)} }

// IfZero returns a branch by off taken when the popped top of stack is zero.
func IfZero(off int) Instr { return Instr{Op: OpIfZero, Arg: Cell(off)} }

// Call returns a subroutine call to the absolute address addr.
func Call(addr int) Instr { return Instr{Op: OpCall, Arg: Cell(addr)} }

// CallWord returns a call to the named word, looked up in the dictionary
// when the instruction executes.
func CallWord(name string) Instr { return Instr{Op: OpCallWord, Word: name} }

func (n Instr) String() string {
	switch n.Op {
	case OpPush:
		return strconv.Itoa(int(n.Arg))
	case OpJump, OpIfZero, OpCall:
		return n.Op.String() + " " + strconv.Itoa(int(n.Arg))
	case OpCallWord:
		return n.Word
	}
	return n.Op.String()
}
