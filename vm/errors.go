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

// List of VM traps for ErrKind.
const (
	StackUnderflow = ErrKind(iota)
	ReturnStackUnderflow
	UnknownWord
	IllegalInstruction
	PCRange
	StepLimit
)

var kindStrings = []string{
	"stack underflow",
	"return stack underflow",
	"unknown word",
	"illegal instruction",
	"branch target out of range",
	"step limit exceeded",
}

// ErrKind describes the reason for a VM trap.
type ErrKind int

func (k ErrKind) String() string {
	if k < 0 || int(k) >= len(kindStrings) {
		return "trap " + strconv.Itoa(int(k))
	}
	return kindStrings[k]
}

// Error describes the cause and the context of a VM trap. Run fills in the
// context fields before returning, so a caller always sees the program
// counter of the faulting instruction and the stacks as they were at the
// moment of the trap.
type Error struct {
	Kind   ErrKind // nature of the trap
	PC     int     // program counter of the faulting instruction
	Instr  Instr   // instruction that raised the trap
	Stack  []Cell  // data stack at the time of the trap
	RStack []int   // return stack at the time of the trap
}

func (e *Error) Error() string {
	msg := "tiny-forth: " + e.Kind.String()
	switch e.Kind {
	case UnknownWord:
		msg += " " + strconv.Quote(e.Instr.Word)
	case IllegalInstruction:
		msg += " " + e.Instr.Op.String()
	default:
		if s := e.Instr.String(); s != "" {
			msg += " on " + s
		}
	}
	return msg + " at pc=" + strconv.Itoa(e.PC)
}

func trap(kind ErrKind) *Error {
	return &Error{Kind: kind}
}
