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

func (i *Instance) need(n int) {
	if len(i.data) < n {
		panic(trap(StackUnderflow))
	}
}

// target validates a branch or call destination. An address one past the end
// of the program is legal and makes the run loop exit cleanly.
func (i *Instance) target(t int) int {
	if t < 0 || t > len(i.prog) {
		panic(trap(PCRange))
	}
	return t
}

// Run starts execution of the VM until the program pointer runs off the end
// of the program or an OpHalt is executed.
//
// If an error occurs, the PC will point to the instruction that triggered
// the error, and the returned error is an *Error carrying the trap kind and
// a snapshot of both stacks.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			t, ok := e.(*Error)
			if !ok {
				panic(e)
			}
			t.PC = i.PC
			if i.PC >= 0 && i.PC < len(i.prog) {
				t.Instr = i.prog[i.PC]
			}
			t.Stack = append([]Cell(nil), i.data...)
			t.RStack = append([]int(nil), i.address...)
			err = t
		}
	}()
	i.insCount = 0
	for i.PC < len(i.prog) {
		if i.maxSteps > 0 && i.insCount >= i.maxSteps {
			panic(trap(StepLimit))
		}
		op := i.prog[i.PC]
		switch op.Op {
		case OpPush:
			i.Push(op.Arg)
			i.PC++
		case OpAdd:
			b, a := i.Pop(), i.Pop()
			i.Push(a + b)
			i.PC++
		case OpMul:
			b, a := i.Pop(), i.Pop()
			i.Push(a * b)
			i.PC++
		case OpDup:
			i.need(1)
			i.Push(i.data[len(i.data)-1])
			i.PC++
		case OpDrop:
			i.Pop()
			i.PC++
		case OpSwap:
			i.need(2)
			sp := len(i.data) - 1
			i.data[sp], i.data[sp-1] = i.data[sp-1], i.data[sp]
			i.PC++
		case OpOver:
			i.need(2)
			i.Push(i.data[len(i.data)-2])
			i.PC++
		case OpRot:
			// ( a b c -- b c a )
			i.need(3)
			sp := len(i.data) - 1
			a := i.data[sp-2]
			i.data[sp-2] = i.data[sp-1]
			i.data[sp-1] = i.data[sp]
			i.data[sp] = a
			i.PC++
		case OpNip:
			// ( a b -- b )
			i.need(2)
			sp := len(i.data) - 1
			i.data[sp-1] = i.data[sp]
			i.data = i.data[:sp]
			i.PC++
		case OpTuck:
			// ( a b -- b a b )
			i.need(2)
			sp := len(i.data) - 1
			a, b := i.data[sp-1], i.data[sp]
			i.data[sp-1] = b
			i.data[sp] = a
			i.Push(b)
			i.PC++
		case OpTwoDup:
			// ( a b -- a b a b )
			i.need(2)
			sp := len(i.data) - 1
			a, b := i.data[sp-1], i.data[sp]
			i.Push(a)
			i.Push(b)
			i.PC++
		case OpTwoDrop:
			i.need(2)
			i.data = i.data[:len(i.data)-2]
			i.PC++
		case OpTwoSwap:
			// ( a b c d -- c d a b )
			i.need(4)
			sp := len(i.data) - 1
			i.data[sp-3], i.data[sp-1] = i.data[sp-1], i.data[sp-3]
			i.data[sp-2], i.data[sp] = i.data[sp], i.data[sp-2]
			i.PC++
		case OpDepth:
			i.Push(Cell(len(i.data)))
			i.PC++
		case OpJump:
			i.PC = i.target(i.PC + int(op.Arg))
		case OpIfZero:
			if i.Pop() == 0 {
				i.PC = i.target(i.PC + int(op.Arg))
			} else {
				i.PC++
			}
		case OpCall:
			i.Rpush(i.PC + 1)
			i.PC = i.target(int(op.Arg))
		case OpCallWord:
			addr, ok := i.dict[op.Word]
			if !ok {
				panic(trap(UnknownWord))
			}
			i.Rpush(i.PC + 1)
			i.PC = i.target(addr)
		case OpReturn:
			i.PC = i.target(i.Rpop())
		case OpHalt:
			i.insCount++
			return nil
		default:
			panic(trap(IllegalInstruction))
		}
		i.insCount++
	}
	return nil
}
