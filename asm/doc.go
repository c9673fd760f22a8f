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

// Package asm compiles tiny-forth source into vm instructions, and provides
// a matching disassembler.
//
// The source language is a whitespace-separated token stream. Each token is
// an integer literal, a built-in word, a definition delimiter, or a
// reference to a user-defined word. Built-in words:
//
//	word	stack	description
//	----	-----	------------------------------------------------------
//	+	xy-z	add NOS to TOS and place the result on TOS (alias: add)
//	*	xy-z	multiply NOS with TOS and place the result on TOS (alias: mul)
//	dup	n-nn	duplicate TOS
//	drop	n-	drop TOS
//	swap	xy-yx	swap TOS and NOS
//	over	xy-xyx	place a copy of NOS on TOS
//	rot	xyz-yzx	rotate the third value to the top
//	nip	xy-y	drop NOS
//	tuck	xy-yxy	place a copy of TOS below NOS
//	2dup	xy-xyxy	duplicate the top pair
//	2drop	xy-	drop the top pair
//	2swap	wxyz-yzwx	swap the top pair with the pair below it
//	depth	-n	place the stack depth on TOS
//	halt		stop execution (alias: bye)
//
// TOS is the value on top of the data stack, NOS the next value below it.
//
// Integer literals:
//
// Any token accepted by strconv.ParseInt with base prefix support compiles
// to a push of that value:
//
//	42 -7 0x1f 0o17 0b101
//
// Word definitions:
//
// A definition starts with a colon followed by the word's name and ends at
// the next semicolon. The colon and the name may be written as separate
// tokens or glued together:
//
//	: square dup * ;
//	:square dup * ;
//
// A return is compiled at the `;`, so a word body falls back to its caller.
// Definitions do not nest, and a definition left open at the end of input is
// a parse error. Defining a word twice is legal; the last definition wins,
// including for calls that were compiled before it appeared.
//
// Any other token compiles to a call through the dictionary, resolved when
// the call executes. Words may therefore be referenced before they are
// defined:
//
//	5 square : square dup * ;
//
// Word bodies are buffered aside while parsing and the final program is laid
// out as the main body, an implicit halt, then every word body in definition
// order. Dictionary addresses are computed from that final layout.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this will be seen by the parser as a call to the word "(this" )
package asm
