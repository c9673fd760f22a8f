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
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/tuttlem/tiny-forth/vm"
)

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

// definition is a word body buffered during parsing. Bodies are kept out of
// the main program until finalize so that addresses are only ever computed
// from the final layout.
type definition struct {
	name string
	pos  scanner.Position
	body []vm.Instr
}

type parser struct {
	s    scanner.Scanner
	main []vm.Instr
	defs []definition
	cur  *definition
	errs ErrAsm
}

func newParser() *parser {
	return new(parser)
}

func (p *parser) errorf(pos scanner.Position, format string, args ...interface{}) {
	if len(p.errs) >= maxErrors {
		return
	}
	p.errs = append(p.errs, Error{pos, fmt.Sprintf(format, args...)})
}

func (p *parser) pos() scanner.Position {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	return pos
}

// emit appends an instruction to the body of the open definition, or to the
// main program when no definition is open.
func (p *parser) emit(n vm.Instr) {
	if p.cur != nil {
		p.cur.body = append(p.cur.body, n)
	} else {
		p.main = append(p.main, n)
	}
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.errorf(p.pos(), "%s", msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.errorf(p.pos(), "unexpected character %s", strconv.QuoteRune(tok))
			continue
		}
		t := p.s.TokenText()

		switch {
		case t == "(":
			// skip comments
			pos := p.pos()
			for tok = p.s.Scan(); tok != scanner.EOF && p.s.TokenText() != ")"; tok = p.s.Scan() {
			}
			if tok == scanner.EOF {
				p.errorf(pos, "unterminated comment")
			}
		case t == ":" || (len(t) > 1 && t[0] == ':'):
			p.beginDefinition(t)
		case t == ";":
			p.endDefinition()
		default:
			// Our source is forth like: words can start with and contain
			// digits, symbols, punctuation and so on. The stdlib scanner can
			// only return tokens, so we need to convert back to ints when
			// required.
			if n, err := strconv.ParseInt(t, 0, 32); err == nil {
				p.emit(vm.Push(vm.Cell(n)))
			} else if op, ok := builtinIndex[t]; ok {
				p.emit(vm.Instr{Op: op})
			} else {
				// defer resolution to execution time via the dictionary
				p.emit(vm.CallWord(t))
			}
		}
	}

	if p.cur != nil {
		p.errorf(p.cur.pos, "unterminated definition of %s (missing ;)", p.cur.name)
		p.cur = nil
	}
}

// beginDefinition handles both the spaced form ": name" and the label form
// ":name". Definitions do not nest.
func (p *parser) beginDefinition(t string) {
	pos := p.pos()
	var name string
	if t == ":" {
		if p.s.Scan() == scanner.EOF {
			p.errorf(pos, "missing word name after :")
			return
		}
		name = p.s.TokenText()
	} else {
		name = t[1:]
	}
	if name == ";" || name == ":" {
		p.errorf(pos, "missing word name after :")
		return
	}
	if p.cur != nil {
		p.errorf(pos, "nested definition of %s inside %s", name, p.cur.name)
		// drop the broken outer body and carry on with the new one
	}
	p.cur = &definition{name: name, pos: pos}
}

func (p *parser) endDefinition() {
	if p.cur == nil {
		p.errorf(p.pos(), "; outside a definition")
		return
	}
	p.cur.body = append(p.cur.body, vm.Return)
	p.defs = append(p.defs, *p.cur)
	p.cur = nil
}

// finalize lays out the final program: the main body, an implicit halt, then
// every word body in definition order. Dictionary addresses are computed
// from the concatenation itself, so they cannot go stale. When a word is
// defined more than once, the last definition wins.
//
// finalize consumes the parser; it must be called exactly once.
func (p *parser) finalize() ([]vm.Instr, vm.Dict) {
	prog := append(p.main, vm.Halt)
	dict := make(vm.Dict, len(p.defs))
	for _, d := range p.defs {
		dict[d.name] = len(prog)
		prog = append(prog, d.body...)
	}
	p.main, p.defs = nil, nil
	return prog, dict
}
