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

package main

import (
	"strings"

	"github.com/tuttlem/tiny-forth/asm"
	"github.com/tuttlem/tiny-forth/vm"
)

// A session keeps the word definitions entered so far, so that a REPL line
// can call words defined on earlier lines. Each line is assembled together
// with the retained definitions and run on a fresh VM; only the definitions
// survive from one line to the next.
type session struct {
	limit int64
	words []word
}

// word is one retained definition, kept as source text. Names are unique
// within a session.
type word struct {
	name string
	src  string
}

func newSession(limit int64) *session {
	return &session{limit: limit}
}

// eval runs one input line and returns the resulting data stack. Definitions
// on the line are retained only when the line runs without error.
func (s *session) eval(line string) ([]vm.Cell, error) {
	prog, dict, err := asm.Assemble("repl", strings.NewReader(s.source(line)))
	if err != nil {
		return nil, err
	}
	opts := []vm.Option{vm.Dictionary(dict)}
	if s.limit > 0 {
		opts = append(opts, vm.MaxSteps(s.limit))
	}
	i, err := vm.New(prog, opts...)
	if err != nil {
		return nil, err
	}
	if err = i.Run(); err != nil {
		return nil, err
	}
	s.remember(line)
	return i.Data(), nil
}

// source prepends the retained definitions to the line. Definitions emit no
// main-body code, so the line alone determines what runs; the line comes
// last so that words it redefines shadow the retained ones.
func (s *session) source(line string) string {
	var b strings.Builder
	for _, w := range s.words {
		b.WriteString(w.src)
		b.WriteByte('\n')
	}
	b.WriteString(line)
	return b.String()
}

// remember extracts the `: name ... ;` segments of a line and retains them
// for later lines. Redefinition replaces the earlier body but keeps its
// place in definition order.
func (s *session) remember(line string) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		var name string
		switch {
		case f == ":" && i+1 < len(fields):
			name = fields[i+1]
		case len(f) > 1 && f[0] == ':':
			name = f[1:]
		default:
			continue
		}
		j := i + 1
		for j < len(fields) && fields[j] != ";" {
			j++
		}
		if j == len(fields) {
			break
		}
		s.add(name, strings.Join(fields[i:j+1], " "))
		i = j
	}
}

func (s *session) add(name, src string) {
	for i, w := range s.words {
		if w.name == name {
			s.words[i].src = src
			return
		}
	}
	s.words = append(s.words, word{name, src})
}
