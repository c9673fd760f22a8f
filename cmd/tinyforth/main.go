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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/tuttlem/tiny-forth/asm"
	"github.com/tuttlem/tiny-forth/vm"
)

var (
	expr  string
	limit int64
	dump  bool
	debug bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	var t *vm.Error
	if errors.As(err, &t) {
		fmt.Fprintf(os.Stderr, "PC: %v (%v), Stack: %v, Addr: %v\n", t.PC, t.Instr, t.Stack, t.RStack)
	}
	os.Exit(1)
}

func runSource(name string, r io.Reader) error {
	prog, dict, err := asm.Assemble(name, r)
	if err != nil {
		return err
	}
	if dump {
		return asm.DisassembleAll(prog, 0, os.Stdout)
	}
	opts := []vm.Option{vm.Dictionary(dict)}
	if limit > 0 {
		opts = append(opts, vm.MaxSteps(limit))
	}
	i, err := vm.New(prog, opts...)
	if err != nil {
		return err
	}
	if err = i.Run(); err != nil {
		return err
	}
	fmt.Println(i.Data())
	return nil
}

func runFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer f.Close()
	return runSource(name, bufio.NewReader(f))
}

func repl(in io.Reader, out, errw io.Writer) error {
	s := newSession(limit)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		stack, err := s.eval(line)
		if err != nil {
			fmt.Fprintf(errw, "%v\n", err)
			continue
		}
		fmt.Fprintln(out, stack)
	}
	return errors.Wrap(sc.Err(), "read input")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func main() {
	flag.StringVar(&expr, "e", "", "assemble and run `expr` instead of reading files")
	flag.Int64Var(&limit, "limit", 0, "maximum number of instructions to execute, 0 means no limit")
	flag.BoolVar(&dump, "dump", false, "print a disassembly instead of running")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Parse()

	var err error
	switch {
	case expr != "":
		err = runSource("cmdline", strings.NewReader(expr))
	case flag.NArg() > 0:
		for _, name := range flag.Args() {
			if err = runFile(name); err != nil {
				break
			}
		}
	case isTerminal(os.Stdin):
		err = repl(os.Stdin, os.Stdout, os.Stderr)
	default:
		err = runSource("stdin", bufio.NewReader(os.Stdin))
	}
	atExit(err)
}
