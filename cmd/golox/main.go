package main

// This is an interpreter for the Lox programming language written in Go.

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ltungv/golox/internal/lox"
	"github.com/peterh/liner"
)

func main() {
	args := os.Args[1:]
	if len(args) > 1 {
		fmt.Println("Usage: golox [script]")
		os.Exit(64)
	}

	reporter := lox.NewSimpleReporter(os.Stderr)
	if len(args) == 1 {
		runFile(args[0], reporter)
	} else {
		runPrompt(reporter)
	}
}

func run(script string, interpreter *lox.Interpreter, reporter lox.Reporter) {
	scanner := lox.NewScanner([]rune(script), reporter)
	tokens := scanner.Scan()
	parser := lox.NewParser(tokens, reporter)
	statements := parser.Parse()
	if reporter.HadError() {
		return
	}
	resolver := lox.NewResolver(interpreter, reporter)
	resolver.Resolve(statements)
	if reporter.HadError() {
		return
	}
	interpreter.Interpret(statements)
}

// Run the interpreter in REPL mode
func runPrompt(reporter lox.Reporter) {
	interpreter := lox.NewInterpreter(os.Stdout, reporter, true)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	for {
		line, err := ln.Prompt("> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			// EOF ends the session
			fmt.Println()
			return
		}
		if line != "" {
			ln.AppendHistory(line)
		}
		run(line, interpreter, reporter)
		reporter.Reset()
	}
}

// Run the given file as script
func runFile(fpath string, reporter lox.Reporter) {
	bytes, err := ioutil.ReadFile(fpath)
	exitOnError(err, 1)

	interpreter := lox.NewInterpreter(os.Stdout, reporter, false)
	run(string(bytes), interpreter, reporter)
	exitIf(reporter.HadError(), 65)
	exitIf(reporter.HadRuntimeError(), 70)
}

func exitOnError(err error, status int) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v", err)
		os.Exit(status)
	}
}

func exitIf(cond bool, status int) {
	if cond {
		os.Exit(status)
	}
}
