package lox

import "strings"

type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func (reporter *mockReporter) messages() []string {
	var msgs []string
	for _, err := range reporter.errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

func tokEOF(line int) *Token {
	return NewToken(EOF, "", nil, line)
}

// parseSource runs the scanner and the parser over the source, the returned
// statements may contain nil entries when the reporter received errors.
func parseSource(src string, report Reporter) []Stmt {
	scan := NewScanner([]rune(src), report)
	parse := NewParser(scan.Scan(), report)
	return parse.Parse()
}

// interpretSource runs the source through the full pipeline and returns
// everything that was written to the interpreter's output.
func interpretSource(src string, isREPL bool) (string, *mockReporter) {
	report := newMockReporter()
	var out strings.Builder
	interpreter := NewInterpreter(&out, report, isREPL)
	statements := parseSource(src, report)
	if report.HadError() {
		return out.String(), report
	}
	resolver := NewResolver(interpreter, report)
	resolver.Resolve(statements)
	if report.HadError() {
		return out.String(), report
	}
	interpreter.Interpret(statements)
	return out.String(), report
}
