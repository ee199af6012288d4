package interpreter

import (
	"math/big"
	"testing"

	"github.com/paytoncavanagh1/f25-starter/pkg/ast"
	"github.com/paytoncavanagh1/f25-starter/pkg/runtime"
)

func bigInt(v int64) *big.Int {
	return big.NewInt(v)
}

// newQuiet returns an interpreter that records output instead of printing it
// and replays the given input lines.
func newQuiet(input ...string) *Interpreter {
	return New(Options{Quiet: true, Input: NewScriptedInput(input...)})
}

func runMain(t *testing.T, input []string, stmts ...ast.Statement) ([]string, error) {
	t.Helper()
	interp := newQuiet(input...)
	err := interp.Run(ast.Prog(ast.Fn("main", stmts...)))
	return interp.Output(), err
}

func expectKind(t *testing.T, err error, want ErrorKind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	runErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if runErr.Kind != want {
		t.Fatalf("expected %s, got %s (%s)", want, runErr.Kind, runErr.Message)
	}
	return runErr
}

func expectLines(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d lines %q, got %d lines %q", len(want), want, len(got), got)
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("line %d: expected %q, got %q", idx, want[idx], got[idx])
		}
	}
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntegerValue)
	if !ok || iv.Val.Cmp(bigInt(want)) != 0 {
		t.Fatalf("expected integer %d, got %#v", want, val)
	}
}
