package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/paytoncavanagh1/f25-starter/pkg/ast"
	"github.com/paytoncavanagh1/f25-starter/pkg/runtime"
)

const (
	printName  = "print"
	inputiName = "inputi"
)

// callBuiltin dispatches a call node. Only inputi produces a value, so it is
// the only builtin accepted in expression position.
func (i *Interpreter) callBuiltin(call *ast.FunctionCall, env *runtime.Environment, asExpression bool) (runtime.Value, error) {
	switch {
	case call.Name == printName && !asExpression:
		return nil, i.builtinPrint(call.Arguments, env)
	case call.Name == inputiName:
		return i.builtinInputI(call.Arguments, env)
	default:
		return nil, nameErrorf("Function %s has not been defined", call.Name)
	}
}

func (i *Interpreter) builtinPrint(args []ast.Expression, env *runtime.Environment) error {
	var b strings.Builder
	for _, arg := range args {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return err
		}
		b.WriteString(runtime.Stringify(val))
	}
	if err := i.writeLine(b.String()); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (i *Interpreter) builtinInputI(args []ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if len(args) > 1 {
		return nil, nameErrorf("No inputi() function found that takes > 1 parameter")
	}
	if len(args) == 1 {
		prompt, err := i.evaluateExpression(args[0], env)
		if err != nil {
			return nil, err
		}
		if err := i.writeLine(runtime.Stringify(prompt)); err != nil {
			return nil, fmt.Errorf("inputi: %w", err)
		}
	}
	line, err := i.in.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("inputi: %w", ErrEndOfInput)
		}
		return nil, fmt.Errorf("inputi: %w", err)
	}
	val, ok := runtime.ParseInteger(strings.TrimSpace(line))
	if !ok {
		return nil, fmt.Errorf("inputi: %q: %w", line, ErrInvalidInput)
	}
	return val, nil
}
