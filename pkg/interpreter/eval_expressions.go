package interpreter

import (
	"fmt"
	"math/big"

	"github.com/paytoncavanagh1/f25-starter/pkg/ast"
	"github.com/paytoncavanagh1/f25-starter/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		if n.Value == nil {
			return nil, fmt.Errorf("integer literal without value")
		}
		return runtime.IntegerValue{Val: runtime.CloneBigInt(n.Value)}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.Identifier:
		val, err := env.Lookup(n.Name)
		if err != nil {
			return nil, fromEnvironment(err)
		}
		return val, nil
	case *ast.FunctionCall:
		return i.callBuiltin(n, env, true)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

// Both operands are reduced through evaluateExpression, left first, before
// any type check.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	leftVal, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return evaluateArithmetic(expr.Operator, leftVal, rightVal)
}

func evaluateArithmetic(op string, left runtime.Value, right runtime.Value) (runtime.Value, error) {
	lv, lok := left.(runtime.IntegerValue)
	rv, rok := right.(runtime.IntegerValue)
	if !lok || !rok || lv.Val == nil || rv.Val == nil {
		return nil, typeErrorf("Incompatible types for arithmetic operation")
	}
	result := new(big.Int)
	switch op {
	case "+":
		result.Add(lv.Val, rv.Val)
	case "-":
		result.Sub(lv.Val, rv.Val)
	default:
		return nil, typeErrorf("Unsupported arithmetic operator %s", op)
	}
	return runtime.IntegerValue{Val: result}, nil
}
