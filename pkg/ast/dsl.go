package ast

import "math/big"

// Short constructors used by tests and embedders that build trees by hand.

func Prog(functions ...*FunctionDefinition) *Program {
	return NewProgram(functions)
}

func Fn(name string, statements ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(name, statements)
}

func Var(name string) *VariableDefinition {
	return NewVariableDefinition(name)
}

func Assign(name string, expr Expression) *Assignment {
	return NewAssignment(name, expr)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(name, args)
}

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

// BigInt wraps an already-parsed arbitrary precision literal.
func BigInt(value *big.Int) *IntegerLiteral {
	return NewIntegerLiteral(new(big.Int).Set(value))
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}
