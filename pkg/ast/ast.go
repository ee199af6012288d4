package ast

import "math/big"

type NodeType string

const (
	NodeProgram            NodeType = "Program"
	NodeFunctionDefinition NodeType = "FunctionDefinition"
	NodeVariableDefinition NodeType = "VariableDefinition"
	NodeAssignment         NodeType = "Assignment"
	NodeFunctionCall       NodeType = "FunctionCall"
	NodeIntegerLiteral     NodeType = "IntegerLiteral"
	NodeStringLiteral      NodeType = "StringLiteral"
	NodeIdentifier         NodeType = "Identifier"
	NodeBinaryExpression   NodeType = "BinaryExpression"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type" yaml:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name" yaml:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value" yaml:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value *big.Int `json:"value" yaml:"value"`
}

func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator" yaml:"operator"`
	Left     Expression `json:"left" yaml:"left"`
	Right    Expression `json:"right" yaml:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// FunctionCall appears both as a statement and inside expressions.
type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name      string       `json:"name" yaml:"name"`
	Arguments []Expression `json:"args" yaml:"args"`
}

func NewFunctionCall(name string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: args}
}

// Statements

type VariableDefinition struct {
	nodeImpl
	statementMarker

	Name string `json:"name" yaml:"name"`
}

func NewVariableDefinition(name string) *VariableDefinition {
	return &VariableDefinition{nodeImpl: newNodeImpl(NodeVariableDefinition), Name: name}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Name       string     `json:"name" yaml:"name"`
	Expression Expression `json:"expression" yaml:"expression"`
}

func NewAssignment(name string, expr Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Expression: expr}
}

// Definitions

type FunctionDefinition struct {
	nodeImpl

	Name       string      `json:"name" yaml:"name"`
	Statements []Statement `json:"statements" yaml:"statements"`
}

func NewFunctionDefinition(name string, statements []Statement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Statements: statements}
}

// Program is the root produced by the parser.
type Program struct {
	nodeImpl

	Functions []*FunctionDefinition `json:"functions" yaml:"functions"`
}

func NewProgram(functions []*FunctionDefinition) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Functions: functions}
}
