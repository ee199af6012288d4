package driver

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/paytoncavanagh1/f25-starter/pkg/ast"
)

// Format names the serialization a parser used to hand over a tree.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the tree format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported program format %q (want .json, .yml or .yaml)", filepath.Ext(path))
	}
}

// LoadProgram reads and decodes a serialized program tree.
func LoadProgram(path string) (*ast.Program, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", path, err)
	}
	program, err := DecodeProgram(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode program %s: %w", path, err)
	}
	return program, nil
}

// DecodeProgram turns a serialized tree into AST nodes.
func DecodeProgram(data []byte, format Format) (*ast.Program, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		val, err := yamlValue(&doc)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if val != nil {
			m, ok := val.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parse yaml: top level must be a mapping, got %T", val)
			}
			raw = m
		}
	default:
		return nil, fmt.Errorf("unknown program format %q", format)
	}
	if raw == nil {
		return nil, fmt.Errorf("empty program")
	}
	return decodeProgram(raw)
}

// yamlValue converts a YAML tree into the generic shape the JSON decoder
// produces. Plain decimal integers keep their source text as a json.Number;
// yaml.v3 would otherwise resolve values beyond 64 bits to float64.
func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := yamlValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			key := node.Content[idx]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
			}
			val, err := yamlValue(node.Content[idx+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = val
		}
		return out, nil
	case yaml.ScalarNode:
		if isPlainInteger(node) {
			return json.Number(node.Value), nil
		}
		var val any
		if err := node.Decode(&val); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return val, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
	}
}

func isPlainInteger(node *yaml.Node) bool {
	const quoted = yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle | yaml.LiteralStyle | yaml.FoldedStyle
	if node.Style&quoted != 0 {
		return false
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
	default:
		return false
	}
	_, ok := new(big.Int).SetString(node.Value, 10)
	return ok
}

func decodeProgram(node map[string]any) (*ast.Program, error) {
	if typ := nodeType(node); typ != ast.NodeProgram {
		return nil, fmt.Errorf("expected %s node, got %q", ast.NodeProgram, typ)
	}
	rawFuncs, err := listField(node, "functions")
	if err != nil {
		return nil, err
	}
	funcs := make([]*ast.FunctionDefinition, 0, len(rawFuncs))
	for idx, raw := range rawFuncs {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("functions[%d]: invalid node %T", idx, raw)
		}
		fn, err := decodeFunction(child)
		if err != nil {
			return nil, fmt.Errorf("functions[%d]: %w", idx, err)
		}
		funcs = append(funcs, fn)
	}
	return ast.NewProgram(funcs), nil
}

func decodeFunction(node map[string]any) (*ast.FunctionDefinition, error) {
	if typ := nodeType(node); typ != ast.NodeFunctionDefinition {
		return nil, fmt.Errorf("expected %s node, got %q", ast.NodeFunctionDefinition, typ)
	}
	name, err := stringField(node, "name")
	if err != nil {
		return nil, err
	}
	rawStmts, err := listField(node, "statements")
	if err != nil {
		return nil, err
	}
	stmts := make([]ast.Statement, 0, len(rawStmts))
	for idx, raw := range rawStmts {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.statements[%d]: invalid node %T", name, idx, raw)
		}
		stmt, err := decodeStatement(child)
		if err != nil {
			return nil, fmt.Errorf("%s.statements[%d]: %w", name, idx, err)
		}
		stmts = append(stmts, stmt)
	}
	return ast.NewFunctionDefinition(name, stmts), nil
}

func decodeStatement(node map[string]any) (ast.Statement, error) {
	switch typ := nodeType(node); typ {
	case ast.NodeVariableDefinition:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewVariableDefinition(name), nil
	case ast.NodeAssignment:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		expr, err := expressionField(node, "expression")
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(name, expr), nil
	case ast.NodeFunctionCall:
		return decodeCall(node)
	default:
		return nil, fmt.Errorf("invalid statement node %q", typ)
	}
}

func decodeExpression(node map[string]any) (ast.Expression, error) {
	switch typ := nodeType(node); typ {
	case ast.NodeIntegerLiteral:
		val, err := parseBigInt(node["value"])
		if err != nil {
			return nil, err
		}
		return ast.NewIntegerLiteral(val), nil
	case ast.NodeStringLiteral:
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("StringLiteral value must be a string, got %T", node["value"])
		}
		return ast.NewStringLiteral(val), nil
	case ast.NodeIdentifier:
		name, err := stringField(node, "name")
		if err != nil {
			return nil, err
		}
		return ast.NewIdentifier(name), nil
	case ast.NodeBinaryExpression:
		op, err := stringField(node, "operator")
		if err != nil {
			return nil, err
		}
		left, err := expressionField(node, "left")
		if err != nil {
			return nil, err
		}
		right, err := expressionField(node, "right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(op, left, right), nil
	case ast.NodeFunctionCall:
		return decodeCall(node)
	default:
		return nil, fmt.Errorf("invalid expression node %q", typ)
	}
}

func decodeCall(node map[string]any) (*ast.FunctionCall, error) {
	name, err := stringField(node, "name")
	if err != nil {
		return nil, err
	}
	rawArgs, err := listField(node, "args")
	if err != nil {
		return nil, err
	}
	args := make([]ast.Expression, 0, len(rawArgs))
	for idx, raw := range rawArgs {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s args[%d]: invalid node %T", name, idx, raw)
		}
		arg, err := decodeExpression(child)
		if err != nil {
			return nil, fmt.Errorf("%s args[%d]: %w", name, idx, err)
		}
		args = append(args, arg)
	}
	return ast.NewFunctionCall(name, args), nil
}

func nodeType(node map[string]any) ast.NodeType {
	typ, _ := node["type"].(string)
	return ast.NodeType(typ)
}

func stringField(node map[string]any, key string) (string, error) {
	val, ok := node[key].(string)
	if !ok {
		return "", fmt.Errorf("%s node missing string field %q", nodeType(node), key)
	}
	return val, nil
}

// listField treats an absent or null list as empty.
func listField(node map[string]any, key string) ([]any, error) {
	raw, present := node[key]
	if !present || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s field %q must be a list, got %T", nodeType(node), key, raw)
	}
	return list, nil
}

func expressionField(node map[string]any, key string) (ast.Expression, error) {
	child, ok := node[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node missing expression field %q", nodeType(node), key)
	}
	expr, err := decodeExpression(child)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", nodeType(node), key, err)
	}
	return expr, nil
}

func parseBigInt(raw any) (*big.Int, error) {
	switch v := raw.(type) {
	case json.Number:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(strings.TrimSpace(v))
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("IntegerLiteral value %v is not an integer", v)
		}
		// Above 2^53 a float no longer holds every integer exactly.
		if math.Abs(v) > maxExactFloat {
			return nil, fmt.Errorf("IntegerLiteral value %v exceeds exact float range; quote it as a decimal string", v)
		}
		n, _ := big.NewFloat(v).Int(nil)
		return n, nil
	default:
		return nil, fmt.Errorf("IntegerLiteral value has unsupported type %T", raw)
	}
}

const maxExactFloat = 1 << 53

func parseDecimal(text string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, fmt.Errorf("IntegerLiteral value %q is not a base-10 integer", text)
	}
	return n, nil
}
