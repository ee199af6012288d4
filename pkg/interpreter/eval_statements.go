package interpreter

import (
	"fmt"

	"github.com/oarkflow/log"

	"github.com/paytoncavanagh1/f25-starter/pkg/ast"
	"github.com/paytoncavanagh1/f25-starter/pkg/runtime"
)

func (i *Interpreter) executeFunction(fn *ast.FunctionDefinition, env *runtime.Environment) error {
	for idx, stmt := range fn.Statements {
		i.logger.Debug().Str("run", i.runID).Str("function", fn.Name).Int("statement", idx).Str("node", string(stmt.NodeType())).Msg("executing statement")
		if err := i.executeStatement(stmt, env); err != nil {
			return err
		}
		if i.logger.Level <= log.TraceLevel {
			i.logger.Trace().Str("run", i.runID).Strs("declared", env.Keys()).Msg("environment")
		}
	}
	return nil
}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.VariableDefinition:
		return fromEnvironment(env.Declare(n.Name))
	case *ast.Assignment:
		return i.executeAssignment(n, env)
	case *ast.FunctionCall:
		_, err := i.callBuiltin(n, env, false)
		return err
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// executeAssignment checks the target before the right-hand side is evaluated.
func (i *Interpreter) executeAssignment(stmt *ast.Assignment, env *runtime.Environment) error {
	if !env.IsDeclared(stmt.Name) {
		return nameErrorf("Variable %s has not been defined", stmt.Name)
	}
	val, err := i.evaluateExpression(stmt.Expression, env)
	if err != nil {
		return err
	}
	return fromEnvironment(env.Assign(stmt.Name, val))
}
