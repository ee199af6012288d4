package runtime

import (
	"fmt"
	"sort"
)

// NameError reports a declaration or lookup that violates the binding rules.
type NameError struct {
	Name    string
	Message string
}

func (e *NameError) Error() string {
	return e.Message
}

// Environment holds the variables of the single running function. There is
// no parent chain: the language has one flat scope per run.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Declare introduces name bound to UnsetValue.
func (e *Environment) Declare(name string) error {
	if _, ok := e.values[name]; ok {
		return &NameError{Name: name, Message: fmt.Sprintf("Variable %s defined more than once", name)}
	}
	e.values[name] = UnsetValue{}
	return nil
}

// Assign overwrites the binding of an already declared name.
func (e *Environment) Assign(name string, value Value) error {
	if _, ok := e.values[name]; !ok {
		return undefinedVariable(name)
	}
	e.values[name] = value
	return nil
}

// Lookup returns the current binding, which may still be UnsetValue.
func (e *Environment) Lookup(name string) (Value, error) {
	v, ok := e.values[name]
	if !ok {
		return nil, undefinedVariable(name)
	}
	return v, nil
}

// IsDeclared reports whether name has been declared.
func (e *Environment) IsDeclared(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func undefinedVariable(name string) *NameError {
	return &NameError{Name: name, Message: fmt.Sprintf("Variable %s has not been defined", name)}
}
