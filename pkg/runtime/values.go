package runtime

import (
	"fmt"
	"math/big"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindUnset Kind = iota
	KindInteger
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindUnset:
		return "unset"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// UnsetValue is bound by a declaration until the first assignment.
type UnsetValue struct{}

func (UnsetValue) Kind() Kind { return KindUnset }

// NewInteger builds an IntegerValue from a machine integer.
func NewInteger(v int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(v)}
}

// ParseInteger reads a base-10 integer with an optional sign.
func ParseInteger(text string) (IntegerValue, bool) {
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return IntegerValue{}, false
	}
	return IntegerValue{Val: n}, true
}

// Stringify renders a value the way print writes it.
func Stringify(val Value) string {
	switch v := val.(type) {
	case IntegerValue:
		if v.Val == nil {
			return "0"
		}
		return v.Val.String()
	case StringValue:
		return v.Val
	case UnsetValue, nil:
		return "nil"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}
