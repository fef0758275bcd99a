package spry

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var errDivisionByZero = errors.New("division by zero")

func illegalOperation(op string, left, right Value) error {
	return fmt.Errorf("illegal operation: %s %s %s", left.Kind(), op, right.Kind())
}

func addValues(left, right Value) (Value, error) {
	switch {
	case left.kind == KindInt && right.kind == KindInt:
		return NewInt(left.Int() + right.Int()), nil
	case left.isNumber() && right.isNumber():
		return NewFloat(left.Float() + right.Float()), nil
	case left.kind == KindString && (right.kind == KindString || right.isNumber()):
		return NewString(left.String() + right.String()), nil
	case left.kind == KindList:
		elems := left.List()
		out := make([]Value, len(elems)+1)
		copy(out, elems)
		out[len(elems)] = right
		return NewList(out), nil
	default:
		return NewNull(), illegalOperation("+", left, right)
	}
}

func subtractValues(left, right Value) (Value, error) {
	switch {
	case left.kind == KindInt && right.kind == KindInt:
		return NewInt(left.Int() - right.Int()), nil
	case left.isNumber() && right.isNumber():
		return NewFloat(left.Float() - right.Float()), nil
	case left.kind == KindList && right.kind == KindInt:
		elems := left.List()
		i := int(right.Int())
		if i < 0 || i >= len(elems) {
			return NewNull(), fmt.Errorf("index %d out of bounds for list of length %d", i, len(elems))
		}
		out := make([]Value, 0, len(elems)-1)
		out = append(out, elems[:i]...)
		out = append(out, elems[i+1:]...)
		return NewList(out), nil
	default:
		return NewNull(), illegalOperation("-", left, right)
	}
}

func multiplyValues(left, right Value) (Value, error) {
	switch {
	case left.kind == KindInt && right.kind == KindInt:
		return NewInt(left.Int() * right.Int()), nil
	case left.isNumber() && right.isNumber():
		return NewFloat(left.Float() * right.Float()), nil
	case left.kind == KindString && right.kind == KindInt:
		n := right.Int()
		if n < 0 {
			n = 0
		}
		return NewString(strings.Repeat(left.String(), int(n))), nil
	default:
		return NewNull(), illegalOperation("*", left, right)
	}
}

func divideValues(left, right Value) (Value, error) {
	switch {
	case left.isNumber() && right.isNumber():
		if right.Float() == 0 {
			return NewNull(), errDivisionByZero
		}
		return NewFloat(left.Float() / right.Float()), nil
	case left.kind == KindList && right.kind == KindInt:
		elems := left.List()
		i := int(right.Int())
		if i < 0 || i >= len(elems) {
			return NewNull(), fmt.Errorf("index %d out of bounds for list of length %d", i, len(elems))
		}
		return elems[i], nil
	default:
		return NewNull(), illegalOperation("/", left, right)
	}
}

func powValues(left, right Value) (Value, error) {
	switch {
	case left.kind == KindInt && right.kind == KindInt && right.Int() >= 0:
		base, exp := left.Int(), right.Int()
		var out int64 = 1
		for ; exp > 0; exp-- {
			out *= base
		}
		return NewInt(out), nil
	case left.isNumber() && right.isNumber():
		return NewFloat(math.Pow(left.Float(), right.Float())), nil
	default:
		return NewNull(), illegalOperation("**", left, right)
	}
}

// oddFunctionCompare is the message raised by >= on function values. The
// wording mirrors the parser's expected-expression message; kept as observed
// behavior rather than corrected.
const oddFunctionCompare = "Expected int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while' or 'fun'"

func compareValues(op TokenType, left, right Value) (Value, error) {
	switch left.kind {
	case KindInt, KindFloat:
		if !right.isNumber() {
			return NewNull(), illegalOperation(string(op), left, right)
		}
		return NewBool(holdsOrder(op, compareFloats(left.Float(), right.Float()))), nil
	case KindString:
		if right.kind != KindString && !right.isNumber() {
			return NewNull(), illegalOperation(string(op), left, right)
		}
		return NewBool(holdsOrder(op, strings.Compare(left.String(), right.String()))), nil
	case KindList:
		if op == tokenGTE {
			return NewBool(true), nil
		}
		return NewNull(), illegalOperation(string(op), left, right)
	case KindFunction, KindBuiltin:
		if op == tokenGTE {
			return NewNull(), errors.New(oddFunctionCompare)
		}
		return NewNull(), illegalOperation(string(op), left, right)
	case KindBool:
		if right.kind == KindBool && (op == tokenEE || op == tokenNE) {
			return NewBool(holdsOrder(op, boolCompare(left.Bool(), right.Bool()))), nil
		}
		return NewNull(), illegalOperation(string(op), left, right)
	case KindNull:
		if right.kind == KindNull && (op == tokenEE || op == tokenNE) {
			return NewBool(op == tokenEE), nil
		}
		return NewNull(), illegalOperation(string(op), left, right)
	default:
		return NewNull(), illegalOperation(string(op), left, right)
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	return 1
}

func holdsOrder(op TokenType, cmp int) bool {
	switch op {
	case tokenEE:
		return cmp == 0
	case tokenNE:
		return cmp != 0
	case tokenLT:
		return cmp < 0
	case tokenGT:
		return cmp > 0
	case tokenLTE:
		return cmp <= 0
	case tokenGTE:
		return cmp >= 0
	default:
		return false
	}
}

// andValues and orValues pick an operand rather than producing a bool, so the
// deciding value keeps its own type.
func andValues(left, right Value) Value {
	if !left.Truthy() {
		return left
	}
	return right
}

func orValues(left, right Value) Value {
	if left.Truthy() {
		return left
	}
	return right
}

// notValue negates truthiness; lists always negate to false since they are
// always truthy.
func notValue(v Value) Value {
	return NewBool(!v.Truthy())
}
