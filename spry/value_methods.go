package spry

import (
	"fmt"
	"strconv"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String is the display form: what the REPL prints for a result.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return strconv.FormatFloat(v.data.(float64), 'g', -1, 64)
	case KindString:
		return v.data.(string)
	case KindList:
		elems := v.data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindFunction:
		return fmt.Sprintf("<function %s>", v.Function().displayName())
	case KindBuiltin:
		return fmt.Sprintf("<builtin %s>", v.Builtin().Name)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy is the coercion applied by if, while, && and ||. Numbers are truthy
// when nonzero, strings when nonempty; lists and functions are always truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool()
	case KindInt:
		return v.data.(int64) != 0
	case KindFloat:
		return v.data.(float64) != 0
	case KindString:
		return v.data.(string) != ""
	default:
		return true
	}
}
