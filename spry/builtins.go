package spry

import (
	"fmt"
)

func builtinPrint(e *Engine, args []Value) (Value, error) {
	fmt.Fprintln(e.config.Stdout, args[0].String())
	return NewNull(), nil
}

func builtinIsNumber(e *Engine, args []Value) (Value, error) {
	return NewBool(args[0].isNumber()), nil
}

func builtinIsString(e *Engine, args []Value) (Value, error) {
	return NewBool(args[0].Kind() == KindString), nil
}

func builtinIsList(e *Engine, args []Value) (Value, error) {
	return NewBool(args[0].Kind() == KindList), nil
}

func builtinIsFunction(e *Engine, args []Value) (Value, error) {
	kind := args[0].Kind()
	return NewBool(kind == KindFunction || kind == KindBuiltin), nil
}

// builtinAppend returns a list with one more element. The argument list is
// left untouched; list builtins never mutate their inputs.
func builtinAppend(e *Engine, args []Value) (Value, error) {
	if args[0].Kind() != KindList {
		return NewNull(), fmt.Errorf("first arg to 'append' must be a list, got %s", args[0].Kind())
	}
	return addValues(args[0], args[1])
}

// builtinPop returns the element at the given index without removing it from
// the caller's list.
func builtinPop(e *Engine, args []Value) (Value, error) {
	if args[0].Kind() != KindList {
		return NewNull(), fmt.Errorf("first arg to 'pop' must be a list, got %s", args[0].Kind())
	}
	if args[1].Kind() != KindInt {
		return NewNull(), fmt.Errorf("second arg to 'pop' must be an int, got %s", args[1].Kind())
	}
	elems := args[0].List()
	i := int(args[1].Int())
	if i < 0 || i >= len(elems) {
		return NewNull(), fmt.Errorf("index %d out of bounds for list of length %d", i, len(elems))
	}
	return elems[i], nil
}

func builtinExtend(e *Engine, args []Value) (Value, error) {
	if args[0].Kind() != KindList || args[1].Kind() != KindList {
		return NewNull(), fmt.Errorf("both args to 'extend' must be lists, got %s and %s", args[0].Kind(), args[1].Kind())
	}
	a, b := args[0].List(), args[1].List()
	out := make([]Value, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return NewList(out), nil
}

func builtinLen(e *Engine, args []Value) (Value, error) {
	switch args[0].Kind() {
	case KindList:
		return NewInt(int64(len(args[0].List()))), nil
	case KindString:
		return NewInt(int64(len([]rune(args[0].String())))), nil
	default:
		return NewNull(), fmt.Errorf("arg to 'len' must be a list or string, got %s", args[0].Kind())
	}
}
