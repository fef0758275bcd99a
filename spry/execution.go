package spry

import (
	"errors"
	"fmt"
	"strconv"
)

// Context is one frame of the call stack, used only to build error
// tracebacks. A frame is pushed per function invocation, not per block.
type Context struct {
	Name           string
	Parent         *Context
	ParentEntryPos *Position
}

func (e *Engine) runtimeError(kind RuntimeErrorKind, msg string, start, end Position, ctx *Context) error {
	return &RuntimeError{Kind: kind, Message: msg, Start: start, End: end, Context: ctx}
}

func (e *Engine) errorAt(node Node, ctx *Context, kind RuntimeErrorKind, format string, args ...any) error {
	return e.runtimeError(kind, fmt.Sprintf(format, args...), node.PosStart(), node.PosEnd(), ctx)
}

// eval walks the tree. Dispatch is a closed switch over the node variants;
// a new node kind means a new arm here.
func (e *Engine) eval(node Node, env *Env, ctx *Context) (Value, error) {
	switch n := node.(type) {
	case *NumberNode:
		return e.evalNumber(n, ctx)
	case *StringNode:
		return NewString(n.Tok.Literal).tagged(n, ctx), nil
	case *ListNode:
		elems := make([]Value, len(n.Elements))
		for i, el := range n.Elements {
			val, err := e.eval(el, env, ctx)
			if err != nil {
				return NewNull(), err
			}
			elems[i] = val
		}
		return NewList(elems).tagged(n, ctx), nil
	case *VarAccessNode:
		name := n.Name.Literal
		val, ok := env.Get(name)
		if !ok {
			return NewNull(), e.errorAt(n, ctx, ErrUndefinedVariable, "'%s' is not defined", name)
		}
		// value structs copy on access, so retagging here never touches
		// the stored binding's tags
		return val.tagged(n, ctx), nil
	case *VarAssignNode:
		val, err := e.eval(n.Value, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		env.Set(n.Name.Literal, val)
		return val, nil
	case *UnaryOpNode:
		return e.evalUnaryOp(n, env, ctx)
	case *BinOpNode:
		return e.evalBinOp(n, env, ctx)
	case *IfNode:
		return e.evalIf(n, env, ctx)
	case *ForNode:
		return e.evalFor(n, env, ctx)
	case *WhileNode:
		return e.evalWhile(n, env, ctx)
	case *FuncDefNode:
		name := ""
		if n.Name != nil {
			name = n.Name.Literal
		}
		argNames := make([]string, len(n.ArgNames))
		for i, tok := range n.ArgNames {
			argNames[i] = tok.Literal
		}
		fn := NewFunction(&Function{Name: name, ArgNames: argNames, Body: n.Body, Env: env}).tagged(n, ctx)
		if name != "" {
			env.Set(name, fn)
		}
		return fn, nil
	case *CallNode:
		return e.evalCall(n, env, ctx)
	default:
		return NewNull(), e.errorAt(node, ctx, ErrIllegalOperation, "unsupported node")
	}
}

func (e *Engine) evalNumber(n *NumberNode, ctx *Context) (Value, error) {
	if n.Tok.Type == tokenInt {
		i, err := strconv.ParseInt(n.Tok.Literal, 10, 64)
		if err != nil {
			return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "invalid number literal '%s'", n.Tok.Literal)
		}
		return NewInt(i).tagged(n, ctx), nil
	}
	f, err := strconv.ParseFloat(n.Tok.Literal, 64)
	if err != nil {
		return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "invalid number literal '%s'", n.Tok.Literal)
	}
	return NewFloat(f).tagged(n, ctx), nil
}

func (e *Engine) evalUnaryOp(n *UnaryOpNode, env *Env, ctx *Context) (Value, error) {
	val, err := e.eval(n.Operand, env, ctx)
	if err != nil {
		return NewNull(), err
	}

	switch n.Op.Type {
	case tokenMinus:
		out, err := multiplyValues(val, NewInt(-1))
		if err != nil {
			return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "illegal operation: -%s", val.Kind())
		}
		return out.tagged(n, ctx), nil
	case tokenPlus:
		return val.tagged(n, ctx), nil
	case tokenBang:
		return notValue(val).tagged(n, ctx), nil
	default:
		return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "unsupported unary operator %s", n.Op.Type)
	}
}

func (e *Engine) evalBinOp(n *BinOpNode, env *Env, ctx *Context) (Value, error) {
	left, err := e.eval(n.Left, env, ctx)
	if err != nil {
		return NewNull(), err
	}
	right, err := e.eval(n.Right, env, ctx)
	if err != nil {
		return NewNull(), err
	}

	// The zero check applies to numeric division only; a zero right operand
	// of a list index is a valid index.
	if n.Op.Type == tokenDiv && left.isNumber() && right.isNumber() && right.Float() == 0 {
		return NewNull(), e.runtimeError(ErrDivisionByZero, "division by zero", n.Right.PosStart(), n.Right.PosEnd(), ctx)
	}

	var result Value
	switch n.Op.Type {
	case tokenPlus:
		result, err = addValues(left, right)
	case tokenMinus:
		result, err = subtractValues(left, right)
	case tokenMul:
		result, err = multiplyValues(left, right)
	case tokenDiv:
		result, err = divideValues(left, right)
	case tokenPow:
		result, err = powValues(left, right)
	case tokenEE, tokenNE, tokenLT, tokenGT, tokenLTE, tokenGTE:
		result, err = compareValues(n.Op.Type, left, right)
	case tokenAnd:
		result = andValues(left, right)
	case tokenOr:
		result = orValues(left, right)
	default:
		return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "unsupported operator %s", n.Op.Type)
	}

	if err != nil {
		if errors.Is(err, errDivisionByZero) {
			return NewNull(), e.runtimeError(ErrDivisionByZero, "division by zero", n.Right.PosStart(), n.Right.PosEnd(), ctx)
		}
		return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "%s", err.Error())
	}
	return result.tagged(n, ctx), nil
}

func (e *Engine) evalIf(n *IfNode, env *Env, ctx *Context) (Value, error) {
	for _, c := range n.Cases {
		cond, err := e.eval(c.Cond, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		if cond.Truthy() {
			val, err := e.eval(c.Body, env, ctx)
			if err != nil {
				return NewNull(), err
			}
			return val.tagged(n, ctx), nil
		}
	}
	if n.Else != nil {
		val, err := e.eval(n.Else, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		return val.tagged(n, ctx), nil
	}
	return NewNull().tagged(n, ctx), nil
}

// evalFor writes the induction variable into the current environment, not a
// child scope, so it stays bound after the loop. The loop is an expression:
// each iteration's body result is collected into the resulting list.
func (e *Engine) evalFor(n *ForNode, env *Env, ctx *Context) (Value, error) {
	start, err := e.evalLoopBound(n.Start, env, ctx)
	if err != nil {
		return NewNull(), err
	}
	end, err := e.evalLoopBound(n.End, env, ctx)
	if err != nil {
		return NewNull(), err
	}
	step := NewInt(1)
	if n.Step != nil {
		step, err = e.evalLoopBound(n.Step, env, ctx)
		if err != nil {
			return NewNull(), err
		}
	}

	descending := step.Float() < 0
	counter := start
	var elems []Value
	for {
		env.Set(n.VarName.Literal, counter)
		if descending {
			if counter.Float() <= end.Float() {
				break
			}
		} else if counter.Float() >= end.Float() {
			break
		}

		val, err := e.eval(n.Body, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		elems = append(elems, val)

		counter, err = addValues(counter, step)
		if err != nil {
			return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "%s", err.Error())
		}
	}

	return NewList(elems).tagged(n, ctx), nil
}

func (e *Engine) evalLoopBound(node Node, env *Env, ctx *Context) (Value, error) {
	val, err := e.eval(node, env, ctx)
	if err != nil {
		return NewNull(), err
	}
	if !val.isNumber() {
		return NewNull(), e.errorAt(node, ctx, ErrIllegalOperation, "for loop bound must be a number, got %s", val.Kind())
	}
	return val, nil
}

func (e *Engine) evalWhile(n *WhileNode, env *Env, ctx *Context) (Value, error) {
	var elems []Value
	for {
		cond, err := e.eval(n.Cond, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		if !cond.Truthy() {
			break
		}
		val, err := e.eval(n.Body, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		elems = append(elems, val)
	}
	return NewList(elems).tagged(n, ctx), nil
}

func (e *Engine) evalCall(n *CallNode, env *Env, ctx *Context) (Value, error) {
	callee, err := e.eval(n.Callee, env, ctx)
	if err != nil {
		return NewNull(), err
	}
	callee = callee.tagged(n, ctx)

	args := make([]Value, len(n.Args))
	for i, argNode := range n.Args {
		val, err := e.eval(argNode, env, ctx)
		if err != nil {
			return NewNull(), err
		}
		args[i] = val
	}

	switch callee.Kind() {
	case KindFunction:
		fn := callee.Function()
		if err := e.checkArity(n, ctx, fn.displayName(), len(fn.ArgNames), len(args)); err != nil {
			return NewNull(), err
		}
		entry := n.PosStart()
		callCtx := &Context{Name: fn.displayName(), Parent: ctx, ParentEntryPos: &entry}
		callEnv := NewEnv(fn.Env)
		for i, name := range fn.ArgNames {
			callEnv.Set(name, args[i])
		}
		ret, err := e.eval(fn.Body, callEnv, callCtx)
		if err != nil {
			return NewNull(), err
		}
		return ret.tagged(n, ctx), nil
	case KindBuiltin:
		b := callee.Builtin()
		if err := e.checkArity(n, ctx, b.Name, len(b.ArgNames), len(args)); err != nil {
			return NewNull(), err
		}
		ret, err := b.Fn(e, args)
		if err != nil {
			var runtimeErr *RuntimeError
			if errors.As(err, &runtimeErr) {
				return NewNull(), err
			}
			return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "%s", err.Error())
		}
		return ret.tagged(n, ctx), nil
	default:
		return NewNull(), e.errorAt(n, ctx, ErrIllegalOperation, "cannot call %s value", callee.Kind())
	}
}

func (e *Engine) checkArity(n *CallNode, ctx *Context, name string, want, got int) error {
	if got == want {
		return nil
	}
	if got > want {
		return e.errorAt(n, ctx, ErrArityMismatch, "%d too many args passed into '%s' (takes %d, got %d)", got-want, name, want, got)
	}
	return e.errorAt(n, ctx, ErrArityMismatch, "%d too few args passed into '%s' (takes %d, got %d)", want-got, name, want, got)
}
