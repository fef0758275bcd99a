package spry

type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindFunction
	KindBuiltin
)

// Value is a tagged variant. Every instance also carries a source span and the
// context that produced it; those tags exist purely for diagnostics and are
// rewritten as the value flows through expressions. Values are copied on
// variable access and on call return so retagging one use never corrupts
// another's tags.
type Value struct {
	kind ValueKind
	data any

	start Position
	end   Position
	ctx   *Context
}

// Function is a user-defined function. Body is shared with the parsed tree,
// never copied; Env is the defining environment, and each call builds a fresh
// child of it.
type Function struct {
	Name     string
	ArgNames []string
	Body     Node
	Env      *Env
}

func (f *Function) displayName() string {
	if f.Name == "" {
		return "<anonymous>"
	}
	return f.Name
}

type BuiltinFunc func(e *Engine, args []Value) (Value, error)

// Builtin follows the same arity-checked invocation protocol as Function but
// dispatches to a native implementation.
type Builtin struct {
	Name     string
	ArgNames []string
	Fn       BuiltinFunc
}

func NewNull() Value           { return Value{kind: KindNull} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }
func NewList(l []Value) Value  { return Value{kind: KindList, data: l} }

func NewFunction(f *Function) Value {
	return Value{kind: KindFunction, data: f}
}
func NewBuiltin(name string, argNames []string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, ArgNames: argNames, Fn: fn}}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return int64(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

func (v Value) List() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.data.([]Value)
}

func (v Value) Function() *Function {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*Function)
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) isNumber() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// withSpan returns a copy retagged with a source span.
func (v Value) withSpan(start, end Position) Value {
	v.start = start
	v.end = end
	return v
}

// withContext returns a copy retagged with the active context.
func (v Value) withContext(ctx *Context) Value {
	v.ctx = ctx
	return v
}

func (v Value) tagged(node Node, ctx *Context) Value {
	return v.withSpan(node.PosStart(), node.PosEnd()).withContext(ctx)
}
