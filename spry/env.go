package spry

// Env is a mutable name-to-value table chained to a lexical parent. The
// parent link is lookup-only; a child never writes through it.
type Env struct {
	parent *Env
	values map[string]Value
}

func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Get checks the local table, then walks toward the root.
func (e *Env) Get(name string) (Value, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Set always writes to the local frame, shadowing any ancestor binding.
func (e *Env) Set(name string, val Value) {
	e.values[name] = val
}

// Names lists the bindings of the local frame only.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	return names
}
