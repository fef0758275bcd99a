package spry

import (
	"io"
	"os"
)

// Config controls host integration points for an Engine.
type Config struct {
	// Stdout receives output from the print builtin. Defaults to os.Stdout.
	Stdout io.Writer
}

// Engine runs Spry programs. It is stateless between runs; session state lives
// in the environment the caller passes to Run, so independent sessions can
// share one Engine.
type Engine struct {
	config   Config
	builtins map[string]Value
}

// NewEngine constructs an Engine and registers the builtin library.
func NewEngine(cfg Config) *Engine {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	e := &Engine{config: cfg, builtins: make(map[string]Value)}
	e.registerBuiltin("print", []string{"value"}, builtinPrint)
	e.registerBuiltin("isNumber", []string{"value"}, builtinIsNumber)
	e.registerBuiltin("isString", []string{"value"}, builtinIsString)
	e.registerBuiltin("isList", []string{"value"}, builtinIsList)
	e.registerBuiltin("isFunction", []string{"value"}, builtinIsFunction)
	e.registerBuiltin("append", []string{"list", "value"}, builtinAppend)
	e.registerBuiltin("pop", []string{"list", "index"}, builtinPop)
	e.registerBuiltin("extend", []string{"listA", "listB"}, builtinExtend)
	e.registerBuiltin("len", []string{"value"}, builtinLen)
	return e
}

func (e *Engine) registerBuiltin(name string, argNames []string, fn BuiltinFunc) {
	e.builtins[name] = NewBuiltin(name, argNames, fn)
}

// GlobalEnv returns a fresh root environment seeded with the builtins and the
// null/true/false constants. The caller owns it and passes it back into Run;
// keeping one env across runs is what makes a session's definitions persist.
func (e *Engine) GlobalEnv() *Env {
	env := NewEnv(nil)
	env.Set("null", NewNull())
	env.Set("true", NewBool(true))
	env.Set("false", NewBool(false))
	for name, val := range e.builtins {
		env.Set(name, val)
	}
	return env
}

// Run executes one top-level expression: text -> tokens -> tree -> value.
// sourceName is an opaque label used only in diagnostics. Run performs no I/O
// beyond what the print builtin writes to Config.Stdout.
func (e *Engine) Run(sourceName, sourceText string, env *Env) (Value, error) {
	tokens, err := tokenize(sourceName, sourceText)
	if err != nil {
		return NewNull(), err
	}
	node, err := parse(tokens)
	if err != nil {
		return NewNull(), err
	}
	ctx := &Context{Name: "<program>"}
	return e.eval(node, env, ctx)
}

// Check lexes and parses without evaluating.
func (e *Engine) Check(sourceName, sourceText string) error {
	tokens, err := tokenize(sourceName, sourceText)
	if err != nil {
		return err
	}
	_, err = parse(tokens)
	return err
}

// Builtins returns the names of the registered builtins.
func (e *Engine) Builtins() []string {
	names := make([]string, 0, len(e.builtins))
	for name := range e.builtins {
		names = append(names, name)
	}
	return names
}
