package decode

import (
	"fmt"
)

type variable struct {
	values []string
	Position
}

// env holds the variables visible from a file. Files pulled in with include
// see the variables of the including file but their own definitions stay
// local.
type env struct {
	parent *env
	values map[string]variable
}

func emptyEnv() *env {
	return enclosedEnv(nil)
}

func enclosedEnv(parent *env) *env {
	return &env{
		parent: parent,
		values: make(map[string]variable),
	}
}

func (e *env) wrap() *env {
	return enclosedEnv(e)
}

func (e *env) resolve(name string) ([]string, error) {
	v, ok := e.values[name]
	if ok {
		return v.values, nil
	}
	if e.parent != nil {
		return e.parent.resolve(name)
	}
	return nil, fmt.Errorf("%s: undefined variable", name)
}

func (e *env) define(name string, values []string, pos Position) error {
	if v, ok := e.values[name]; ok {
		return fmt.Errorf("%s: variable already defined at %s", name, v.Position)
	}
	e.values[name] = variable{
		values:   values,
		Position: pos,
	}
	return nil
}
