package lox

// Env is one scope in the environment chain. The parent link is fixed at
// creation and the chain ends at the interpreter's globals.
type Env struct {
	parent *Env
	values map[string]Value
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]Value)}
}

// Get walks outward from e and returns the nearest binding of name.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Assign updates an existing binding in the nearest scope that holds it and
// reports false when the name is bound nowhere in the chain.
func (e *Env) Assign(name string, val Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = val
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, val)
	}
	return false
}

func (e *Env) ancestor(distance int) *Env {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the scope exactly distance hops up the chain.
func (e *Env) GetAt(distance int, name string) (Value, bool) {
	env := e.ancestor(distance)
	if env == nil {
		return Value{}, false
	}
	val, ok := env.values[name]
	return val, ok
}

func (e *Env) AssignAt(distance int, name string, val Value) bool {
	env := e.ancestor(distance)
	if env == nil {
		return false
	}
	if _, ok := env.values[name]; !ok {
		return false
	}
	env.values[name] = val
	return true
}

// Names lists the bindings of this scope only.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	return names
}
