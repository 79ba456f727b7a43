package lox

type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*ScriptFunction
}

// FindMethod looks name up on c and then along its superclass chain.
func (c *Class) FindMethod(name string) *ScriptFunction {
	for class := c; class != nil; class = class.Superclass {
		if fn, ok := class.Methods[name]; ok {
			return fn
		}
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs an instance and runs its initializer, if any.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	inst := &Instance{Class: c, Fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(inst).Call(in, args); err != nil {
			return NewNil(), err
		}
	}
	return NewInstance(inst), nil
}

func (c *Class) String() string { return c.Name }

type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// Get returns a field, or failing that a method bound to inst. Fields
// shadow methods.
func (inst *Instance) Get(name string) (Value, bool) {
	if val, ok := inst.Fields[name]; ok {
		return val, true
	}
	if method := inst.Class.FindMethod(name); method != nil {
		return NewFunction(method.Bind(inst)), true
	}
	return NewNil(), false
}

func (inst *Instance) Set(name string, val Value) {
	inst.Fields[name] = val
}

func (inst *Instance) String() string {
	return inst.Class.Name + " instance"
}
