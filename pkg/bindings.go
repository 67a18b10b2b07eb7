package tinyc

// Bindings maps each name to a stack of live values. The top of a stack is
// the innermost visible declaration; popping it uncovers the shadowed one.
type Bindings struct {
	vals map[string][]Value
}

func NewBindings() *Bindings {
	return &Bindings{
		vals: make(map[string][]Value),
	}
}

func (b *Bindings) Push(name string, val Value) {
	b.vals[name] = append(b.vals[name], val)
}

func (b *Bindings) Pop(name string) {
	stack := b.vals[name]
	if len(stack) == 0 {
		panic("tinyc: pop of unbound name " + name)
	}

	stack[len(stack)-1] = nil
	if len(stack) == 1 {
		delete(b.vals, name)
		return
	}

	b.vals[name] = stack[:len(stack)-1]
}

// Get returns the innermost binding of name.
func (b *Bindings) Get(name string) (Value, bool) {
	stack := b.vals[name]
	if len(stack) == 0 {
		return nil, false
	}

	return stack[len(stack)-1], true
}

func (b *Bindings) Depth(name string) int {
	return len(b.vals[name])
}

// Snapshot records the stack depth of every bound name.
func (b *Bindings) Snapshot() map[string]int {
	depths := make(map[string]int, len(b.vals))
	for name, stack := range b.vals {
		depths[name] = len(stack)
	}

	return depths
}

// scope remembers the names a block pushed so it can pop exactly those.
type scope struct {
	names []string
}

func (s *scope) declare(b *Bindings, def *VarDef) error {
	for _, decl := range def.Vars {
		val, err := NewValue(decl)
		if err != nil {
			return err
		}

		b.Push(decl.Name, val)
		s.names = append(s.names, decl.Name)
	}

	return nil
}

func (s *scope) bind(b *Bindings, name string, val Value) {
	b.Push(name, val)
	s.names = append(s.names, name)
}

func (s *scope) release(b *Bindings) {
	for _, name := range s.names {
		b.Pop(name)
	}

	s.names = s.names[:0]
}
