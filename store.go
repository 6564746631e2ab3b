package catware

import "strconv"

// Store holds variable and function bindings. The zero value has no
// variables, not even the constants; use NewStore. A Store is not safe for
// concurrent use.
type Store struct {
	vars  map[string]float64
	funcs map[string]*Function
	// ext holds functions added with WithFuncs. They act as built-ins.
	ext map[string]Func
}

// NewStore creates a store holding only the reserved constants.
func NewStore() *Store {
	s := Store{
		vars:  make(map[string]float64, len(constants)),
		funcs: make(map[string]*Function),
	}
	for k, v := range constants {
		s.vars[k] = v
	}
	return &s
}

// Clone creates an independent copy of the store.
func (s *Store) Clone() *Store {
	n := Store{
		vars:  make(map[string]float64, len(s.vars)),
		funcs: make(map[string]*Function, len(s.funcs)),
	}
	if s.ext != nil {
		n.ext = make(map[string]Func, len(s.ext))
		for k, f := range s.ext {
			n.ext[k] = f
		}
	}
	for k, v := range s.vars {
		n.vars[k] = v
	}
	// Functions are immutable once defined.
	for k, f := range s.funcs {
		n.funcs[k] = f
	}
	return &n
}

// SetVar sets the value of a variable. Setting a reserved constant fails with
// a *ReservedError and leaves it unchanged. A name that could not be written
// in an expression fails with an *IdentError.
func (s *Store) SetVar(name string, val float64) error {
	if err := checkIdent(name); err != nil {
		return err
	}
	if _, ok := constants[name]; ok {
		return &ReservedError{Name: name}
	}
	if s.vars == nil {
		s.vars = make(map[string]float64)
	}
	s.vars[name] = val
	return nil
}

// Var returns the value of a variable and whether it is defined.
func (s *Store) Var(name string) (float64, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// SetFunc defines a function, replacing any earlier definition with the same
// name regardless of its parameters. body must be an expression. Redefining a
// built-in function or naming a parameter after a constant fails with a
// *ReservedError. Names that are not identifiers fail with an *IdentError.
func (s *Store) SetFunc(name string, params []string, body string) error {
	if err := s.checkFunc(name, params); err != nil {
		return err
	}
	ex, err := ParseExpr(body)
	if err != nil {
		return err
	}
	s.setFunc(name, params, ex)
	return nil
}

func (s *Store) checkFunc(name string, params []string) error {
	if err := checkIdent(name); err != nil {
		return err
	}
	if s.builtin(name) != nil {
		return &ReservedError{Name: name, Func: true}
	}
	for _, p := range params {
		if err := checkIdent(p); err != nil {
			return err
		}
		if _, ok := constants[p]; ok {
			return &ReservedError{Name: p}
		}
	}
	return nil
}

func (s *Store) setFunc(name string, params []string, body *Expr) {
	if s.funcs == nil {
		s.funcs = make(map[string]*Function)
	}
	s.funcs[name] = &Function{
		Name:   name,
		Params: append([]string(nil), params...),
		body:   body,
	}
}

// builtin returns the built-in or added function with the given name, or nil.
func (s *Store) builtin(name string) Func {
	if f := builtins[name]; f != nil {
		return f
	}
	return s.ext[name]
}

// addFunc adds a function that acts as a built-in.
func (s *Store) addFunc(name string, fn Func) error {
	if err := checkIdent(name); err != nil {
		return err
	}
	if _, ok := constants[name]; ok {
		return &ReservedError{Name: name}
	}
	if builtins[name] != nil || name == PlotFunc {
		return &ReservedError{Name: name, Func: true}
	}
	if s.ext == nil {
		s.ext = make(map[string]Func)
	}
	s.ext[name] = fn
	return nil
}

// Func returns a user-defined function and whether it is defined.
func (s *Store) Func(name string) (*Function, bool) {
	f, ok := s.funcs[name]
	return f, ok
}

// Vars returns the names of all variables, including constants, in sorted
// order.
func (s *Store) Vars() []string {
	v := make([]string, 0, len(s.vars))
	for k := range s.vars {
		v = append(v, k)
	}
	sortstrs(v)
	return v
}

// Funcs returns the names of all user-defined functions in sorted order.
func (s *Store) Funcs() []string {
	v := make([]string, 0, len(s.funcs))
	for k := range s.funcs {
		v = append(v, k)
	}
	sortstrs(v)
	return v
}

// Define applies an assignment statement. A variable assignment evaluates its
// value in the global scope first; on error, nothing changes. Define panics
// if st is not an assignment.
func (s *Store) Define(st *Stmt) error {
	switch st.Kind {
	case VarStmt:
		if _, ok := constants[st.Name]; ok {
			return &ReservedError{Name: st.Name}
		}
		v, err := st.Body.n.eval(s.global())
		if err != nil {
			return err
		}
		return s.SetVar(st.Name, v)
	case FuncStmt:
		if err := s.checkFunc(st.Name, st.Params); err != nil {
			return err
		}
		s.setFunc(st.Name, st.Params, st.Body)
		return nil
	default:
		panic("catware: Define on non-assignment " + st.String())
	}
}

// global creates the scope for top-level evaluation.
func (s *Store) global() *scope {
	return &scope{store: s, vars: s.vars}
}

// ReservedError is an error from an attempt to assign a constant or redefine a
// built-in function.
type ReservedError struct {
	// Name is the reserved name.
	Name string
	// Func is whether the name is a built-in function rather than a constant.
	Func bool
}

func (err *ReservedError) Error() string {
	if err.Func {
		return "cannot redefine built-in function " + strconv.Quote(err.Name)
	}
	return "cannot assign to constant " + strconv.Quote(err.Name)
}
