package catware

import (
	"io"
	"strconv"
)

// Calc is a calculator session. It owns a binding store and a plot target
// for its whole lifetime; to reset them, create a new Calc. A Calc is not safe
// for concurrent use.
type Calc struct {
	store *Store
	plot  plotter
}

// Option is an option used when creating a session.
type Option interface {
	calcOption()
}

type (
	storeopt struct{ s *Store }
	varopt   struct {
		name string
		val  float64
	}
	resopt   int
	viewopt  struct{ lo, hi float64 }
	funcsopt map[string]Func
)

func (storeopt) calcOption() {}
func (varopt) calcOption()   {}
func (resopt) calcOption()   {}
func (viewopt) calcOption()  {}
func (funcsopt) calcOption() {}

// WithStore makes the session use s as its binding store instead of a new
// one. Assignments in the session modify s.
func WithStore(s *Store) Option {
	return storeopt{s}
}

// SetVar sets the value of a variable in the session's store. It panics when
// the session is created if name is a constant.
func SetVar(name string, val float64) Option {
	return varopt{name, val}
}

// Resolution sets the number of samples per plot. It panics when the session
// is created if n is not positive.
func Resolution(n int) Option {
	return resopt(n)
}

// Viewport sets the initial visible x range. It panics when the session is
// created if the range is invalid.
func Viewport(lo, hi float64) Option {
	return viewopt{lo, hi}
}

// WithFuncs adds functions that act as built-ins in the session's store.
// Statements cannot redefine them, but a user function already in the store
// under the same name shadows it. It panics when the session is created if a
// name is not an identifier, is a constant, built-in function, or plot, or
// maps to nil.
func WithFuncs(fns map[string]Func) Option {
	return funcsopt(fns)
}

// New creates a session.
func New(opts ...Option) *Calc {
	c := Calc{
		plot: plotter{res: DefaultResolution, lo: DefaultLo, hi: DefaultHi},
	}
	// Find the store first so that variables go into it. Loop backward so we
	// use the last one.
	for i := len(opts) - 1; i >= 0; i-- {
		if s, ok := opts[i].(storeopt); ok {
			c.store = s.s
			break
		}
	}
	if c.store == nil {
		c.store = NewStore()
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case storeopt:
			// Already done. Do nothing.
		case varopt:
			if err := c.store.SetVar(opt.name, opt.val); err != nil {
				panic("catware: " + err.Error())
			}
		case resopt:
			if opt <= 0 {
				panic("catware: resolution must be positive, not " + strconv.Itoa(int(opt)))
			}
			c.plot.res = int(opt)
		case viewopt:
			if !viewable(opt.lo, opt.hi) {
				panic("catware: " + (&ViewportError{Lo: opt.lo, Hi: opt.hi}).Error())
			}
			c.plot.lo, c.plot.hi = opt.lo, opt.hi
		case funcsopt:
			for name, fn := range opt {
				if fn == nil {
					panic("catware: nil function " + strconv.Quote(name))
				}
				if err := c.store.addFunc(name, fn); err != nil {
					panic("catware: " + err.Error())
				}
			}
		default:
			panic("catware: unknown option type")
		}
	}
	return &c
}

// Store returns the session's binding store.
func (c *Calc) Store() *Store {
	return c.store
}

// ResultKind is the kind of outcome of one statement.
type ResultKind int8

const (
	// Number is the outcome of an expression. Result.Value holds its value.
	Number ResultKind = iota
	// Assigned is the outcome of an assignment or function definition.
	// Result.Name holds the assigned name.
	Assigned
	// PlotUpdated is the outcome of the plot directive. Result.Name holds the
	// source text of the new plot target.
	PlotUpdated
)

func (k ResultKind) String() string {
	switch k {
	case Number:
		return "Number"
	case Assigned:
		return "Assigned"
	case PlotUpdated:
		return "PlotUpdated"
	default:
		return "ResultKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Result is the outcome of evaluating one statement. Only a Number has a
// value.
type Result struct {
	Kind  ResultKind
	Value float64
	Name  string
}

func (r Result) String() string {
	switch r.Kind {
	case Number:
		return strconv.FormatFloat(r.Value, 'g', -1, 64)
	case Assigned:
		return r.Name + " assigned"
	case PlotUpdated:
		return "plotting " + r.Name
	default:
		return r.Kind.String()
	}
}

// Evaluate parses and executes one statement.
func (c *Calc) Evaluate(line string) (Result, error) {
	st, err := ParseString(line)
	if err != nil {
		return Result{}, err
	}
	return c.Exec(st)
}

// EvalReader parses and executes one statement from src.
func (c *Calc) EvalReader(src io.RuneScanner, opts ...ParseOption) (*Stmt, Result, error) {
	st, err := Parse(src, opts...)
	if err != nil {
		return nil, Result{}, err
	}
	r, err := c.Exec(st)
	return st, r, err
}

// Exec executes a parsed statement. An assignment updates the store. A call
// to plot with no user function of that name sets the plot target to the
// call's argument and samples it over the current viewport; if sampling fails,
// the target is still updated, the result is still PlotUpdated, and the error
// is returned alongside it. Any other expression is evaluated.
func (c *Calc) Exec(st *Stmt) (Result, error) {
	if st.Kind != ExprStmt {
		if err := c.store.Define(st); err != nil {
			return Result{}, err
		}
		return Result{Kind: Assigned, Name: st.Name}, nil
	}
	if n := st.Body.n; c.isPlot(n) {
		args := n.args()
		if len(args) != 1 {
			return Result{}, &ArityError{Func: PlotFunc, Len: len(args), Want: 1}
		}
		c.plot.retarget(args[0])
		r := Result{Kind: PlotUpdated, Name: args[0].src}
		return r, c.plot.sample(c.store, c.plot.lo, c.plot.hi)
	}
	v, err := st.Body.n.eval(c.store.global())
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: Number, Value: v}, nil
}

// isPlot returns whether n is a plot directive in this session.
func (c *Calc) isPlot(n *node) bool {
	if n.kind != nodeCall || n.name != PlotFunc {
		return false
	}
	_, user := c.store.funcs[PlotFunc]
	return !user
}

// Describe formats the definition of a name in the session, or returns false
// if it is not defined.
func (c *Calc) Describe(name string) (string, bool) {
	if f, ok := c.store.Func(name); ok {
		return f.String(), true
	}
	if v, ok := c.store.Var(name); ok {
		return name + " = " + strconv.FormatFloat(v, 'g', -1, 64), true
	}
	if c.store.builtin(name) != nil {
		return name + " is a built-in function", true
	}
	if name == PlotFunc && c.plot.target != nil {
		return PlotFunc + "(" + c.plot.target.src + ")", true
	}
	return "", false
}
