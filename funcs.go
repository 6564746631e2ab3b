package catware

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a built-in function from reals to reals. Use WithFuncs to add a Func
// to a session.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. Domain errors are reported as NaN or infinities, not as
	// errors.
	Call(args []float64) float64

	// CanCall returns whether the function can be called with n arguments.
	CanCall(n int) bool
}

var builtins = map[string]Func{
	"ln":    Monadic(math.Log),
	"log2":  Monadic(math.Log2),
	"log10": Monadic(math.Log10),
	"sin":   Monadic(math.Sin),
	"asin":  Monadic(math.Asin),
	"sinh":  Monadic(math.Sinh),
	"asinh": Monadic(math.Asinh),
	"cos":   Monadic(math.Cos),
	"acos":  Monadic(math.Acos),
	"cosh":  Monadic(math.Cosh),
	"acosh": Monadic(math.Acosh),
	"tan":   Monadic(math.Tan),
	"atan":  Monadic(math.Atan),
	"tanh":  Monadic(math.Tanh),
	"atanh": Monadic(math.Atanh),
	"sqrt":  Monadic(math.Sqrt),
	"cbrt":  Monadic(math.Cbrt),
	"abs":   Monadic(math.Abs),

	"nrt": Dyadic(func(a, b float64) float64 {
		return math.Pow(a, 1/b)
	}),
}

// constants are the reserved variable names. They are computed once at a
// precision above float64's so that rounding gives the nearest float64.
var constants = map[string]float64{
	"pi":  constant(bigfloat.Pi),
	"tau": constant(bigfloat.Pi) * 2,
	"e": constant(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

func constant(f func(out *big.Float) *big.Float) float64 {
	r, _ := f(new(big.Float).SetPrec(64)).Float64()
	return r
}

// PlotFunc is the name of the plot directive.
const PlotFunc = "plot"

// Builtins returns the names of the built-in functions in sorted order.
func Builtins() []string {
	v := make([]string, 0, len(builtins))
	for k := range builtins {
		v = append(v, k)
	}
	sortstrs(v)
	return v
}

// Constants returns the names of the reserved constants in sorted order.
func Constants() []string {
	v := make([]string, 0, len(constants))
	for k := range constants {
		v = append(v, k)
	}
	sortstrs(v)
	return v
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(args []float64) float64 {
	return m.f(args[0])
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type dyadic struct {
	f func(a, b float64) float64
}

func (d dyadic) Call(args []float64) float64 {
	return d.f(args[0], args[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(a, b float64) float64) Func {
	return dyadic{f}
}

// wantArgs finds the smallest argument count up to 16 a Func accepts, or -1.
func wantArgs(fn Func) int {
	for n := 0; n <= 16; n++ {
		if fn.CanCall(n) {
			return n
		}
	}
	return -1
}

// Function is a user-defined function.
type Function struct {
	// Name is the name the function was defined with.
	Name string
	// Params is the list of parameter names. If a name appears more than
	// once, the rightmost argument is bound to it.
	Params []string

	body *Expr
}

// Body returns the source text of the function body.
func (f *Function) Body() string {
	return f.body.src
}

// String formats the function as the definition that created it.
func (f *Function) String() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ") = " + f.body.src
}

// call evaluates the function body in a scope containing only the parameters.
// Constants stay visible.
// Deep recursion through user functions is bounded only by the goroutine
// stack.
func (f *Function) call(s *Store, args []float64) (float64, error) {
	if len(args) != len(f.Params) {
		return 0, &ArityError{Func: f.Name, Len: len(args), Want: len(f.Params)}
	}
	vars := make(map[string]float64, len(f.Params))
	for i, p := range f.Params {
		vars[p] = args[i]
	}
	return f.body.n.eval(&scope{store: s, vars: vars})
}

// call resolves and invokes a call node. User functions take precedence over
// built-ins and functions added with WithFuncs, which take precedence over
// plot. Arguments are evaluated left to
// right before the call.
func (sc *scope) call(n *node) (float64, error) {
	uf := sc.store.funcs[n.name]
	bf := sc.store.builtin(n.name)
	if uf == nil && bf == nil && n.name == PlotFunc {
		// The directive is only meaningful as a whole statement.
		return 0, &NonNumericError{Func: n.name}
	}
	args := make([]float64, 0, 2)
	for l := n.right; l != nil; l = l.right {
		v, err := l.left.eval(sc)
		if err != nil {
			return 0, err
		}
		args = append(args, v)
	}
	switch {
	case uf != nil:
		return uf.call(sc.store, args)
	case bf != nil:
		if !bf.CanCall(len(args)) {
			return 0, &ArityError{Func: n.name, Len: len(args), Want: wantArgs(bf)}
		}
		return bf.Call(args), nil
	default:
		return 0, &FuncError{Name: n.name}
	}
}

// ArityError is an error indicating a function call with the wrong number of
// arguments.
type ArityError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// Want is the number of arguments the function takes, or -1 if no small
	// count works.
	Want int
}

func (err *ArityError) Error() string {
	if err.Want < 0 {
		return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
	}
	return "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments (want " + strconv.Itoa(err.Want) + ")"
}

// FuncError is an error from a call to a function that is neither defined nor
// built in.
type FuncError struct {
	// Name is the name that was called.
	Name string
}

func (err *FuncError) Error() string {
	return "undefined function: " + strconv.Quote(err.Name)
}

// NonNumericError is an error from using something that has no value, namely
// the plot directive, inside an expression.
type NonNumericError struct {
	// Func is the directive name.
	Func string
}

func (err *NonNumericError) Error() string {
	return err.Func + " has no value and must be a whole statement"
}
