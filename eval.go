package catware

import (
	"math"
	"strconv"
)

// scope is the set of names visible while evaluating an expression. It is not
// safe to use a scope concurrently.
type scope struct {
	// store provides user functions.
	store *Store
	// vars are the variables in scope. In the global scope, this is the
	// store's own table. In a function call, it holds only the parameters.
	vars map[string]float64
}

// lookup finds a variable. Constants are visible in every scope.
func (sc *scope) lookup(name string) (float64, bool) {
	if v, ok := sc.vars[name]; ok {
		return v, true
	}
	v, ok := constants[name]
	return v, ok
}

// eval computes the node's value.
func (n *node) eval(sc *scope) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeName:
		v, ok := sc.lookup(n.name)
		if !ok {
			return 0, &NameError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		return sc.call(n)
	case nodeArg:
		panic("catware: eval on nodeArg")
	case nodeNeg:
		v, err := n.left.eval(sc)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeNop:
		return n.left.eval(sc)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(sc)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(sc)
		if err != nil {
			return 0, err
		}
		switch n.kind {
		case nodeAdd:
			return l + r, nil
		case nodeSub:
			return l - r, nil
		case nodeMul:
			return l * r, nil
		case nodeDiv:
			// Division by zero gives an infinity or NaN, not an error.
			return l / r, nil
		default:
			return math.Pow(l, r), nil
		}
	default:
		panic("catware: invalid parse node " + n.kind.String())
	}
}

// Eval evaluates the expression with vars as the only variables in scope,
// besides the constants. Calls resolve against the user functions in s, which
// may be nil to allow only built-in functions.
func (e *Expr) Eval(s *Store, vars map[string]float64) (float64, error) {
	if s == nil {
		s = &Store{}
	}
	return e.n.eval(&scope{store: s, vars: vars})
}

// NameError is an error from a lookup for a variable that is missing from the
// evaluation scope.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}
