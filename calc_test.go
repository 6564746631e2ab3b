package catware_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zephyrtronium/catware"
)

func TestEvaluate(t *testing.T) {
	c := catware.New()
	cases := []struct {
		src  string
		want catware.Result
		err  bool
	}{
		{"2 + 3 * 4", catware.Result{Kind: catware.Number, Value: 14}, false},
		{"y = 3", catware.Result{Kind: catware.Assigned, Name: "y"}, false},
		{"y^2", catware.Result{Kind: catware.Number, Value: 9}, false},
		{"double(t) = 2*t", catware.Result{Kind: catware.Assigned, Name: "double"}, false},
		{"double(y)", catware.Result{Kind: catware.Number, Value: 6}, false},
		{"y = double(y) + 1", catware.Result{Kind: catware.Assigned, Name: "y"}, false},
		{"y", catware.Result{Kind: catware.Number, Value: 7}, false},
		{"pi = 4", catware.Result{}, true},
		{"pi", catware.Result{Kind: catware.Number, Value: math.Pi}, false},
		{"z", catware.Result{}, true},
		{"2 2", catware.Result{}, true},
		{"", catware.Result{}, true},
	}
	for _, tc := range cases {
		r, err := c.Evaluate(tc.src)
		if (err != nil) != tc.err {
			t.Errorf("%q: wrong error %v", tc.src, err)
		}
		if diff := cmp.Diff(tc.want, r); diff != "" {
			t.Errorf("%q: wrong result (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestResultString(t *testing.T) {
	cases := []struct {
		r    catware.Result
		want string
	}{
		{catware.Result{Kind: catware.Number, Value: 0.1}, "0.1"},
		{catware.Result{Kind: catware.Number, Value: math.Inf(-1)}, "-Inf"},
		{catware.Result{Kind: catware.Number, Value: 1e21}, "1e+21"},
		{catware.Result{Kind: catware.Assigned, Name: "f"}, "f assigned"},
		{catware.Result{Kind: catware.PlotUpdated, Name: "x^2"}, "plotting x^2"},
		{catware.Result{Kind: 9}, "ResultKind(9)"},
	}
	for _, c := range cases {
		if got := c.r.String(); got != c.want {
			t.Errorf("%#v formatted as %q, want %q", c.r, got, c.want)
		}
	}
}

func TestOptions(t *testing.T) {
	s := catware.NewStore()
	s.SetVar("k", 5)
	c := catware.New(
		catware.WithStore(s),
		catware.SetVar("x", 2),
		catware.Resolution(4),
		catware.Viewport(0, 2),
	)
	if c.Store() != s {
		t.Error("session doesn't use the given store")
	}
	if v, _ := s.Var("x"); v != 2 {
		t.Errorf("SetVar didn't go to the given store: x = %g", v)
	}
	if lo, hi := c.Viewport(); lo != 0 || hi != 2 {
		t.Errorf("wrong viewport [%g, %g]", lo, hi)
	}
	if _, err := c.Evaluate("k = k + x"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Var("k"); v != 7 {
		t.Errorf("assignment didn't modify the given store: k = %g", v)
	}
	if _, err := c.Evaluate("plot(x)"); err != nil {
		t.Fatal(err)
	}
	want := []catware.Point{{0, 0}, {0.5, 0.5}, {1, 1}, {1.5, 1.5}}
	if diff := cmp.Diff(want, c.Points()); diff != "" {
		t.Errorf("wrong points (-want +got):\n%s", diff)
	}
	// The plot variable only exists during sampling.
	if v, _ := s.Var("x"); v != 2 {
		t.Errorf("sampling changed x to %g", v)
	}
}

func TestOptionPanics(t *testing.T) {
	cases := []struct {
		name string
		opt  catware.Option
	}{
		{"const", catware.SetVar("pi", 3)},
		{"res", catware.Resolution(0)},
		{"view", catware.Viewport(1, 1)},
		{"viewnan", catware.Viewport(math.NaN(), 1)},
		{"viewwide", catware.Viewport(-math.MaxFloat64, math.MaxFloat64)},
		{"badname", catware.SetVar("a b", 1)},
		{"func-builtin", catware.WithFuncs(map[string]catware.Func{"sin": catware.Monadic(math.Cos)})},
		{"func-const", catware.WithFuncs(map[string]catware.Func{"pi": catware.Monadic(math.Cos)})},
		{"func-plot", catware.WithFuncs(map[string]catware.Func{"plot": catware.Monadic(math.Cos)})},
		{"func-name", catware.WithFuncs(map[string]catware.Func{"2f": catware.Monadic(math.Cos)})},
		{"func-nil", catware.WithFuncs(map[string]catware.Func{"f": nil})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("New didn't panic")
				}
			}()
			catware.New(c.opt)
		})
	}
}

func TestEvalReader(t *testing.T) {
	c := catware.New()
	src := strings.NewReader("a = 2; b(t) = t + a; a * 10")
	kinds := []catware.ResultKind{catware.Assigned, catware.Assigned, catware.Number}
	for i, k := range kinds {
		st, r, err := c.EvalReader(src, catware.StopOn(';'))
		if err != nil {
			t.Fatalf("statement %d failed: %v", i, err)
		}
		if st == nil {
			t.Fatalf("statement %d is nil", i)
		}
		if r.Kind != k {
			t.Errorf("statement %d %v has kind %v, want %v", i, st, r.Kind, k)
		}
	}
	_, _, err := c.EvalReader(src, catware.StopOn(';'))
	var ee *catware.EmptyExpressionError
	if !errors.As(err, &ee) {
		t.Errorf("reading past the end gave %#v", err)
	}
	if v, _ := c.Store().Var("a"); v != 2 {
		t.Errorf("a = %g", v)
	}
	// b refers to a, which is global, so calling it fails.
	var ne *catware.NameError
	if _, err := c.Evaluate("b(1)"); !errors.As(err, &ne) || ne.Name != "a" {
		t.Errorf("b(1) gave %#v", err)
	}
}

func TestDescribe(t *testing.T) {
	c := catware.New()
	for _, line := range []string{"r = 1.5", "sq(a) = a*a", "plot(sq(x))"} {
		if _, err := c.Evaluate(line); err != nil {
			t.Fatalf("%q failed: %v", line, err)
		}
	}
	cases := []struct {
		name string
		want string
		ok   bool
	}{
		{"r", "r = 1.5", true},
		{"sq", "sq(a) = a*a", true},
		{"pi", "pi = 3.141592653589793", true},
		{"sin", "sin is a built-in function", true},
		{"plot", "plot(sq(x))", true},
		{"nope", "", false},
	}
	for _, tc := range cases {
		got, ok := c.Describe(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("describing %s: want %q, %t; got %q, %t", tc.name, tc.want, tc.ok, got, ok)
		}
	}
}

func TestUserPlotShadowsDirective(t *testing.T) {
	c := catware.New()
	if _, err := c.Evaluate("plot(a) = a + 1"); err != nil {
		t.Fatal(err)
	}
	r, err := c.Evaluate("plot(2)")
	if err != nil {
		t.Fatal(err)
	}
	if r.Kind != catware.Number || r.Value != 3 {
		t.Errorf("user plot gave %v", r)
	}
	if c.PlotTarget() != nil {
		t.Errorf("plot target set to %v", c.PlotTarget())
	}
	r, err = c.Evaluate("plot(2) * 2")
	if err != nil || r.Value != 6 {
		t.Errorf("nested user plot gave %v, %v", r, err)
	}
}
