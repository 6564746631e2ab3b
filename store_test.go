package catware_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zephyrtronium/catware"
)

func TestStoreReserved(t *testing.T) {
	s := catware.NewStore()
	for _, name := range catware.Constants() {
		before, _ := s.Var(name)
		err := s.SetVar(name, 4)
		var re *catware.ReservedError
		if !errors.As(err, &re) || re.Name != name || re.Func {
			t.Errorf("setting %s gave %#v", name, err)
		}
		if after, _ := s.Var(name); after != before {
			t.Errorf("%s changed from %g to %g", name, before, after)
		}
	}
	cases := []struct {
		name   string
		fn     string
		params []string
		err    *catware.ReservedError
	}{
		{"builtin", "sqrt", []string{"a"}, &catware.ReservedError{Name: "sqrt", Func: true}},
		{"nrt", "nrt", []string{"a", "b"}, &catware.ReservedError{Name: "nrt", Func: true}},
		{"param", "f", []string{"a", "pi"}, &catware.ReservedError{Name: "pi"}},
		{"constname", "e", []string{"a"}, nil},
		{"plot", "plot", []string{"a"}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := catware.NewStore()
			err := s.SetFunc(c.fn, c.params, "1")
			if c.err == nil {
				if err != nil {
					t.Errorf("defining %s failed: %v", c.fn, err)
				}
				return
			}
			if diff := cmp.Diff(error(c.err), err); diff != "" {
				t.Errorf("wrong error (-want +got):\n%s", diff)
			}
			if _, ok := s.Func(c.fn); ok {
				t.Errorf("%s was defined anyway", c.fn)
			}
		})
	}
}

func TestStoreIdents(t *testing.T) {
	vars := []struct {
		name string
		err  error
	}{
		{"a b", &catware.IdentError{Name: "a b", Col: 2}},
		{"1x", &catware.IdentError{Name: "1x", Col: 1}},
		{"", &catware.IdentError{Name: "", Col: 1}},
		{"x+", &catware.IdentError{Name: "x+", Col: 2}},
		{"θ_2", nil},
		{"h0", nil},
	}
	for _, c := range vars {
		s := catware.NewStore()
		err := s.SetVar(c.name, 1)
		if diff := cmp.Diff(c.err, err); diff != "" {
			t.Errorf("SetVar(%q): wrong error (-want +got):\n%s", c.name, diff)
		}
		if _, ok := s.Var(c.name); ok != (c.err == nil) {
			t.Errorf("SetVar(%q): defined is %t", c.name, ok)
		}
	}
	funcs := []struct {
		name   string
		fn     string
		params []string
		err    error
	}{
		{"name", "1x", []string{"a"}, &catware.IdentError{Name: "1x", Col: 1}},
		{"param", "f", []string{"a", "q r"}, &catware.IdentError{Name: "q r", Col: 2}},
		{"empty-param", "f", []string{""}, &catware.IdentError{Name: "", Col: 1}},
		{"unicode", "φ", []string{"α"}, nil},
	}
	for _, c := range funcs {
		t.Run(c.name, func(t *testing.T) {
			s := catware.NewStore()
			err := s.SetFunc(c.fn, c.params, "1")
			if diff := cmp.Diff(c.err, err); diff != "" {
				t.Errorf("wrong error (-want +got):\n%s", diff)
			}
			if _, ok := s.Func(c.fn); ok != (c.err == nil) {
				t.Errorf("%q defined is %t", c.fn, ok)
			}
		})
	}
}

func TestStoreSetFuncBadBody(t *testing.T) {
	s := catware.NewStore()
	if err := s.SetFunc("f", []string{"a"}, "a +"); err == nil {
		t.Error("incomplete body was accepted")
	}
	if err := s.SetFunc("f", []string{"a"}, "b = a"); err == nil {
		t.Error("assignment body was accepted")
	}
	if _, ok := s.Func("f"); ok {
		t.Error("f was defined")
	}
}

func TestStoreRedefine(t *testing.T) {
	s := catware.NewStore()
	if err := s.SetFunc("f", []string{"a", "b"}, "a + b"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFunc("f", []string{"a"}, "a * 3"); err != nil {
		t.Fatal(err)
	}
	f, _ := s.Func("f")
	if diff := cmp.Diff([]string{"a"}, f.Params); diff != "" {
		t.Errorf("redefinition kept old params (-want +got):\n%s", diff)
	}
	if f.Body() != "a * 3" {
		t.Errorf("redefinition kept old body %q", f.Body())
	}
}

func TestStoreNames(t *testing.T) {
	s := catware.NewStore()
	s.SetVar("y", 1)
	s.SetVar("a", 2)
	s.SetFunc("g", nil, "1")
	s.SetFunc("b", []string{"x"}, "x")
	if diff := cmp.Diff([]string{"a", "e", "pi", "tau", "y"}, s.Vars()); diff != "" {
		t.Errorf("wrong vars (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "g"}, s.Funcs()); diff != "" {
		t.Errorf("wrong funcs (-want +got):\n%s", diff)
	}
}

func TestStoreClone(t *testing.T) {
	s := catware.NewStore()
	s.SetVar("x", 1)
	s.SetFunc("f", []string{"a"}, "a")
	n := s.Clone()
	n.SetVar("x", 2)
	n.SetVar("y", 3)
	n.SetFunc("g", nil, "0")
	if v, _ := s.Var("x"); v != 1 {
		t.Errorf("clone changed original x to %g", v)
	}
	if _, ok := s.Var("y"); ok {
		t.Error("clone added y to original")
	}
	if _, ok := s.Func("g"); ok {
		t.Error("clone added g to original")
	}
	if _, ok := n.Func("f"); !ok {
		t.Error("clone lost f")
	}
}

func TestStoreDefine(t *testing.T) {
	s := catware.NewStore()
	define := func(src string) error {
		t.Helper()
		st, err := catware.ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		return s.Define(st)
	}
	if err := define("x = 2"); err != nil {
		t.Fatal(err)
	}
	if err := define("x = x * 3"); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Var("x"); v != 6 {
		t.Errorf("x should be 6, got %g", v)
	}
	var ne *catware.NameError
	if err := define("x = nope"); !errors.As(err, &ne) {
		t.Errorf("undefined name gave %#v", err)
	}
	if v, _ := s.Var("x"); v != 6 {
		t.Errorf("failed assignment changed x to %g", v)
	}
	var re *catware.ReservedError
	if err := define("tau = 6"); !errors.As(err, &re) {
		t.Errorf("assigning tau gave %#v", err)
	}
	if err := define("tau = nope"); !errors.As(err, &re) {
		t.Errorf("assigning tau an undefined value gave %#v", err)
	}
	if err := define("sq(a) = a^2"); err != nil {
		t.Fatal(err)
	}
	if f, ok := s.Func("sq"); !ok || f.Body() != "a^2" {
		t.Errorf("sq defined as %v", f)
	}
	// Bodies may refer to functions that do not exist yet.
	if err := define("later(a) = missing(a)"); err != nil {
		t.Errorf("forward reference failed: %v", err)
	}
}
