package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/catware"
)

func TestCommand(t *testing.T) {
	s, b := newSession("tsv", catware.Resolution(2))
	if !s.run(strings.NewReader("a = 1; f(t) = t+1")) {
		t.Fatal(b.String())
	}
	cases := []struct {
		line string
		out  string
		quit bool
	}{
		{":vars", "a = 1\ne = 2.718281828459045\npi = 3.141592653589793\ntau = 6.283185307179586\n", false},
		{":funcs", "f(t) = t+1\n", false},
		{":points", "nothing plotted\n", false},
		{":view", "viewport [-10, 10]\n", false},
		{":view 0 4", "", false},
		{":view", "viewport [0, 4]\n", false},
		{":view 1,0", "invalid viewport [1, 0]\n", false},
		{":view 1", "viewport needs two bounds, got \"1\"\n", false},
		{":bogus", "unknown command :bogus. Type :help for help.\n", false},
		{":quit", "", true},
	}
	for _, c := range cases {
		b.Reset()
		if quit := s.command(c.line); quit != c.quit {
			t.Errorf("%q: want quit=%t, got %t", c.line, c.quit, quit)
		}
		if diff := cmp.Diff(c.out, b.String()); diff != "" {
			t.Errorf("%q: wrong output (-want +got):\n%s", c.line, diff)
		}
	}
}

func TestCommandPoints(t *testing.T) {
	s, b := newSession("none", catware.Resolution(2), catware.Viewport(0, 2))
	if !s.run(strings.NewReader("plot(x)")) {
		t.Fatal(b.String())
	}
	b.Reset()
	s.command(":points")
	if diff := cmp.Diff("0\t0\n1\t1\n", b.String()); diff != "" {
		t.Errorf("wrong points (-want +got):\n%s", diff)
	}
	b.Reset()
	s.command(":points csv")
	if diff := cmp.Diff("unknown point format \"csv\"\n", b.String()); diff != "" {
		t.Errorf("wrong output (-want +got):\n%s", diff)
	}
	// Changing the viewport prints nothing with the none format.
	b.Reset()
	s.command(":view -2, 0")
	if b.Len() != 0 {
		t.Errorf("unexpected output %q", b.String())
	}
	if got := s.c.Points(); got[0].X != -2 {
		t.Errorf("view did not resample: %v", got)
	}
}

func TestComplete(t *testing.T) {
	s, _ := newSession("none")
	if !s.run(strings.NewReader("cost = 3; sq(a) = a*a")) {
		t.Fatal("setup failed")
	}
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"1 + ", nil},
		{"si", []string{"sin", "sinh"}},
		{"1 + co", []string{"1 + cos", "1 + cosh", "1 + cost"}},
		{"s", []string{"sin", "sinh", "sq", "sqrt"}},
		{"pl", []string{"plot"}},
		{":v", []string{":vars", ":view"}},
		{"2×si", []string{"2×sin", "2×sinh"}},
		{"8÷sq", []string{"8÷sq", "8÷sqrt"}},
		{"2*si", []string{"2*sin", "2*sinh"}},
		{"zz", nil},
	}
	for _, c := range cases {
		if diff := cmp.Diff(c.want, s.complete(c.line)); diff != "" {
			t.Errorf("%q: wrong completions (-want +got):\n%s", c.line, diff)
		}
	}
}
