package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"

	"github.com/zephyrtronium/catware"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		defsname     string
		view, points string
		with         [][2]string
		echo         bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one statement per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.StringVar(&defsname, "defs", "", "YAML file of definitions to load first")
	flag.StringVar(&view, "view", "", "initial plot viewport as lo,hi")
	flag.StringVar(&points, "points", "none", "print sampled points after each plot update: none, tsv, or yaml")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.Parse()

	if !validPointFormat(points) {
		log.Fatalf("unknown point format %q", points)
	}
	c := catware.New()
	if view != "" {
		lo, hi, err := parseView(view)
		if err != nil {
			log.Fatalf("-view: %v", err)
		}
		if err := c.NotifyViewport(lo, hi); err != nil {
			log.Fatalf("-view: %v", err)
		}
	}
	if defsname != "" {
		if err := loadDefs(c, defsname); err != nil {
			log.Fatal(err)
		}
	}
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		ex, err := catware.ParseExpr(vl)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		r, err := ex.Eval(c.Store(), nil)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		if err := c.Store().SetVar(nm, r); err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
	}

	s := &session{
		c:      c,
		out:    os.Stdout,
		verb:   verb + "\n",
		points: points,
		echo:   echo,
	}
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f == os.Stdin && isatty.IsTerminal(f.Fd()) {
		s.repl()
		return
	}
	ok := true
	if f != nil {
		ok = s.script(bufio.NewReader(f))
		f.Close()
	}
	for _, arg := range flag.Args() {
		ok = s.run(strings.NewReader(arg)) && ok
	}
	if !ok {
		os.Exit(1)
	}
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

// session prints the outcomes of statements run in a calculator.
type session struct {
	c      *catware.Calc
	out    io.Writer
	verb   string
	points string
	echo   bool
}

// script runs each line of src as a sequence of statements. Blank lines and
// lines starting with # are skipped. It returns false if any statement
// failed.
func (s *session) script(src io.Reader) bool {
	ok := true
	sc := bufio.NewScanner(src)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		ok = s.run(strings.NewReader(line)) && ok
	}
	if err := sc.Err(); err != nil {
		log.Print(err)
		return false
	}
	return ok
}

// run executes the ;-separated statements in src. A parse error abandons the
// rest of src, since there is no way to know where the next statement starts.
func (s *session) run(src io.RuneScanner) bool {
	ok := true
	for {
		// First check whether we're done with the input.
		if !more(src) {
			return ok
		}
		st, err := catware.Parse(src, catware.StopOn(';'))
		if err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		ok = s.exec(st) && ok
	}
}

// more skips whitespace and reports whether any input remains.
func more(src io.RuneScanner) bool {
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			return false
		}
		if !unicode.IsSpace(r) {
			src.UnreadRune()
			return true
		}
	}
}

// exec executes one parsed statement and prints its outcome.
func (s *session) exec(st *catware.Stmt) bool {
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", st)
	}
	r, err := s.c.Exec(st)
	switch {
	case r.Kind == catware.PlotUpdated:
		fmt.Fprintln(s.out, r)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return false
		}
		if err := writePoints(s.out, s.points, s.c.Points()); err != nil {
			log.Print(err)
		}
		return true
	case err != nil:
		fmt.Fprintln(s.out, err)
		return false
	case r.Kind == catware.Number:
		fmt.Fprintf(s.out, s.verb, r.Value)
	default:
		fmt.Fprintln(s.out, r)
	}
	return true
}

// parseView parses a viewport given as two expressions separated by a comma
// or, if there is no comma, by whitespace.
func parseView(text string) (lo, hi float64, err error) {
	var f []string
	if strings.Contains(text, ",") {
		f = strings.Split(text, ",")
	} else {
		f = strings.Fields(text)
	}
	if len(f) != 2 {
		return 0, 0, fmt.Errorf("viewport needs two bounds, got %q", text)
	}
	var v [2]float64
	for i, t := range f {
		ex, err := catware.ParseExpr(t)
		if err != nil {
			return 0, 0, fmt.Errorf("viewport bound %q: %w", strings.TrimSpace(t), err)
		}
		v[i], err = ex.Eval(nil, nil)
		if err != nil {
			return 0, 0, fmt.Errorf("viewport bound %q: %w", strings.TrimSpace(t), err)
		}
	}
	return v[0], v[1], nil
}
