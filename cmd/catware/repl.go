package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/catware"
)

const replHelp = `Enter statements to evaluate them:
  2 + 3*4          evaluate an expression
  r = 2            assign a variable
  area(r) = pi*r^2 define a function
  plot(sin(x))     plot an expression of x
Statements on one line may be separated by ;.

Commands:
  :vars            list variables
  :funcs           list user-defined functions
  :points          print the sampled plot points
  :view lo hi      set the plot viewport
  :help            show this message
  :quit            exit`

// repl runs an interactive session on the terminal until EOF or :quit.
func (s *session) repl() {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out, err)
			}
			fmt.Fprintln(s.out)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if s.command(line) {
				return
			}
			continue
		}
		s.run(strings.NewReader(line))
	}
}

// command runs a REPL command and reports whether the session should end.
func (s *session) command(line string) (quit bool) {
	f := strings.Fields(line)
	switch f[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, replHelp)
	case ":vars":
		st := s.c.Store()
		for _, name := range st.Vars() {
			v, _ := st.Var(name)
			fmt.Fprintf(s.out, "%s = "+s.verb, name, v)
		}
	case ":funcs":
		st := s.c.Store()
		for _, name := range st.Funcs() {
			fn, _ := st.Func(name)
			fmt.Fprintln(s.out, fn)
		}
	case ":points":
		if s.c.PlotTarget() == nil {
			fmt.Fprintln(s.out, "nothing plotted")
			break
		}
		format := s.points
		if len(f) > 1 {
			format = f[1]
		}
		if format == "none" {
			format = "tsv"
		}
		if !validPointFormat(format) {
			fmt.Fprintf(s.out, "unknown point format %q\n", format)
			break
		}
		if err := writePoints(s.out, format, s.c.Points()); err != nil {
			fmt.Fprintln(s.out, err)
		}
	case ":view":
		if len(f) == 1 {
			lo, hi := s.c.Viewport()
			fmt.Fprintf(s.out, "viewport [%g, %g]\n", lo, hi)
			break
		}
		lo, hi, err := parseView(strings.TrimSpace(strings.TrimPrefix(line, ":view")))
		if err != nil {
			fmt.Fprintln(s.out, err)
			break
		}
		if err := s.c.NotifyViewport(lo, hi); err != nil {
			fmt.Fprintln(s.out, err)
			break
		}
		if s.c.PlotTarget() != nil {
			if err := writePoints(s.out, s.points, s.c.Points()); err != nil {
				fmt.Fprintln(s.out, err)
			}
		}
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for help.\n", f[0])
	}
	return false
}

// complete suggests completions for the name at the end of line.
func (s *session) complete(line string) []string {
	i := strings.LastIndexFunc(line, func(r rune) bool {
		return !isNameRune(r)
	})
	// The separator may be a multibyte operator like ×.
	j := 0
	if i >= 0 {
		_, sz := utf8.DecodeRuneInString(line[i:])
		j = i + sz
	}
	head, word := line[:j], line[j:]
	if word == "" {
		return nil
	}
	var names []string
	if head == "" && strings.HasPrefix(word, ":") {
		names = []string{":vars", ":funcs", ":points", ":view", ":help", ":quit"}
	} else {
		st := s.c.Store()
		names = append(names, st.Vars()...)
		names = append(names, st.Funcs()...)
		names = append(names, catware.Builtins()...)
		names = append(names, catware.PlotFunc)
	}
	var r []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, word) && !seen[name] {
			seen[name] = true
			r = append(r, head+name)
		}
	}
	sort.Strings(r)
	return r
}

func isNameRune(r rune) bool {
	return r == '_' || r == ':' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
