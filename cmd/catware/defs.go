package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/catware"
)

// defs is the contents of a definitions file. Files ending in .toml are TOML;
// anything else is YAML:
//
//	vars:
//	  h0: 100
//	funcs:
//	  - "fall(t) = 4.9*t^2"
//	view: [0, 4.5]
//	plot: fall(x)
type defs struct {
	Vars  map[string]float64 `yaml:"vars" toml:"vars"`
	Funcs []string           `yaml:"funcs" toml:"funcs"`
	View  []float64          `yaml:"view" toml:"view"`
	Plot  string             `yaml:"plot" toml:"plot"`
}

// readDefs decodes a definitions file in YAML, or in TOML if isTOML is set.
// Unknown keys are errors.
func readDefs(r io.Reader, isTOML bool) (*defs, error) {
	var d defs
	if isTOML {
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, err
		}
		if un := md.Undecoded(); len(un) != 0 {
			return nil, fmt.Errorf("unknown key %s", un[0])
		}
		return &d, nil
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return nil, err
	}
	return &d, nil
}

// apply loads the definitions into c: variables in name order, then functions
// in file order, then the viewport, then the plot target.
func (d *defs) apply(c *catware.Calc) error {
	names := make([]string, 0, len(d.Vars))
	for name := range d.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Store().SetVar(name, d.Vars[name]); err != nil {
			return fmt.Errorf("vars: %w", err)
		}
	}
	for _, src := range d.Funcs {
		st, err := catware.ParseString(src)
		if err != nil {
			return fmt.Errorf("funcs: %q: %w", src, err)
		}
		if st.Kind != catware.FuncStmt {
			return fmt.Errorf("funcs: %q is not a function definition", src)
		}
		if err := c.Store().Define(st); err != nil {
			return fmt.Errorf("funcs: %q: %w", src, err)
		}
	}
	if d.View != nil {
		if len(d.View) != 2 {
			return fmt.Errorf("view: need [lo, hi], got %v", d.View)
		}
		if err := c.NotifyViewport(d.View[0], d.View[1]); err != nil {
			return fmt.Errorf("view: %w", err)
		}
	}
	if d.Plot != "" {
		if _, err := catware.ParseExpr(d.Plot); err != nil {
			return fmt.Errorf("plot: %q: %w", d.Plot, err)
		}
		r, err := c.Evaluate(catware.PlotFunc + "(" + d.Plot + ")")
		if r.Kind != catware.PlotUpdated {
			return fmt.Errorf("plot: %s is a user function", catware.PlotFunc)
		}
		if err != nil {
			return fmt.Errorf("plot: %q: %w", d.Plot, err)
		}
	}
	return nil
}

// loadDefs reads the definitions file at path and applies it to c.
func loadDefs(c *catware.Calc, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	d, err := readDefs(f, strings.EqualFold(filepath.Ext(path), ".toml"))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := d.apply(c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func validPointFormat(format string) bool {
	switch format {
	case "none", "tsv", "yaml":
		return true
	default:
		return false
	}
}

// yamlPoint is the YAML form of a sampled point.
type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// writePoints writes sampled points in the given format.
func writePoints(w io.Writer, format string, pts []catware.Point) error {
	switch format {
	case "none":
		return nil
	case "tsv":
		for _, p := range pts {
			if _, err := fmt.Fprintf(w, "%g\t%g\n", p.X, p.Y); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		v := make([]yamlPoint, len(pts))
		for i, p := range pts {
			v[i] = yamlPoint{X: p.X, Y: p.Y}
		}
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown point format %q", format)
	}
}
