package catware

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type stopopt struct {
	semi bool
	ws   string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of variable names that have been seen in the
	// expression currently being parsed.
	names map[string]bool
	// stop is a string containing the runes that end the statement.
	stop string
	// hard is the subset of stop that ends the statement even where a term is
	// expected.
	hard string
}

// StopOn tells the parser to treat a list of characters as ending the
// statement, so that several statements can be read from one source. Each rune
// must be a semicolon or whitespace codepoint. Whitespace does not end a
// statement where a term is expected, e.g. at the beginning of a statement or
// following an operator, open bracket, comma, or =. Semicolons always end it.
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var o stopopt
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		switch {
		case r == ';':
			o.semi = true
		case unicode.IsSpace(r):
			if have(r) {
				continue
			}
			v = append(v, r)
		default:
			panic("catware: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = string(v)
	return &o
}

func (o *stopopt) parseOption(p parsectx) parsectx {
	p.stop = o.ws
	p.hard = ""
	if o.semi {
		p.stop += ";"
		p.hard = ";"
	}
	return p
}
