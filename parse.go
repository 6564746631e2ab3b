package catware

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Stmt = Assign | Define | Expr
// Assign = name '=' Expr
// Define = name '(' [ name { ',' name } ] ')' '=' Expr
// Expr = num | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be evaluated in a scope.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
	// src is the source text of the expression.
	src string
}

// StmtKind distinguishes the forms of a statement.
type StmtKind int8

const (
	// ExprStmt is a bare expression to evaluate.
	ExprStmt StmtKind = iota
	// VarStmt assigns an expression's value to a variable.
	VarStmt
	// FuncStmt defines a function.
	FuncStmt
)

// Stmt is one parsed statement.
type Stmt struct {
	Kind StmtKind
	// Name is the assigned variable or defined function. It is empty for
	// ExprStmt.
	Name string
	// Params is the parameter list of a function definition.
	Params []string
	// Body is the expression to evaluate, assign, or use as the function body.
	Body *Expr
}

// String formats the statement with its parse tree.
func (s *Stmt) String() string {
	switch s.Kind {
	case VarStmt:
		return s.Name + " = " + s.Body.String()
	case FuncStmt:
		return s.Name + "(" + strings.Join(s.Params, ", ") + ") = " + s.Body.String()
	default:
		return s.Body.String()
	}
}

// Parse parses one statement. The given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Stmt, error) {
	scan := lex(src)
	p := parsectx{
		names: make(map[string]bool),
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if tok.kind == tokenAssign {
		return parseassign(scan, &p, n, tok)
	}
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	return &Stmt{Kind: ExprStmt, Body: p.expr(n, scan.text(0, tok.off))}, nil
}

// ParseString is a shortcut to parse a statement from a string.
func ParseString(src string, opts ...ParseOption) (*Stmt, error) {
	return Parse(strings.NewReader(src), opts...)
}

// ParseExpr parses a string which must be an expression rather than an
// assignment.
func ParseExpr(src string) (*Expr, error) {
	st, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	if st.Kind != ExprStmt {
		return nil, &TargetError{Col: 1, Target: st.Name}
	}
	return st.Body, nil
}

// parseassign parses the value side of an assignment. lhs is the already
// parsed target and eq is the = token.
func parseassign(scan *lexer, p *parsectx, lhs *node, eq lexToken) (*Stmt, error) {
	var st Stmt
	if lhs.paren {
		return nil, &TargetError{Col: eq.pos, Target: scan.text(0, eq.off)}
	}
	switch lhs.kind {
	case nodeName:
		st.Kind = VarStmt
		st.Name = lhs.name
	case nodeCall:
		st.Kind = FuncStmt
		st.Name = lhs.name
		st.Params = []string{}
		for _, a := range lhs.args() {
			if a.left.kind != nodeName || a.left.paren {
				return nil, &TargetError{Col: eq.pos, Target: scan.text(0, eq.off)}
			}
			st.Params = append(st.Params, a.left.name)
		}
	default:
		return nil, &TargetError{Col: eq.pos, Target: scan.text(0, eq.off)}
	}
	// Names in the target are not uses.
	p.names = make(map[string]bool)
	rhs, err := parseterm(scan, p, exprprec)
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(end)
	}
	st.Body = p.expr(rhs, scan.text(eq.off+len(assign), end.off))
	return &st, nil
}

// expr creates an Expr with the names collected so far.
func (p *parsectx) expr(n *node, src string) *Expr {
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
		src:   src,
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.stop)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseoperand(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// Juxtaposition is not multiplication.
			return nil, &TermError{Col: tok.pos, Term: tok.text}
		case tokenClose, tokenSep, tokenAssign, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("catware: unknown token: " + tok.String())
		}
	}
}

// parseoperand parses a term which must not be empty.
func parseoperand(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parseterm(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		end := scan.must()
		scan.push(end)
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return n, nil
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next(p.hard)
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		// Out of range literals become infinity or zero.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		n = &node{kind: nodeNum, name: tok.text, val: v}
	case tokenIdent:
		// We respect whitespace here so that f\n(x) doesn't string
		// together statements.
		nx, err := scan.next(p.stop)
		if err != nil {
			return nil, err
		}
		if nx.kind != tokenOpen {
			scan.push(nx)
			p.names[tok.text] = true
			n = &node{kind: nodeName, name: tok.text}
			break
		}
		args, err := parsearglist(scan, p)
		if err != nil {
			return nil, err
		}
		if end := scan.must(); end.kind != tokenClose {
			panic("catware: parsearglist ended on " + end.String() + " instead of close bracket")
		}
		n = &node{kind: nodeCall, name: tok.text, right: args}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseoperand(scan, p, prec)
		if err != nil {
			return nil, err
		}
		n = &node{kind: prec.op, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		rhs.paren = true
		n = rhs
	case tokenClose:
		// This might be part of a niladic f(), so just let the caller decide
		// what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign:
		return nil, &TargetError{Col: tok.pos}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("catware: unknown token: " + tok.String())
	}
	return n, nil
}

// parsearglist parses a bracketed list of zero or more args following the
// open bracket. It pushes the close bracket.
func parsearglist(scan *lexer, p *parsectx) (*node, error) {
	var n node
	l := &n
	k := 0
	for {
		start := len(scan.seen)
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting an unclosed bracket is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: openParen}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			scan.push(end)
			if rhs == nil {
				// f() is allowed, but f(a,) isn't.
				if k != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			l.right = &node{kind: nodeArg, left: rhs, src: scan.text(start, end.off)}
			return n.right, nil
		case tokenSep:
			k++
			l.right = &node{kind: nodeArg, left: rhs, src: scan.text(start, end.off)}
			l = l.right
		default:
			return nil, itShouldNotHaveEndedThisWay(end)
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: openParen, Right: ""}
	case tokenClose:
		// A close bracket at the end of an input was never opened.
		return &BracketError{Col: tok.pos, Left: "", Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign:
		return &TargetError{Col: tok.pos}
	default:
		panic("catware: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Source returns the text from which the expression was parsed.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the parsed expression, with
// brackets grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, true)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone. Unary operators bind more
// tightly than exponentiation, so -2^2 is (-2)^2.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{20, true, nodeNop}
	case "-":
		return operator{20, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
