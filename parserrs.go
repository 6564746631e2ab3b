package catware

import "strconv"

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an unclosed or unopened bracket in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket or the end of input.
	Col int
	// Left is the unclosed opening bracket, or empty.
	Left string
	// Right is the unopened closing bracket, or empty.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside of an argument list.
// It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// TermError is an error indicating two terms with no operator between them.
// It implements InputError.
type TermError struct {
	// Col is the position of the second term.
	Col int
	// Term is the first token of the second term.
	Term string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Term))
}

func (err *TermError) Pos() int {
	return err.Col
}

// TargetError is an error indicating an assignment to something other than a
// variable name or a function signature, or an = where no assignment can be.
// It implements InputError.
type TargetError struct {
	// Col is the position of the =.
	Col int
	// Target is the text on the left of the =, if it was parsed.
	Target string
}

func (err *TargetError) Error() string {
	if err.Target == "" {
		return errpos(err.Col, "unexpected =")
	}
	return errpos(err.Col, "cannot assign to "+strconv.Quote(err.Target))
}

func (err *TargetError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
// IdentError is an error from binding a name that is not an identifier, so
// that no expression could refer to it. It implements InputError.
type IdentError struct {
	// Name is the rejected name.
	Name string
	// Col is the position within Name of the first rune that cannot appear
	// there.
	Col int
}

func (err *IdentError) Error() string {
	return errpos(err.Col, "invalid name "+strconv.Quote(err.Name))
}

func (err *IdentError) Pos() int {
	return err.Col
}

func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*TargetError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*IdentError)(nil)
)
