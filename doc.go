// Package catware implements a floating-point calculator with variables,
// user-defined functions, and function plotting.
//
// A Calc evaluates one statement at a time. A statement is an expression,
// "2 + 3 * 4", a variable assignment, "r = 2", or a function definition,
// "area(r) = pi * r^2". Bindings persist for the life of the Calc. Function
// bodies see only their own parameters and the constants pi, tau, and e, never
// the caller's variables.
//
// Unary minus binds more tightly than exponentiation, so "-2^2" is 4, and
// subtraction is left-associative, so "5 - 3 - 1" is 1. All arithmetic is
// IEEE-754 float64; "1/0" is +Inf rather than an error.
//
// The statement "plot(expr)" retains expr as the plot target and samples it
// with x bound to evenly spaced points across the viewport. NotifyViewport
// resamples it whenever the visible range changes.
//
// User functions may call each other and themselves without limit. Unbounded
// recursion exhausts the goroutine stack and crashes the program.
package catware
