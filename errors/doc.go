/*
Package errors implements the coded errors used across cask.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when absolutely necessary. It is best to define a
new error here if you feel it is going to be somewhat package-agnostic.
Extensions register their own roots with Register(code, description) using a
code range that does not collide with the common ones.

The code of a root error is what the host reports to the caller as the failed
invocation signal, which allows the client side to distinguish the kinds of
failures and act accordingly.

There is also support for stacktraces. Please ensure you create the error
using ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation so
a stacktrace is attached. If you wrap multiple times, only the first wrap
records the stacktrace.

Once you have an error, you can use fmt verbs to get more context

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
