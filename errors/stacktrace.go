package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// stackTracer is an error that is carrying the stacktrace of its creation
// point. This is implemented by errors produced with the pkg/errors package.
type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the stacktrace attached to the closest error in the
// cause chain, or nil if no error is carrying one.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// trimInternal removes the stacktrace frames that refer to the internals of
// this package as well as the runtime frames attached on panics. They carry
// no information for the user of the error.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && matchesFile(st[0],
		// Where we create errors.
		"cask/errors/errors.go",
		// Runtime frames are added on panics.
		"/runtime/",
		// _test is defined in coverage tests, causing failure.
		"/_test/",
	) {
		st = st[1:]
	}
	for l := len(st) - 1; l > 0 && matchesFile(st[l], "/runtime/"); l-- {
		st = st[:l]
	}
	return st
}

func matchesFile(f errors.Frame, substrs ...string) bool {
	file, _ := fileLine(f)
	for _, sub := range substrs {
		if strings.Contains(file, sub) {
			return true
		}
	}
	return false
}

func fileLine(f errors.Frame) (string, int) {
	// This is a modified version of the pkg/errors Frame formatting that
	// does not rely on the string representation.
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// Cut the path at "github.com/" to keep the output short.
	chunks := strings.SplitN(file, "github.com/", 2)
	if len(chunks) == 2 {
		file = chunks[1]
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

// Format works like pkg/errors. A stacktrace is printed only for the %+v
// verb, a compressed [filename:line] is appended for %v and the plain message
// is used otherwise.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}

	st := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n", st)
		fmt.Fprint(s, e.Error())
	} else {
		fmt.Fprint(s, e.Error())
		if len(st) > 0 {
			writeSimpleFrame(s, st[0])
		}
	}
}
