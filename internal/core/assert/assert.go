// Package assert implements the engine's fatal invariant checks.
//
// A failed check logs the violation at error level under the "Assertions"
// category and then panics with a *Failure. Building with the gojo_noassert
// tag compiles the checks out; code after a compiled-out check must stay
// memory safe but its behaviour is otherwise unspecified.
package assert

import (
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// Failure is the panic value of a violated invariant.
type Failure struct {
	Category string
	Message  string
	File     string
	Line     int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("assertion failed [%s]: %s (%s:%d)", f.Category, f.Message, f.File, f.Line)
}

// That fails with msg when cond is false.
func That(log *zap.Logger, cond bool, category, msg string) {
	if !Enabled || cond {
		return
	}
	fail(log, category, msg, 2)
}

// NotNil fails when v is nil. Typed nil pointers and funcs stored in an
// interface are not detected; callers check those themselves.
func NotNil(log *zap.Logger, v any, category, msg string) {
	if !Enabled || v != nil {
		return
	}
	fail(log, category, msg, 2)
}

// Fail unconditionally reports a violation.
func Fail(log *zap.Logger, category, msg string) {
	if !Enabled {
		return
	}
	fail(log, category, msg, 2)
}

func fail(log *zap.Logger, category, msg string, skip int) {
	f := &Failure{Category: category, Message: msg}
	if _, file, line, ok := runtime.Caller(skip); ok {
		f.File = filepath.Base(file)
		f.Line = line
	}
	if log != nil {
		log.Named("Assertions").Error("assertion failed",
			zap.String("category", category),
			zap.String("message", msg),
			zap.String("source", fmt.Sprintf("%s:%d", f.File, f.Line)),
		)
	}
	panic(f)
}

// Recover converts a recovered *Failure back into a value. Any other panic is
// re-raised. Intended for deferred use at boundaries that must report rather
// than crash, e.g. `defer assert.Recover(&err)`.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	f, ok := r.(*Failure)
	if !ok {
		panic(r)
	}
	if errp != nil {
		*errp = f
	}
}
