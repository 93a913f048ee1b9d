package starlark

import (
	"context"
	"errors"
	"fmt"

	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// newThread creates a Starlark thread whose print() goes to the context's
// print function.
func (ctx *ExecutionContext) newThread(name string) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			if ctx.print != nil {
				ctx.print(msg)
			}
		},
	}
	if ctx.maxSteps > 0 {
		thread.SetMaxExecutionSteps(ctx.maxSteps)
	}
	return thread
}

// cancelOnDone cancels thread when c is done. The returned function
// releases the watcher and must be called once evaluation finishes.
func cancelOnDone(c context.Context, thread *starlark.Thread) func() {
	if c == nil || c.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-c.Done():
			thread.Cancel(c.Err().Error())
		case <-done:
		}
	}()
	return func() { close(done) }
}

// EvalError represents an error during Starlark expression evaluation.
type EvalError struct {
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	var syntaxErr syntax.Error
	if errors.As(e.Err, &syntaxErr) {
		return fmt.Sprintf("syntax error in %q: %s", e.Expr, syntaxErr.Msg)
	}
	var resolveErrs resolve.ErrorList
	if errors.As(e.Err, &resolveErrs) && len(resolveErrs) > 0 {
		return fmt.Sprintf("error in %q: %s", e.Expr, resolveErrs[0].Msg)
	}
	var evalErr *starlark.EvalError
	if errors.As(e.Err, &evalErr) {
		return fmt.Sprintf("error evaluating %q: %s", e.Expr, evalErr.Msg)
	}
	return fmt.Sprintf("error evaluating %q: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }
