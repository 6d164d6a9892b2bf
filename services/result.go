package services

import (
	"fmt"
	"net/http"

	"github.com/panyam/ramtool/core"
)

// Result is the envelope handed to callers that cannot deal with Go errors
// (JS bindings, the websocket session).  Exactly one of Data and Error is
// set.  Status is 200 on success, the RamError status on domain failures
// and 0 for anything unexpected.
type Result[T any] struct {
	Data   *T      `json:"data"`
	Error  *string `json:"error"`
	Status int     `json:"status"`
}

func (r Result[T]) Ok() bool { return r.Error == nil }

func okResult[T any](data *T) Result[T] {
	return Result[T]{Data: data, Status: http.StatusOK}
}

func errResult[T any](err error) Result[T] {
	msg := err.Error()
	if re, ok := core.AsRamError(err); ok {
		msg = re.Message
		return Result[T]{Error: &msg, Status: re.Status}
	}
	return Result[T]{Error: &msg, Status: 0}
}

// Call runs fn and converts its outcome into a Result.  It never panics: a
// recovered panic becomes an unexpected failure with status 0.
func Call[T any](fn func() (*T, error)) (out Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = errResult[T](fmt.Errorf("%v", r))
		}
	}()
	data, err := fn()
	if err != nil {
		return errResult[T](err)
	}
	return okResult(data)
}
