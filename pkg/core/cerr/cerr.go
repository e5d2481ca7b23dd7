// Package cerr provides errors which carry their HTTP status code, so
// the use cases may classify their expected failures without depending
// on any REST framework.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// NotAcceptable is used for requests which collide with an in-flight
// operation on the same resource and may be retried later.
func NotAcceptable(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotAcceptable}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
