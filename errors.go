// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Errors returned by the package. They are always wrapped with some context,
// use errors.Is to test for them.
var (
	// ErrMalformedInput is returned for ill-formed truth tables, rows or
	// variable names.
	ErrMalformedInput = errors.New("malformed input")
	// ErrEmptyInput is returned when there is nothing to build or export.
	ErrEmptyInput = errors.New("empty input")
	// ErrDanglingReference is returned when a Node does not belong to the
	// session it is used with.
	ErrDanglingReference = errors.New("dangling reference")
	// ErrCapacityExceeded is returned when the node table cannot grow past the
	// limit set with Maxnodesize.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrResourceExhausted is returned when a call to Ite goes over the budget
	// set with Itebudget.
	ErrResourceExhausted = errors.New("resource exhausted")
	// ErrIOFailure is returned when an output cannot be written.
	ErrIOFailure = errors.New("i/o failure")
	// ErrUnknownVariable is returned when a variable name or level is not
	// declared in the session.
	ErrUnknownVariable = errors.New("unknown variable")
)

// seterror builds an error of the given kind, with a formatted context, and
// logs it at debug level.
func (b *Session) seterror(kind error, format string, a ...interface{}) error {
	err := fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), kind)
	b.logger.Debug("bdd error", zap.Error(err))
	return err
}
