// Package common holds small error helpers shared across the panel.
package common

import (
	"errors"
	"fmt"

	"github.com/dukcapil-minsel/suket/logger"
)

func NewErrorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

// Combine joins the non-nil errors. It returns nil when all are nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover must be deferred directly. It logs and swallows a panic.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil && msg != "" {
		logger.Error(msg, "panic:", panicErr)
	}
	return panicErr
}
