package console

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrUsage            = errors.New("invalid arguments")
	ErrNotVariable      = errors.New("not a variable")
	ErrDispatcherClosed = errors.New("dispatcher closed")
)
