package transport

import (
	"errors"
	"fmt"
)

var ErrTransport = errors.New("transport failure")

// TransportError — запрос не дошёл до шлюза или ответ не был получен целиком:
// отказ в соединении, ошибка DNS, таймаут, отмена контекста.
type TransportError struct {
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	kind := "request failed"
	if e.Timeout {
		kind = "request timed out"
	}
	return fmt.Sprintf("%s: %s %s %s: %v", ErrTransport, e.Method, e.URL, kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
