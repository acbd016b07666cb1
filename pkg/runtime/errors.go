package runtime

import "fmt"

// Error is the single runtime failure kind. The message is diagnostic only;
// the driver surfaces every Error identically.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Errorf builds a runtime Error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
