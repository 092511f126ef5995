package merror

import "fmt"

type MotorError struct {
	Err string
}

func New(format string, args ...interface{}) *MotorError {
	return &MotorError{Err: fmt.Sprintf(format, args...)}
}

func (e *MotorError) Error() string {
	return e.Err
}
