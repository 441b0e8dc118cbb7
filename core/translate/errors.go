package translate

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorCodeMalformedInlineMarkup ErrorCode = "malformed_inline_markup"
)

// Error is the only error Translate returns. It aborts the translation and
// no partial output is produced.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsErrorCode(err error, code ErrorCode) bool {
	var translateErr *Error
	if !errors.As(err, &translateErr) {
		return false
	}
	return translateErr.Code == code
}
