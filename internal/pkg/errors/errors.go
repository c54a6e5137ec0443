package errors

import (
	"fmt"
)

type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is сравнивает ошибки по коду, чтобы копии с деталями совпадали с эталоном
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

// WithDetails возвращает копию ошибки с деталями, эталон не меняется
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}
