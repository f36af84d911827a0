package usecase

import (
	"errors"
	"fmt"
)

// HTTPError はusecaseが返す唯一のエラー型。
// Codeは安定した業務コード（例: MATERIAL_NOT_FOUND）でhandlerがそのままJSONに載せる。
type HTTPError struct {
	Status int
	Code   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Code)
}

func NewHTTPError(status int, code string) error {
	return &HTTPError{
		Status: status,
		Code:   code,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
