package service

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrInternal        = errors.New("internal error")
)
