package db

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicate     = errors.New("duplicate resource")
	ErrDuplicateCart = errors.New("user already has a cart")
	ErrInvalidInput  = errors.New("invalid input data")
)
