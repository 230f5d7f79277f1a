package core

import "errors"

var (
	ErrDBConn            = errors.New("db connection failure")
	ErrValidation        = errors.New("invalid request")
	ErrFieldIsEmpty      = errors.New("field is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough stock available")
)
