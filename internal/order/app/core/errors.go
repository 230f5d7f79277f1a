package core

import "errors"

var (
	ErrDBConn = errors.New("db connection failure")

	ErrFieldIsEmpty      = errors.New("field is empty")
	ErrValidation        = errors.New("invalid request")
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrDependency        = errors.New("dependent service unavailable")
	ErrInsufficientStock = errors.New("not enough stock available")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderDelivered    = errors.New("order already delivered")
)
