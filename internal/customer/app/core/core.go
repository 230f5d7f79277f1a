package core

import (
	"context"
	"errors"

	"github.com/Kennyy02/Samgyupmasaya/internal/customer/domain/models"
)

const WaitTime = 10

var (
	ErrDBConn           = errors.New("db connection failure")
	ErrValidation       = errors.New("invalid request")
	ErrCustomerNotFound = errors.New("customer not found")
)

type ICustomerRepo interface {
	Details(ctx context.Context, id int64) (models.CustomerDetails, error)
	DailyRegistrations(ctx context.Context) ([]models.DailyRegistrations, error)
}
