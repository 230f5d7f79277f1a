package services

import (
	"context"
	"fmt"

	"github.com/Kennyy02/Samgyupmasaya/internal/customer/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/customer/domain/models"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type CustomerService struct {
	customerRepo core.ICustomerRepo
	mylog        *logger.Logger
}

func NewCustomerService(customerRepo core.ICustomerRepo, mylog *logger.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		mylog:        mylog,
	}
}

func (s *CustomerService) Details(ctx context.Context, id int64) (models.CustomerDetails, error) {
	if id <= 0 {
		return models.CustomerDetails{}, fmt.Errorf("%w: invalid customer id", core.ErrValidation)
	}
	return s.customerRepo.Details(ctx, id)
}

func (s *CustomerService) DailyRegistrations(ctx context.Context) ([]models.DailyRegistrations, error) {
	return s.customerRepo.DailyRegistrations(ctx)
}
