package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/customer/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/customer/app/services"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type CustomerHandler struct {
	customerService *services.CustomerService
	mylog           *logger.Logger
}

func NewCustomerHandler(customerService *services.CustomerService, mylog *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		mylog:           mylog,
	}
}

func (ch *CustomerHandler) Details() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, errors.New("invalid customer id"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		details, err := ch.customerService.Details(ctx, id)
		if err != nil {
			if errors.Is(err, core.ErrCustomerNotFound) {
				jsonError(w, http.StatusNotFound, core.ErrCustomerNotFound)
				return
			}
			ch.mylog.Error("", "customer_details_failed", "Failed to fetch customer details", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch customer details"))
			return
		}
		jsonResponse(w, http.StatusOK, details)
	}
}

func (ch *CustomerHandler) DailyRegistrations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		rows, err := ch.customerService.DailyRegistrations(ctx)
		if err != nil {
			ch.mylog.Error("", "daily_registrations_failed", "Failed to fetch daily user registrations", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch daily user registrations"))
			return
		}
		jsonResponse(w, http.StatusOK, rows)
	}
}

func jsonResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
