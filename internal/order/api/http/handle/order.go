package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/services"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type OrderHandler struct {
	orderService *services.OrderService
	mylog        *logger.Logger
}

func NewOrderHandler(orderService *services.OrderService, mylog *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		mylog:        mylog,
	}
}

func (oh *OrderHandler) CreateOnline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.OnlineOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			oh.mylog.Error("", "parse_failed", "Failed to parse online order", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		id, err := oh.orderService.PlaceOnlineOrder(ctx, req)
		if err != nil {
			jsonError(w, statusFor(err), publicError(err, "failed to place order"))
			return
		}

		jsonResponse(w, http.StatusOK, dto.OnlineOrderResponse{
			Message: "Order placed successfully",
			OrderID: id,
		})
	}
}

func (oh *OrderHandler) CreateOnsite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.OnsiteOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			oh.mylog.Error("", "parse_failed", "Failed to parse onsite order", err)
			jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		ids, err := oh.orderService.PlaceOnsiteOrder(ctx, req)
		if err != nil {
			jsonError(w, statusFor(err), publicError(err, "failed to place onsite order, nothing was saved"))
			return
		}

		jsonResponse(w, http.StatusOK, dto.OnsiteOrderResponse{
			Message:     "Onsite order placed successfully",
			OrderID:     ids[0],
			AllOrderIDs: ids,
		})
	}
}

func (oh *OrderHandler) ListOnline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		orders, err := oh.orderService.ListOnline(ctx)
		if err != nil {
			oh.mylog.Error("", "list_online_failed", "Failed to list online orders", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch online orders"))
			return
		}
		jsonResponse(w, http.StatusOK, orders)
	}
}

func (oh *OrderHandler) ListOnsite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		orders, err := oh.orderService.ListOnsite(ctx)
		if err != nil {
			oh.mylog.Error("", "list_onsite_failed", "Failed to list onsite orders", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch onsite orders"))
			return
		}
		jsonResponse(w, http.StatusOK, orders)
	}
}

func (oh *OrderHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		results, err := oh.orderService.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			jsonError(w, statusFor(err), publicError(err, "failed to search orders"))
			return
		}
		jsonResponse(w, http.StatusOK, results)
	}
}

func (oh *OrderHandler) UpdateOnlineStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oh.updateStatus(w, r, oh.orderService.UpdateOnlineStatus)
	}
}

func (oh *OrderHandler) UpdateOnsiteStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oh.updateStatus(w, r, oh.orderService.UpdateOnsiteStatus)
	}
}

func (oh *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request, update func(context.Context, int64, string) error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req dto.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}
	if req.Status == "" {
		jsonError(w, http.StatusBadRequest, errors.New("status is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
	defer cancel()

	if err := update(ctx, id, req.Status); err != nil {
		jsonError(w, statusFor(err), publicError(err, "failed to update order status"))
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Order status updated to %s", req.Status),
	})
}

func (oh *OrderHandler) OnlineStatusByCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		rows, err := oh.orderService.OnlineStatusByCustomer(ctx, r.PathValue("customerName"))
		if err != nil {
			oh.mylog.Error("", "status_poll_failed", "Failed to fetch online order statuses", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch order status"))
			return
		}
		jsonResponse(w, http.StatusOK, rows)
	}
}

func (oh *OrderHandler) OnsiteStatusByTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		rows, err := oh.orderService.OnsiteStatusByTable(ctx, r.PathValue("tableId"))
		if err != nil {
			oh.mylog.Error("", "status_poll_failed", "Failed to fetch onsite order statuses", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch order status"))
			return
		}
		jsonResponse(w, http.StatusOK, rows)
	}
}

// publicError keeps taxonomy errors as-is (their message is stable and safe)
// and hides everything else behind a generic message.
func publicError(err error, generic string) error {
	switch {
	case errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrFieldIsEmpty),
		errors.Is(err, core.ErrInvalidTransition),
		errors.Is(err, core.ErrOrderDelivered),
		errors.Is(err, core.ErrInsufficientStock),
		errors.Is(err, core.ErrOrderNotFound),
		errors.Is(err, core.ErrProductNotFound),
		errors.Is(err, core.ErrDependency):
		return err
	default:
		return errors.New(generic)
	}
}
