package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
)

// Dashboard endpoints. Kept on the order service because they aggregate the
// two order tables only.

func (oh *OrderHandler) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		summary, err := oh.orderService.Summary(ctx)
		if err != nil {
			oh.mylog.Error("", "analytics_summary_failed", "Failed to compute analytics summary", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch analytics summary"))
			return
		}
		jsonResponse(w, http.StatusOK, summary)
	}
}

func (oh *OrderHandler) OnlineProductsSold() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		units, err := oh.orderService.OnlineProductsSold(ctx)
		if err != nil {
			oh.mylog.Error("", "analytics_units_failed", "Failed to compute online units sold", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch products sold"))
			return
		}
		jsonResponse(w, http.StatusOK, units)
	}
}

func (oh *OrderHandler) OnsiteProductsSold() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), core.WaitTime*time.Second)
		defer cancel()

		units, err := oh.orderService.OnsiteProductsSold(ctx)
		if err != nil {
			oh.mylog.Error("", "analytics_units_failed", "Failed to compute onsite units sold", err)
			jsonError(w, http.StatusInternalServerError, errors.New("failed to fetch products sold"))
			return
		}
		jsonResponse(w, http.StatusOK, units)
	}
}
