package handle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/services"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/models"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

// stubRepo serves a fixed pair of orders and records status writes.
type stubRepo struct {
	online        models.OnlineOrder
	onsite        models.OnsiteOrder
	lastOnline    models.OnlineStatus
	lastOnsite    models.OnsiteStatus
	createdOnline int
}

func (s *stubRepo) CreateOnline(_ context.Context, _ models.OnlineOrder) (int64, error) {
	s.createdOnline++
	return 101, nil
}

func (s *stubRepo) CreateOnsiteBatch(_ context.Context, orders []models.OnsiteOrder) ([]int64, error) {
	ids := make([]int64, len(orders))
	for i := range orders {
		ids[i] = int64(200 + i)
	}
	return ids, nil
}

func (s *stubRepo) GetOnline(_ context.Context, id int64) (models.OnlineOrder, error) {
	if id != s.online.ID {
		return models.OnlineOrder{}, core.ErrOrderNotFound
	}
	return s.online, nil
}

func (s *stubRepo) GetOnsite(_ context.Context, id int64) (models.OnsiteOrder, error) {
	if id != s.onsite.ID {
		return models.OnsiteOrder{}, core.ErrOrderNotFound
	}
	return s.onsite, nil
}

func (s *stubRepo) ListOnline(_ context.Context) ([]models.OnlineOrder, error) {
	return []models.OnlineOrder{s.online}, nil
}

func (s *stubRepo) ListOnsite(_ context.Context) ([]models.OnsiteOrder, error) {
	return []models.OnsiteOrder{s.onsite}, nil
}

func (s *stubRepo) UpdateOnlineStatus(_ context.Context, _ int64, status models.OnlineStatus) error {
	s.lastOnline = status
	return nil
}

func (s *stubRepo) UpdateOnsiteStatus(_ context.Context, _ int64, status models.OnsiteStatus) error {
	s.lastOnsite = status
	return nil
}

func (s *stubRepo) Search(_ context.Context, _ string) ([]dto.SearchRow, error) { return nil, nil }
func (s *stubRepo) OnlineStatusByCustomer(_ context.Context, _ string) ([]dto.StatusRow, error) {
	return nil, nil
}
func (s *stubRepo) OnsiteStatusByTable(_ context.Context, _ string) ([]dto.StatusRow, error) {
	return nil, nil
}
func (s *stubRepo) Summary(_ context.Context) (dto.AnalyticsSummary, error) {
	return dto.AnalyticsSummary{TotalRevenue: 2356, TotalOrders: 3, PendingOrders: 1}, nil
}
func (s *stubRepo) OnlineProductsSold(_ context.Context) ([]dto.ProductUnits, error) {
	return nil, nil
}
func (s *stubRepo) OnsiteProductsSold(_ context.Context) ([]dto.ProductUnits, error) {
	return nil, nil
}

type stubCatalog struct{ decrementErr error }

func (s *stubCatalog) ResolveProductID(_ context.Context, _, _ string) (int64, error) {
	return 42, nil
}

func (s *stubCatalog) DecrementStock(_ context.Context, _ string, _ int64, _ int) error {
	return s.decrementErr
}

type stubDirectory struct{}

func (stubDirectory) CustomerDetails(_ context.Context, _ int64) (models.CustomerDetails, error) {
	return models.CustomerDetails{Name: "Maria Santos", Email: "maria@example.com"}, nil
}

type stubPublisher struct{}

func (stubPublisher) PublishStatusUpdate(_ context.Context, _ dto.StatusUpdateMessage) error {
	return nil
}

func newTestMux(repo *stubRepo, catalog *stubCatalog) *http.ServeMux {
	mylog := logger.NewLogger("order-service-test")
	svc := services.NewOrderService(repo, catalog, stubDirectory{}, stubPublisher{}, mylog)
	oh := NewOrderHandler(svc, mylog)

	mux := http.NewServeMux()
	mux.Handle("POST /orders/online", oh.CreateOnline())
	mux.Handle("POST /orders/onsite", oh.CreateOnsite())
	mux.Handle("PUT /orders/online/{id}/status", oh.UpdateOnlineStatus())
	mux.Handle("PUT /orders/onsite/{id}/status", oh.UpdateOnsiteStatus())
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateOnlineEndpoint(t *testing.T) {
	repo := &stubRepo{}
	mux := newTestMux(repo, &stubCatalog{})

	rec := do(t, mux, http.MethodPost, "/orders/online", `{
		"customerId": 7,
		"address": "123 Mabini St",
		"contact_number": "09171234567",
		"category": "Pork",
		"product_name": "Samgyupsal Set A",
		"quantity": 3,
		"price": 120.00,
		"payment_method": "GCash"
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"orderId":101`)
	assert.Equal(t, 1, repo.createdOnline)
}

func TestCreateOnlineEndpointBadJSON(t *testing.T) {
	mux := newTestMux(&stubRepo{}, &stubCatalog{})
	rec := do(t, mux, http.MethodPost, "/orders/online", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCreateOnlineEndpointValidation(t *testing.T) {
	repo := &stubRepo{}
	mux := newTestMux(repo, &stubCatalog{})

	rec := do(t, mux, http.MethodPost, "/orders/online", `{
		"customerId": 7,
		"address": "123 Mabini St",
		"contact_number": "09171234567",
		"category": "Pork",
		"product_name": "Samgyupsal Set A",
		"quantity": 3,
		"price": 120.00,
		"payment_method": "Bitcoin"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, repo.createdOnline)
}

func TestCreateOnsiteEndpoint(t *testing.T) {
	mux := newTestMux(&stubRepo{}, &stubCatalog{})

	rec := do(t, mux, http.MethodPost, "/orders/onsite", `{
		"customer_name": "Dela Cruz Party",
		"table_id": "T5",
		"number_of_persons": 4,
		"payment_status": "Cash",
		"items": [
			{"name": "Unli Pork Set", "quantity": 1, "price": 499.00, "category": "Unlimited Rates"},
			{"name": "Coke 1.5L", "quantity": 2, "price": 85.00, "category": "Drinks"}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"order_id":200`)
	assert.Contains(t, rec.Body.String(), `"all_order_ids":[200,201]`)
}

func TestUpdateOnlineStatusEndpoint(t *testing.T) {
	repo := &stubRepo{online: models.OnlineOrder{ID: 1, ProductID: 42, Quantity: 2, Status: models.StatusPending}}
	mux := newTestMux(repo, &stubCatalog{})

	rec := do(t, mux, http.MethodPut, "/orders/online/1/status", `{"status": "Preparing"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.StatusPreparing, repo.lastOnline)
}

func TestUpdateOnlineStatusEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		order  models.OnlineOrder
		path   string
		body   string
		status int
	}{
		{
			name:   "invalid id",
			path:   "/orders/online/abc/status",
			body:   `{"status": "Preparing"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing status",
			order:  models.OnlineOrder{ID: 1, Status: models.StatusPending},
			path:   "/orders/online/1/status",
			body:   `{}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown status value",
			order:  models.OnlineOrder{ID: 1, Status: models.StatusPending},
			path:   "/orders/online/1/status",
			body:   `{"status": "Shipped"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown order",
			path:   "/orders/online/77/status",
			body:   `{"status": "Preparing"}`,
			status: http.StatusNotFound,
		},
		{
			name:   "backward transition",
			order:  models.OnlineOrder{ID: 1, Status: models.StatusPreparing},
			path:   "/orders/online/1/status",
			body:   `{"status": "Pending"}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "delivered is terminal",
			order:  models.OnlineOrder{ID: 1, Status: models.StatusDelivered},
			path:   "/orders/online/1/status",
			body:   `{"status": "Preparing"}`,
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newTestMux(&stubRepo{online: tt.order}, &stubCatalog{})
			rec := do(t, mux, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestUpdateOnlineStatusEndpointSoldOut(t *testing.T) {
	repo := &stubRepo{online: models.OnlineOrder{ID: 1, ProductID: 42, Quantity: 5, Status: models.StatusPreparing}}
	mux := newTestMux(repo, &stubCatalog{decrementErr: core.ErrInsufficientStock})

	rec := do(t, mux, http.MethodPut, "/orders/online/1/status", `{"status": "Delivered"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.lastOnline, "status must not change when the decrement fails")
}

func TestUpdateOnsiteStatusEndpoint(t *testing.T) {
	repo := &stubRepo{onsite: models.OnsiteOrder{ID: 5, ProductID: 11, Quantity: 2, ChangeStatus: models.ChangePending}}
	mux := newTestMux(repo, &stubCatalog{})

	rec := do(t, mux, http.MethodPut, "/orders/onsite/5/status", `{"status": "Served"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.ChangeServed, repo.lastOnsite)
}

func TestStatusForTaxonomy(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(core.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, statusFor(core.ErrFieldIsEmpty))
	assert.Equal(t, http.StatusBadRequest, statusFor(core.ErrInvalidTransition))
	assert.Equal(t, http.StatusBadRequest, statusFor(core.ErrOrderDelivered))
	assert.Equal(t, http.StatusBadRequest, statusFor(core.ErrInsufficientStock))
	assert.Equal(t, http.StatusNotFound, statusFor(core.ErrOrderNotFound))
	assert.Equal(t, http.StatusNotFound, statusFor(core.ErrProductNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(core.ErrDependency))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
