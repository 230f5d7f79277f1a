package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/models"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type fakeOrderRepo struct {
	online map[int64]models.OnlineOrder
	onsite map[int64]models.OnsiteOrder

	createdOnline  []models.OnlineOrder
	createdOnsite  []models.OnsiteOrder
	onlineStatuses map[int64]models.OnlineStatus
	onsiteStatuses map[int64]models.OnsiteStatus
	batchCalls     int

	createErr error
	updateErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		online:         make(map[int64]models.OnlineOrder),
		onsite:         make(map[int64]models.OnsiteOrder),
		onlineStatuses: make(map[int64]models.OnlineStatus),
		onsiteStatuses: make(map[int64]models.OnsiteStatus),
	}
}

func (f *fakeOrderRepo) CreateOnline(_ context.Context, order models.OnlineOrder) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.createdOnline = append(f.createdOnline, order)
	return int64(len(f.createdOnline)), nil
}

func (f *fakeOrderRepo) CreateOnsiteBatch(_ context.Context, orders []models.OnsiteOrder) ([]int64, error) {
	f.batchCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		f.createdOnsite = append(f.createdOnsite, o)
		ids = append(ids, int64(len(f.createdOnsite)))
	}
	return ids, nil
}

func (f *fakeOrderRepo) GetOnline(_ context.Context, id int64) (models.OnlineOrder, error) {
	order, ok := f.online[id]
	if !ok {
		return models.OnlineOrder{}, core.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) GetOnsite(_ context.Context, id int64) (models.OnsiteOrder, error) {
	order, ok := f.onsite[id]
	if !ok {
		return models.OnsiteOrder{}, core.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) ListOnline(_ context.Context) ([]models.OnlineOrder, error)  { return nil, nil }
func (f *fakeOrderRepo) ListOnsite(_ context.Context) ([]models.OnsiteOrder, error) { return nil, nil }

func (f *fakeOrderRepo) UpdateOnlineStatus(_ context.Context, id int64, status models.OnlineStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.onlineStatuses[id] = status
	return nil
}

func (f *fakeOrderRepo) UpdateOnsiteStatus(_ context.Context, id int64, status models.OnsiteStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.onsiteStatuses[id] = status
	return nil
}

func (f *fakeOrderRepo) Search(_ context.Context, _ string) ([]dto.SearchRow, error) {
	return nil, nil
}

func (f *fakeOrderRepo) OnlineStatusByCustomer(_ context.Context, _ string) ([]dto.StatusRow, error) {
	return nil, nil
}

func (f *fakeOrderRepo) OnsiteStatusByTable(_ context.Context, _ string) ([]dto.StatusRow, error) {
	return nil, nil
}

func (f *fakeOrderRepo) Summary(_ context.Context) (dto.AnalyticsSummary, error) {
	return dto.AnalyticsSummary{}, nil
}

func (f *fakeOrderRepo) OnlineProductsSold(_ context.Context) ([]dto.ProductUnits, error) {
	return nil, nil
}

func (f *fakeOrderRepo) OnsiteProductsSold(_ context.Context) ([]dto.ProductUnits, error) {
	return nil, nil
}

type decrementCall struct {
	set       string
	productID int64
	quantity  int
}

type fakeCatalog struct {
	products     map[string]int64 // "set/name" -> id
	decrements   []decrementCall
	decrementErr error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[string]int64)}
}

func (f *fakeCatalog) ResolveProductID(_ context.Context, name, set string) (int64, error) {
	id, ok := f.products[set+"/"+name]
	if !ok {
		return 0, core.ErrProductNotFound
	}
	return id, nil
}

func (f *fakeCatalog) DecrementStock(_ context.Context, set string, productID int64, quantity int) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	f.decrements = append(f.decrements, decrementCall{set, productID, quantity})
	return nil
}

type fakeDirectory struct {
	customers map[int64]models.CustomerDetails
	err       error
}

func (f *fakeDirectory) CustomerDetails(_ context.Context, id int64) (models.CustomerDetails, error) {
	if f.err != nil {
		return models.CustomerDetails{}, f.err
	}
	details, ok := f.customers[id]
	if !ok {
		return models.CustomerDetails{}, core.ErrDependency
	}
	return details, nil
}

type fakePublisher struct {
	published []dto.StatusUpdateMessage
	err       error
}

func (f *fakePublisher) PublishStatusUpdate(_ context.Context, msg dto.StatusUpdateMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fixture struct {
	svc       *OrderService
	repo      *fakeOrderRepo
	catalog   *fakeCatalog
	directory *fakeDirectory
	publisher *fakePublisher
}

func newFixture() *fixture {
	repo := newFakeOrderRepo()
	catalog := newFakeCatalog()
	directory := &fakeDirectory{customers: make(map[int64]models.CustomerDetails)}
	publisher := &fakePublisher{}
	return &fixture{
		svc:       NewOrderService(repo, catalog, directory, publisher, logger.NewLogger("order-service-test")),
		repo:      repo,
		catalog:   catalog,
		directory: directory,
		publisher: publisher,
	}
}

func validOnlineRequest() dto.OnlineOrderRequest {
	return dto.OnlineOrderRequest{
		CustomerID:    7,
		Address:       "123 Mabini St",
		ContactNumber: "09171234567",
		Category:      "Pork",
		ProductName:   "Samgyupsal Set A",
		Quantity:      3,
		Price:         120.00,
		PaymentMethod: "GCash",
	}
}

func TestPlaceOnlineOrder(t *testing.T) {
	f := newFixture()
	f.directory.customers[7] = models.CustomerDetails{Name: "Maria Santos", Email: "maria@example.com"}
	f.catalog.products["online/Samgyupsal Set A"] = 42

	id, err := f.svc.PlaceOnlineOrder(context.Background(), validOnlineRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, f.repo.createdOnline, 1)
	saved := f.repo.createdOnline[0]
	assert.Equal(t, int64(42), saved.ProductID)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.InDelta(t, 360.00, saved.Price, 0.001) // unit price x quantity
	assert.Equal(t, "Maria Santos", saved.CustomerName)
	assert.Equal(t, "maria@example.com", saved.CustomerEmail)
}

func TestPlaceOnlineOrderValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*dto.OnlineOrderRequest)
		want   error
	}{
		{"missing customer id", func(r *dto.OnlineOrderRequest) { r.CustomerID = 0 }, core.ErrFieldIsEmpty},
		{"blank address", func(r *dto.OnlineOrderRequest) { r.Address = "  " }, core.ErrFieldIsEmpty},
		{"blank product name", func(r *dto.OnlineOrderRequest) { r.ProductName = "" }, core.ErrFieldIsEmpty},
		{"zero quantity", func(r *dto.OnlineOrderRequest) { r.Quantity = 0 }, core.ErrValidation},
		{"negative price", func(r *dto.OnlineOrderRequest) { r.Price = -1 }, core.ErrValidation},
		{"unknown payment method", func(r *dto.OnlineOrderRequest) { r.PaymentMethod = "Card" }, core.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOnlineRequest()
			tt.mutate(&req)
			_, err := f.svc.PlaceOnlineOrder(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.repo.createdOnline, "nothing may be persisted on validation failure")
}

func TestPlaceOnlineOrderDirectoryDown(t *testing.T) {
	f := newFixture()
	f.directory.err = core.ErrDependency
	f.catalog.products["online/Samgyupsal Set A"] = 42

	_, err := f.svc.PlaceOnlineOrder(context.Background(), validOnlineRequest())
	assert.ErrorIs(t, err, core.ErrDependency)
	assert.Empty(t, f.repo.createdOnline)
}

func TestPlaceOnlineOrderUnknownProduct(t *testing.T) {
	f := newFixture()
	f.directory.customers[7] = models.CustomerDetails{Name: "Maria Santos", Email: "maria@example.com"}

	_, err := f.svc.PlaceOnlineOrder(context.Background(), validOnlineRequest())
	assert.ErrorIs(t, err, core.ErrProductNotFound)
	assert.Empty(t, f.repo.createdOnline)
}

func validOnsiteRequest() dto.OnsiteOrderRequest {
	return dto.OnsiteOrderRequest{
		CustomerName:    "Dela Cruz Party",
		TableID:         "T5",
		NumberOfPersons: 4,
		PaymentStatus:   "Cash",
		Items: []dto.OnsiteItem{
			{Name: "Unli Pork Set", Quantity: 1, Price: 499.00, Category: "Unlimited Rates"},
			{Name: "Coke 1.5L", Quantity: 2, Price: 85.00, Category: "Drinks"},
		},
	}
}

func TestPlaceOnsiteOrder(t *testing.T) {
	f := newFixture()
	f.catalog.products["onsite/Unli Pork Set"] = 10
	f.catalog.products["onsite/Coke 1.5L"] = 11

	ids, err := f.svc.PlaceOnsiteOrder(context.Background(), validOnsiteRequest())
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.Len(t, f.repo.createdOnsite, 2)
	unli := f.repo.createdOnsite[0]
	assert.InDelta(t, 1996.00, unli.Price, 0.001) // flat rate: 499 x 4 diners
	assert.Equal(t, models.ChangePending, unli.ChangeStatus)

	drinks := f.repo.createdOnsite[1]
	assert.InDelta(t, 170.00, drinks.Price, 0.001) // 85 x 2
	assert.Equal(t, "T5", drinks.TableID)
}

func TestPlaceOnsiteOrderUnknownProductAbortsAll(t *testing.T) {
	f := newFixture()
	f.catalog.products["onsite/Unli Pork Set"] = 10
	// Coke 1.5L deliberately missing from the onsite catalog.

	_, err := f.svc.PlaceOnsiteOrder(context.Background(), validOnsiteRequest())
	assert.ErrorIs(t, err, core.ErrProductNotFound)
	assert.Zero(t, f.repo.batchCalls, "no insert may be attempted when any line fails to resolve")
	assert.Empty(t, f.repo.createdOnsite)
}

func TestPlaceOnsiteOrderValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*dto.OnsiteOrderRequest)
		want   error
	}{
		{"blank table id", func(r *dto.OnsiteOrderRequest) { r.TableID = "" }, core.ErrFieldIsEmpty},
		{"zero diners", func(r *dto.OnsiteOrderRequest) { r.NumberOfPersons = 0 }, core.ErrValidation},
		{"no items", func(r *dto.OnsiteOrderRequest) { r.Items = nil }, core.ErrFieldIsEmpty},
		{"unknown payment status", func(r *dto.OnsiteOrderRequest) { r.PaymentStatus = "Card" }, core.ErrValidation},
		{"item with zero quantity", func(r *dto.OnsiteOrderRequest) { r.Items[0].Quantity = 0 }, core.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validOnsiteRequest()
			tt.mutate(&req)
			_, err := f.svc.PlaceOnsiteOrder(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateOnlineStatusToPreparing(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{
		ID: 1, ProductID: 42, Quantity: 3,
		CustomerEmail: "maria@example.com",
		Status:        models.StatusPending,
	}

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Preparing")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPreparing, f.repo.onlineStatuses[1])
	assert.Empty(t, f.catalog.decrements, "Preparing must not touch stock")

	require.Len(t, f.publisher.published, 1)
	msg := f.publisher.published[0]
	assert.Equal(t, int64(1), msg.OrderID)
	assert.Equal(t, "maria@example.com", msg.CustomerEmail)
	assert.Equal(t, "Pending", msg.OldStatus)
	assert.Equal(t, "Preparing", msg.NewStatus)
}

func TestUpdateOnlineStatusSameStatusIsNoOp(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{ID: 1, ProductID: 42, Quantity: 3, Status: models.StatusPreparing}

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Preparing")
	require.NoError(t, err)

	assert.Empty(t, f.repo.onlineStatuses, "no write on a no-op")
	assert.Empty(t, f.publisher.published, "no event on a no-op")
	assert.Empty(t, f.catalog.decrements)
}

func TestUpdateOnlineStatusToDelivered(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{
		ID: 1, ProductID: 42, Quantity: 3,
		CustomerEmail: "maria@example.com",
		Status:        models.StatusPreparing,
	}

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Delivered")
	require.NoError(t, err)

	require.Len(t, f.catalog.decrements, 1)
	assert.Equal(t, decrementCall{core.SetOnline, 42, 3}, f.catalog.decrements[0])
	assert.Equal(t, models.StatusDelivered, f.repo.onlineStatuses[1])
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, "Delivered", f.publisher.published[0].NewStatus)
}

func TestUpdateOnlineStatusDecrementFailureKeepsStatus(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{ID: 1, ProductID: 42, Quantity: 3, Status: models.StatusPreparing}
	f.catalog.decrementErr = core.ErrInsufficientStock

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Delivered")
	assert.ErrorIs(t, err, core.ErrInsufficientStock)
	assert.Empty(t, f.repo.onlineStatuses, "status must not advance when the decrement fails")
	assert.Empty(t, f.publisher.published)
}

func TestUpdateOnlineStatusRejectsBackward(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{ID: 1, Status: models.StatusPreparing}

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Pending")
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

func TestUpdateOnlineStatusDeliveredIsTerminal(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{ID: 1, Status: models.StatusDelivered}

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Preparing")
	assert.ErrorIs(t, err, core.ErrOrderDelivered)
}

func TestUpdateOnlineStatusUnknownStatus(t *testing.T) {
	f := newFixture()
	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Shipped")
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestUpdateOnlineStatusUnknownOrder(t *testing.T) {
	f := newFixture()
	err := f.svc.UpdateOnlineStatus(context.Background(), 99, "Preparing")
	assert.ErrorIs(t, err, core.ErrOrderNotFound)
}

func TestUpdateOnlineStatusPublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.repo.online[1] = models.OnlineOrder{ID: 1, ProductID: 42, Quantity: 1, Status: models.StatusPending}
	f.publisher.err = errors.New("broker down")

	err := f.svc.UpdateOnlineStatus(context.Background(), 1, "Preparing")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, f.repo.onlineStatuses[1])
}

func TestUpdateOnsiteStatusToServed(t *testing.T) {
	f := newFixture()
	f.repo.onsite[5] = models.OnsiteOrder{ID: 5, ProductID: 11, Quantity: 2, ChangeStatus: models.ChangePending}

	err := f.svc.UpdateOnsiteStatus(context.Background(), 5, "Served")
	require.NoError(t, err)

	require.Len(t, f.catalog.decrements, 1)
	assert.Equal(t, decrementCall{core.SetOnsite, 11, 2}, f.catalog.decrements[0])
	assert.Equal(t, models.ChangeServed, f.repo.onsiteStatuses[5])
	assert.Empty(t, f.publisher.published, "onsite transitions do not notify")
}

func TestUpdateOnsiteStatusSameStatusIsNoOp(t *testing.T) {
	f := newFixture()
	f.repo.onsite[5] = models.OnsiteOrder{ID: 5, ProductID: 11, Quantity: 2, ChangeStatus: models.ChangeServed}

	err := f.svc.UpdateOnsiteStatus(context.Background(), 5, "Served")
	require.NoError(t, err)
	assert.Empty(t, f.catalog.decrements, "a repeated Served must not decrement twice")
	assert.Empty(t, f.repo.onsiteStatuses)
}

func TestUpdateOnsiteStatusDecrementFailureKeepsStatus(t *testing.T) {
	f := newFixture()
	f.repo.onsite[5] = models.OnsiteOrder{ID: 5, ProductID: 11, Quantity: 2, ChangeStatus: models.ChangePending}
	f.catalog.decrementErr = core.ErrInsufficientStock

	err := f.svc.UpdateOnsiteStatus(context.Background(), 5, "Served")
	assert.ErrorIs(t, err, core.ErrInsufficientStock)
	assert.Empty(t, f.repo.onsiteStatuses)
}

func TestSearchRequiresQuery(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrValidation)
}
