package core

import (
	"context"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/models"
)

// WaitTime bounds every handler-scoped operation, in seconds.
const WaitTime = 10

// Product sets of the catalog; each one is backed by its own table on the
// product-service side.
const (
	SetOnline = "online"
	SetOnsite = "onsite"
)

type IOrderRepo interface {
	CreateOnline(ctx context.Context, order models.OnlineOrder) (int64, error)
	CreateOnsiteBatch(ctx context.Context, orders []models.OnsiteOrder) ([]int64, error)
	GetOnline(ctx context.Context, id int64) (models.OnlineOrder, error)
	GetOnsite(ctx context.Context, id int64) (models.OnsiteOrder, error)
	ListOnline(ctx context.Context) ([]models.OnlineOrder, error)
	ListOnsite(ctx context.Context) ([]models.OnsiteOrder, error)
	UpdateOnlineStatus(ctx context.Context, id int64, status models.OnlineStatus) error
	UpdateOnsiteStatus(ctx context.Context, id int64, status models.OnsiteStatus) error
	Search(ctx context.Context, query string) ([]dto.SearchRow, error)
	OnlineStatusByCustomer(ctx context.Context, customerName string) ([]dto.StatusRow, error)
	OnsiteStatusByTable(ctx context.Context, tableID string) ([]dto.StatusRow, error)
	Summary(ctx context.Context) (dto.AnalyticsSummary, error)
	OnlineProductsSold(ctx context.Context) ([]dto.ProductUnits, error)
	OnsiteProductsSold(ctx context.Context) ([]dto.ProductUnits, error)
}

// ICatalog is the product-service collaborator: name resolution and the
// atomic stock decrement.
type ICatalog interface {
	ResolveProductID(ctx context.Context, name, set string) (int64, error)
	DecrementStock(ctx context.Context, set string, productID int64, quantity int) error
}

// IDirectory is the customer-service collaborator.
type IDirectory interface {
	CustomerDetails(ctx context.Context, customerID int64) (models.CustomerDetails, error)
}

// IStatusPublisher delivers status-change events to the notifier. Publish
// failures are logged by the caller and never fail the status update.
type IStatusPublisher interface {
	PublishStatusUpdate(ctx context.Context, msg dto.StatusUpdateMessage) error
}
