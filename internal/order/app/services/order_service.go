package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/dto"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/models"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

// OrderService is the order workflow engine: it validates checkout requests,
// resolves customer and product references through the two collaborating
// services, persists order lines and drives the status state machine with
// its stock and notification side effects.
type OrderService struct {
	orderRepo core.IOrderRepo
	catalog   core.ICatalog
	directory core.IDirectory
	publisher core.IStatusPublisher
	mylog     *logger.Logger
}

func NewOrderService(
	orderRepo core.IOrderRepo,
	catalog core.ICatalog,
	directory core.IDirectory,
	publisher core.IStatusPublisher,
	mylog *logger.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		catalog:   catalog,
		directory: directory,
		publisher: publisher,
		mylog:     mylog,
	}
}

// PlaceOnlineOrder resolves the customer and product references, then inserts
// a single order line with status Pending. The stored price is the extended
// total (unit price x quantity); the request carries the unit price. Customer
// name and email are copied onto the row as a historical snapshot.
func (s *OrderService) PlaceOnlineOrder(ctx context.Context, req dto.OnlineOrderRequest) (int64, error) {
	if err := s.ValidateOnlineOrder(req); err != nil {
		return 0, err
	}

	customer, err := s.directory.CustomerDetails(ctx, req.CustomerID)
	if err != nil {
		s.mylog.Error("", "customer_lookup_failed", "Failed to resolve customer details", err)
		return 0, fmt.Errorf("failed to place order: %w", err)
	}

	productID, err := s.catalog.ResolveProductID(ctx, req.ProductName, core.SetOnline)
	if err != nil {
		s.mylog.Error("", "product_lookup_failed", "Failed to resolve product id", err)
		return 0, err
	}

	order := models.OnlineOrder{
		CustomerID:    req.CustomerID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Category:      req.Category,
		ProductName:   req.ProductName,
		ProductID:     productID,
		Quantity:      req.Quantity,
		Price:         req.Price * float64(req.Quantity),
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
	}

	id, err := s.orderRepo.CreateOnline(ctx, order)
	if err != nil {
		s.mylog.Error("", "online_order_insert_failed", "Failed to save online order", err)
		return 0, fmt.Errorf("failed to place order: %w", err)
	}

	s.mylog.Info("", "online_order_created", fmt.Sprintf("Online order %d created for customer %d", id, req.CustomerID))
	return id, nil
}

// PlaceOnsiteOrder persists every line of one table's checkout atomically.
// All product references are resolved before the transaction begins so no
// lock is held across a network call; any unresolved product aborts the
// whole checkout.
func (s *OrderService) PlaceOnsiteOrder(ctx context.Context, req dto.OnsiteOrderRequest) ([]int64, error) {
	if err := s.ValidateOnsiteOrder(req); err != nil {
		return nil, err
	}

	orders := make([]models.OnsiteOrder, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := s.catalog.ResolveProductID(ctx, item.Name, core.SetOnsite)
		if err != nil {
			if errors.Is(err, core.ErrProductNotFound) {
				s.mylog.Warn("", "onsite_product_missing", fmt.Sprintf("Product %q not in onsite catalog, aborting checkout", item.Name))
				return nil, fmt.Errorf("product %q: %w", item.Name, core.ErrProductNotFound)
			}
			s.mylog.Error("", "product_lookup_failed", "Failed to resolve product id", err)
			return nil, err
		}

		total := item.Price * float64(item.Quantity)
		if models.FlatRateCategory(item.Category) {
			// Flat-rate categories bill per diner, independent of the
			// line's own quantity.
			total = item.Price * float64(req.NumberOfPersons)
		}

		orders = append(orders, models.OnsiteOrder{
			TableID:         req.TableID,
			CustomerName:    req.CustomerName,
			NumberOfPersons: req.NumberOfPersons,
			Category:        item.Category,
			ProductName:     item.Name,
			ProductID:       productID,
			Quantity:        item.Quantity,
			Price:           total,
			PaymentStatus:   req.PaymentStatus,
			ChangeStatus:    models.ChangePending,
		})
	}

	ids, err := s.orderRepo.CreateOnsiteBatch(ctx, orders)
	if err != nil {
		s.mylog.Error("", "onsite_order_insert_failed", "Onsite checkout rolled back", err)
		return nil, fmt.Errorf("failed to place onsite order, nothing was saved: %w", err)
	}

	s.mylog.Info("", "onsite_order_created", fmt.Sprintf("Onsite order for table %s created with %d lines", req.TableID, len(ids)))
	return ids, nil
}

// UpdateOnlineStatus advances one online order through
// Pending -> Preparing -> Delivered. A request for the current status is an
// idempotent no-op that fires no side effects; a backward request is
// rejected. On the transition to Delivered the stock decrement runs first
// and the status is only persisted once it succeeded, so a sold-out product
// never ends up behind a Delivered order.
func (s *OrderService) UpdateOnlineStatus(ctx context.Context, id int64, target string) error {
	next, err := models.ParseOnlineStatus(target)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}

	order, err := s.orderRepo.GetOnline(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == next {
		s.mylog.Debug("", "status_unchanged", fmt.Sprintf("Online order %d already %s", id, next))
		return nil
	}
	if order.Status == models.StatusDelivered {
		return fmt.Errorf("%w: order %d", core.ErrOrderDelivered, id)
	}
	if !order.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, order.Status, next)
	}

	if next == models.StatusDelivered {
		if err := s.catalog.DecrementStock(ctx, core.SetOnline, order.ProductID, order.Quantity); err != nil {
			s.mylog.Error("", "stock_decrement_failed", fmt.Sprintf("Stock decrement for product %d failed, order %d stays %s", order.ProductID, id, order.Status), err)
			return err
		}
	}

	if err := s.orderRepo.UpdateOnlineStatus(ctx, id, next); err != nil {
		return err
	}

	s.notify(ctx, dto.StatusUpdateMessage{
		OrderID:       id,
		CustomerEmail: order.CustomerEmail,
		OldStatus:     string(order.Status),
		NewStatus:     string(next),
		Timestamp:     time.Now().UTC(),
	})

	s.mylog.Info("", "online_status_updated", fmt.Sprintf("Online order %d: %s -> %s", id, order.Status, next))
	return nil
}

// UpdateOnsiteStatus moves an onsite line from Pending to Served. The stock
// decrement is coupled server-side and runs before the status write.
func (s *OrderService) UpdateOnsiteStatus(ctx context.Context, id int64, target string) error {
	next, err := models.ParseOnsiteStatus(target)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}

	order, err := s.orderRepo.GetOnsite(ctx, id)
	if err != nil {
		return err
	}

	if order.ChangeStatus == next {
		s.mylog.Debug("", "status_unchanged", fmt.Sprintf("Onsite order %d already %s", id, next))
		return nil
	}
	if !order.ChangeStatus.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", core.ErrInvalidTransition, order.ChangeStatus, next)
	}

	if err := s.catalog.DecrementStock(ctx, core.SetOnsite, order.ProductID, order.Quantity); err != nil {
		s.mylog.Error("", "stock_decrement_failed", fmt.Sprintf("Stock decrement for product %d failed, order %d stays %s", order.ProductID, id, order.ChangeStatus), err)
		return err
	}

	if err := s.orderRepo.UpdateOnsiteStatus(ctx, id, next); err != nil {
		return err
	}

	s.mylog.Info("", "onsite_status_updated", fmt.Sprintf("Onsite order %d: %s -> %s", id, order.ChangeStatus, next))
	return nil
}

// notify publishes the status change for the email subscriber. Failures are
// logged only: the status write has already committed and notification is
// fire-and-forget.
func (s *OrderService) notify(ctx context.Context, msg dto.StatusUpdateMessage) {
	if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
		s.mylog.Error("", "notification_publish_failed", fmt.Sprintf("Failed to publish status update for order %d", msg.OrderID), err)
	}
}

func (s *OrderService) ListOnline(ctx context.Context) ([]models.OnlineOrder, error) {
	return s.orderRepo.ListOnline(ctx)
}

func (s *OrderService) ListOnsite(ctx context.Context) ([]models.OnsiteOrder, error) {
	return s.orderRepo.ListOnsite(ctx)
}

func (s *OrderService) Search(ctx context.Context, query string) ([]dto.SearchRow, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query 'q' is required", core.ErrValidation)
	}
	return s.orderRepo.Search(ctx, query)
}

func (s *OrderService) OnlineStatusByCustomer(ctx context.Context, customerName string) ([]dto.StatusRow, error) {
	return s.orderRepo.OnlineStatusByCustomer(ctx, customerName)
}

func (s *OrderService) OnsiteStatusByTable(ctx context.Context, tableID string) ([]dto.StatusRow, error) {
	return s.orderRepo.OnsiteStatusByTable(ctx, tableID)
}

func (s *OrderService) Summary(ctx context.Context) (dto.AnalyticsSummary, error) {
	return s.orderRepo.Summary(ctx)
}

func (s *OrderService) OnlineProductsSold(ctx context.Context) ([]dto.ProductUnits, error) {
	return s.orderRepo.OnlineProductsSold(ctx)
}

func (s *OrderService) OnsiteProductsSold(ctx context.Context) ([]dto.ProductUnits, error) {
	return s.orderRepo.OnsiteProductsSold(ctx)
}

// ValidateOnlineOrder checks the checkout request before any lookup or write.
func (s *OrderService) ValidateOnlineOrder(req dto.OnlineOrderRequest) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId", core.ErrFieldIsEmpty)
	}
	for field, value := range map[string]string{
		"address":        req.Address,
		"contact_number": req.ContactNumber,
		"category":       req.Category,
		"product_name":   req.ProductName,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s", core.ErrFieldIsEmpty, field)
		}
	}
	if req.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", core.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", core.ErrValidation)
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", core.ErrValidation, req.PaymentMethod)
	}
	return nil
}

// ValidateOnsiteOrder checks a table checkout before product resolution.
func (s *OrderService) ValidateOnsiteOrder(req dto.OnsiteOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customer_name", core.ErrFieldIsEmpty)
	}
	if strings.TrimSpace(req.TableID) == "" {
		return fmt.Errorf("%w: table_id", core.ErrFieldIsEmpty)
	}
	if req.NumberOfPersons <= 0 {
		return fmt.Errorf("%w: number_of_persons must be positive", core.ErrValidation)
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		return fmt.Errorf("%w: unknown payment status %q", core.ErrValidation, req.PaymentStatus)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items", core.ErrFieldIsEmpty)
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d name", core.ErrFieldIsEmpty, i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", core.ErrValidation, i+1)
		}
		if item.Price <= 0 {
			return fmt.Errorf("%w: item %d price must be positive", core.ErrValidation, i+1)
		}
	}
	return nil
}
