package dto

import "time"

type OnlineOrderRequest struct {
	CustomerID    int64   `json:"customerId"`
	Address       string  `json:"address"`
	ContactNumber string  `json:"contact_number"`
	Category      string  `json:"category"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"` // unit price; the service computes the extended total
	PaymentMethod string  `json:"payment_method"`
}

type OnlineOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

type OnsiteItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"` // unit price
	Category string  `json:"category"`
}

type OnsiteOrderRequest struct {
	CustomerName    string       `json:"customer_name"`
	TableID         string       `json:"table_id"`
	NumberOfPersons int          `json:"number_of_persons"`
	PaymentStatus   string       `json:"payment_status"`
	Items           []OnsiteItem `json:"items"`
}

type OnsiteOrderResponse struct {
	Message     string  `json:"message"`
	OrderID     int64   `json:"order_id"`
	AllOrderIDs []int64 `json:"all_order_ids"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// StatusRow backs the client-side polling endpoints.
type StatusRow struct {
	ID        int64     `json:"id"`
	Status    string    `json:"status"`
	OrderedAt time.Time `json:"ordered_at"`
}

// SearchRow is a union row over both order tables, tagged with its origin.
type SearchRow struct {
	Type         string    `json:"type"` // "online" or "onsite"
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	OrderedAt    time.Time `json:"ordered_at"`
}

type AnalyticsSummary struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
}

type ProductUnits struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

// StatusUpdateMessage is published to the status fanout exchange whenever an
// online order actually transitions; the notification subscriber turns it
// into a customer email.
type StatusUpdateMessage struct {
	OrderID       int64     `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	Timestamp     time.Time `json:"timestamp"`
}
