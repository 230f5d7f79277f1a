package models

import "time"

// OnlineOrder is one row of order_history_online: a single cart line of an
// online checkout. Customer name and email are snapshots taken from the
// customer directory at creation time; later profile changes do not rewrite
// order history.
type OnlineOrder struct {
	ID            int64        `json:"id"`
	CustomerID    int64        `json:"customer_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	Address       string       `json:"address"`
	ContactNumber string       `json:"contact_number"`
	Category      string       `json:"category"`
	ProductName   string       `json:"product_name"`
	ProductID     int64        `json:"product_id"`
	Quantity      int          `json:"quantity"`
	Price         float64      `json:"price"` // extended: unit price x quantity
	PaymentMethod string       `json:"payment_method"`
	Status        OnlineStatus `json:"status"`
	OrderedAt     time.Time    `json:"ordered_at"`
}

// OnsiteOrder is one row of order_history_onsite: a single line of one
// table's order event. All lines of a checkout are inserted in one
// transaction.
type OnsiteOrder struct {
	ID              int64        `json:"id"`
	TableID         string       `json:"table_id"`
	CustomerName    string       `json:"customer_name"`
	NumberOfPersons int          `json:"number_of_persons"`
	Category        string       `json:"category"`
	ProductName     string       `json:"product_name"`
	ProductID       int64        `json:"product_id"`
	Quantity        int          `json:"quantity"`
	Price           float64      `json:"price"` // computed line total
	PaymentStatus   string       `json:"payment_status"`
	ChangeStatus    OnsiteStatus `json:"change_status"`
	OrderedAt       time.Time    `json:"ordered_at"`
}

// CustomerDetails is the slice of the customer directory the order service
// snapshots onto new online orders.
type CustomerDetails struct {
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
}
