package models

// CustomerDetails is what the order service snapshots onto new orders.
type CustomerDetails struct {
	Name  string `json:"customer_name"`
	Email string `json:"customer_email"`
}

// DailyRegistrations is one dashboard data point: how many customers signed
// up on a given day.
type DailyRegistrations struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
