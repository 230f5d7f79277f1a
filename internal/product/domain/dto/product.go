package dto

type ProductRequest struct {
	Name         string  `json:"name"`
	CategoryName string  `json:"category_name"`
	Stock        *int    `json:"stock"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
}

type DecrementRequest struct {
	Quantity int `json:"quantity"`
}

type DecrementResponse struct {
	Message  string `json:"message"`
	NewStock int    `json:"new_stock"`
}

type ProductCounts struct {
	OnlineItems int `json:"onlineItems"`
	OnsiteItems int `json:"onsiteItems"`
}
