package models

import (
	"fmt"
	"time"
)

// Set selects which catalog a request targets. The two sets live in separate
// tables and never mix; parsing up front keeps table names out of request
// data entirely.
type Set string

const (
	SetOnline Set = "online"
	SetOnsite Set = "onsite"
)

func ParseSet(s string) (Set, error) {
	switch Set(s) {
	case SetOnline, SetOnsite:
		return Set(s), nil
	}
	return "", fmt.Errorf("unknown product set %q", s)
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CategoryID   *int64    `json:"category_id,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	Stock        int       `json:"stock"`
	Price        float64   `json:"price"`
	Description  *string   `json:"description,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchResult is what the order service consumes when resolving product
// references: id, exact name and the set the product belongs to.
type SearchResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
