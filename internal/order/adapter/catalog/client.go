// Package catalog is the HTTP client for the product service: product-id
// resolution by name and the atomic stock decrement.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/pkg/logger"
)

type Client struct {
	baseURL string
	hc      *http.Client
	mylog   *logger.Logger
}

func New(baseURL string, mylog *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: core.WaitTime * time.Second},
		mylog:   mylog,
	}
}

type searchResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ResolveProductID searches the catalog by name and returns the id of the
// exact-name match within the given set. A reachable catalog with no match
// is ErrProductNotFound; everything else is ErrDependency.
func (c *Client) ResolveProductID(ctx context.Context, name, set string) (int64, error) {
	endpoint := fmt.Sprintf("%s/products/search?q=%s", c.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrDependency, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: product search: %v", core.ErrDependency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: product search returned %d", core.ErrDependency, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, fmt.Errorf("%w: decode product search: %v", core.ErrDependency, err)
	}

	for _, p := range results {
		if p.Name == name && p.Type == set {
			return p.ID, nil
		}
	}
	return 0, core.ErrProductNotFound
}

// DecrementStock asks the catalog to atomically subtract quantity from the
// product's stock. The catalog rejects a decrement below zero with 400.
func (c *Client) DecrementStock(ctx context.Context, set string, productID int64, quantity int) error {
	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrDependency, err)
	}

	endpoint := fmt.Sprintf("%s/products/%s/%d", c.baseURL, set, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrDependency, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: stock decrement: %v", core.ErrDependency, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: product %d", core.ErrInsufficientStock, productID)
	case http.StatusNotFound:
		return fmt.Errorf("%w: product %d", core.ErrProductNotFound, productID)
	default:
		return fmt.Errorf("%w: stock decrement returned %d", core.ErrDependency, resp.StatusCode)
	}
}
