// Package directory is the HTTP client for the customer service. Per the
// workflow contract an unknown customer id and an unreachable directory are
// the same failure class: the checkout aborts before anything is written.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Kennyy02/Samgyupmasaya/internal/order/app/core"
	"github.com/Kennyy02/Samgyupmasaya/internal/order/domain/models"
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

func (c *Client) CustomerDetails(ctx context.Context, customerID int64) (models.CustomerDetails, error) {
	endpoint := fmt.Sprintf("%s/customer/%d/details", c.baseURL, customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.CustomerDetails{}, fmt.Errorf("%w: %v", core.ErrDependency, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return models.CustomerDetails{}, fmt.Errorf("%w: customer lookup: %v", core.ErrDependency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.CustomerDetails{}, fmt.Errorf("%w: customer lookup returned %d", core.ErrDependency, resp.StatusCode)
	}

	var details models.CustomerDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return models.CustomerDetails{}, fmt.Errorf("%w: decode customer details: %v", core.ErrDependency, err)
	}
	return details, nil
}
