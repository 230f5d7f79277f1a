package models

import (
	"fmt"
	"strings"
)

// OnlineStatus is the lifecycle of an online order line:
// Pending -> Preparing -> Delivered. Forward-only, Delivered is terminal.
type OnlineStatus string

const (
	StatusPending   OnlineStatus = "Pending"
	StatusPreparing OnlineStatus = "Preparing"
	StatusDelivered OnlineStatus = "Delivered"
)

var onlineRank = map[OnlineStatus]int{
	StatusPending:   0,
	StatusPreparing: 1,
	StatusDelivered: 2,
}

func ParseOnlineStatus(s string) (OnlineStatus, error) {
	status := OnlineStatus(s)
	if _, ok := onlineRank[status]; !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}

// CanAdvanceTo reports whether next is a strictly forward transition.
// Skipping Preparing is allowed; going back or leaving Delivered is not.
func (s OnlineStatus) CanAdvanceTo(next OnlineStatus) bool {
	return onlineRank[next] > onlineRank[s]
}

// OnsiteStatus is the change-status of an onsite order line:
// Pending -> Served, single hop, terminal.
type OnsiteStatus string

const (
	ChangePending OnsiteStatus = "Pending"
	ChangeServed  OnsiteStatus = "Served"
)

func ParseOnsiteStatus(s string) (OnsiteStatus, error) {
	switch OnsiteStatus(s) {
	case ChangePending, ChangeServed:
		return OnsiteStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s OnsiteStatus) CanAdvanceTo(next OnsiteStatus) bool {
	return s == ChangePending && next == ChangeServed
}

// Payment values are closed sets; unknown values are rejected at the API
// boundary instead of being stored as free text.
var paymentMethods = map[string]bool{
	"Cash on Delivery": true,
	"GCash":            true,
}

var paymentStatuses = map[string]bool{
	"Cash":             true,
	"GCash":            true,
	"Cash on Delivery": true,
}

func ValidPaymentMethod(s string) bool {
	return paymentMethods[s]
}

func ValidPaymentStatus(s string) bool {
	return paymentStatuses[s]
}

// FlatRateCategory marks categories billed per diner rather than per
// quantity, e.g. "Unlimited Rates".
func FlatRateCategory(category string) bool {
	return strings.HasPrefix(strings.ToLower(category), "unlimited")
}
