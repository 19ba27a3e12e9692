package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "в ожидании"
	StatusReady   OrderStatus = "готов"
	StatusPaid    OrderStatus = "оплачен"
)

var orderStatuses = []OrderStatus{StatusPending, StatusReady, StatusPaid}

// алиасы для API-клиентов, которые не шлют кириллицу
var statusAliases = map[string]OrderStatus{
	"pending": StatusPending,
	"ready":   StatusReady,
	"paid":    StatusPaid,
}

// OrderStatuses returns every persisted status in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the human readable form shown in the web UI.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "В ожидании"
	case StatusReady:
		return "Готов"
	case StatusPaid:
		return "Оплачен"
	}
	return string(s)
}

// ParseOrderStatus accepts the internal value in any case or one of the
// english aliases and returns the internal value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := statusAliases[normalized]; ok {
		return alias, nil
	}
	status := OrderStatus(normalized)
	if !status.Valid() {
		return "", fmt.Errorf("%q is not a valid choice", raw)
	}
	return status, nil
}

type Order struct {
	ID          uint
	TableNumber int
	Status      OrderStatus
	TotalPrice  decimal.Decimal
	Items       []Item
}

type Item struct {
	ID      uint
	OrderID uint
	Name    string
	Price   decimal.Decimal
}

// OrderFilter combines its non-nil fields with AND.
type OrderFilter struct {
	ID     *uint
	Status *OrderStatus
}

type RevenueStats struct {
	TotalRevenue decimal.Decimal
	OrderCount   int64
	AverageBill  decimal.Decimal
}
