package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	BeginTx(ctx context.Context) (OrderTxRepository, error)
	GetOrderByID(ctx context.Context, orderID uint) (*Order, error)
	// ListOrders returns orders with their items attached, ordered by id.
	ListOrders(ctx context.Context, filter OrderFilter) ([]*Order, error)
	DeleteOrder(ctx context.Context, orderID uint) error
}

// OrderTxRepository runs every call inside one database transaction.
// Exactly one of Commit or Rollback must be called.
type OrderTxRepository interface {
	CreateOrder(order *Order) error
	LockOrder(orderID uint) (*Order, error)
	SaveOrder(order *Order) error
	GetItemByID(itemID uint) (*Item, error)
	CreateItems(items []Item) ([]Item, error)
	UpdateItems(items []Item) error
	DeleteItems(orderID uint, itemIDs []uint) error
	// FindItemOwners maps each existing item id to its order id; unknown ids are absent.
	FindItemOwners(itemIDs []uint) (map[uint]uint, error)
	Commit() error
	Rollback() error
}

type RevenueRepository interface {
	RevenueTotals(ctx context.Context) (total decimal.Decimal, orderCount int64, err error)
}
