package orderdto

import (
	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/shopspring/decimal"
)

// ItemInput is one submitted line. ID is set when the line refers to an
// already persisted item.
type ItemInput struct {
	ID    *uint
	Name  string
	Price decimal.Decimal
}

type CreateOrderInput struct {
	TableNumber int
	// пустой статус -> в ожидании
	Status domain.OrderStatus
	Items  []ItemInput
}

type UpdateOrderInput struct {
	TableNumber *int
	Status      *domain.OrderStatus
	// SyncItems reconciles the persisted items against Items. When false
	// the item set is left as is.
	SyncItems bool
	Items     []ItemInput
}
