package models

import (
	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderModel struct {
	ID          uint               `gorm:"primaryKey"`
	TableNumber int                `gorm:"not null"`
	Status      domain.OrderStatus `gorm:"type:varchar(100);not null;default:'в ожидании';index:idx_orders_status"`
	TotalPrice  decimal.Decimal    `gorm:"type:numeric(10,2);not null;default:0"`
	Items       []ItemModel        `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type ItemModel struct {
	ID      uint            `gorm:"primaryKey"`
	Item    string          `gorm:"column:item;type:varchar(255);not null"`
	Price   decimal.Decimal `gorm:"type:numeric(7,2);not null;default:0"`
	OrderID uint            `gorm:"not null;index:idx_items_order_id"`
}

func (ItemModel) TableName() string {
	return "items"
}
