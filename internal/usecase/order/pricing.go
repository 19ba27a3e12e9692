package usecase

import (
	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/shopspring/decimal"
)

// NUMERIC(10,2) в таблице orders
var maxOrderTotal = decimal.NewFromInt(100000000)

// ComputeTotal sums item prices. An empty set costs 0.00.
func ComputeTotal(items []domain.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total.Round(2)
}

// averageBill guards the zero-order case and rounds half away from zero,
// which is half-up for non-negative totals.
func averageBill(total decimal.Decimal, orderCount int64) decimal.Decimal {
	if orderCount == 0 {
		return decimal.Zero.Round(2)
	}
	return total.DivRound(decimal.NewFromInt(orderCount), 2)
}

func checkOrderTotal(total decimal.Decimal) error {
	if total.LessThan(maxOrderTotal) {
		return nil
	}
	verr := domain.NewValidationError()
	verr.Add("items", "Ensure the order total has no more than 8 digits before the decimal point.")
	return verr
}
