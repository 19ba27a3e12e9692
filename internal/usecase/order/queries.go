package usecase

import (
	"context"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/pkg/errors"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID uint) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "get order %d", orderID)
	}
	return order, nil
}

// ListOrders returns every order, or only those in status when it is set.
func (uc *DefaultOrderUsecase) ListOrders(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	return uc.SearchOrders(ctx, domain.OrderFilter{Status: status})
}

// SearchOrders never fails on an unknown id; it just finds nothing.
func (uc *DefaultOrderUsecase) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	orders, err := uc.OrderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (uc *DefaultOrderUsecase) GetRevenueStats(ctx context.Context) (*domain.RevenueStats, error) {
	total, count, err := uc.RevenueRepo.RevenueTotals(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "revenue totals")
	}

	return &domain.RevenueStats{
		TotalRevenue: total.Round(2),
		OrderCount:   count,
		AverageBill:  averageBill(total, count),
	}, nil
}
