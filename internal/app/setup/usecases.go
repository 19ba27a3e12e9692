package setup

import (
	usecase "github.com/LavaJover/restaurant-orders/internal/usecase/order"
)

type UseCases struct {
	OrderUsecase usecase.OrderUsecase
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	orderUsecase := usecase.NewDefaultOrderUsecase(
		deps.Repositories.OrderRepo,
		deps.Repositories.RevenueRepo,
		deps.OrderMetrics,
	)

	return &UseCases{
		OrderUsecase: orderUsecase,
	}
}
