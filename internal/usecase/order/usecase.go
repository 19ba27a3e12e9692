package usecase

import (
	"context"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/metrics"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	log "github.com/sirupsen/logrus"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID uint, input *orderdto.UpdateOrderInput) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uint) error
	// DeleteItem returns the id of the order the item belonged to.
	DeleteItem(ctx context.Context, itemID uint) (uint, error)

	GetOrderByID(ctx context.Context, orderID uint) (*domain.Order, error)
	ListOrders(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	GetRevenueStats(ctx context.Context) (*domain.RevenueStats, error)
}

type DefaultOrderUsecase struct {
	OrderRepo   domain.OrderRepository
	RevenueRepo domain.RevenueRepository
	Metrics     *metrics.OrderMetrics
	logger      *log.Entry
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	revenueRepo domain.RevenueRepository,
	orderMetrics *metrics.OrderMetrics,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		OrderRepo:   orderRepo,
		RevenueRepo: revenueRepo,
		Metrics:     orderMetrics,
		logger:      log.WithField("component", "order_usecase"),
	}
}

// withTx runs fn inside a repository transaction and commits when fn
// returns nil. Anything else rolls back.
func (uc *DefaultOrderUsecase) withTx(ctx context.Context, fn func(txRepo domain.OrderTxRepository) error) error {
	txRepo, err := uc.OrderRepo.BeginTx(ctx)
	if err != nil {
		return err
	}

	var committed bool
	defer func() {
		if !committed {
			if rollbackErr := txRepo.Rollback(); rollbackErr != nil {
				uc.logger.WithError(rollbackErr).Error("failed to rollback transaction")
			}
		}
	}()

	if err := fn(txRepo); err != nil {
		return err
	}
	if err := txRepo.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
