package usecase

import (
	"context"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}

	items := make([]domain.Item, 0, len(input.Items))
	for _, line := range input.Items {
		items = append(items, domain.Item{Name: line.Name, Price: line.Price})
	}

	order := &domain.Order{
		TableNumber: input.TableNumber,
		Status:      status,
		TotalPrice:  ComputeTotal(items),
		Items:       items,
	}

	err := checkOrderTotal(order.TotalPrice)
	if err == nil {
		err = uc.withTx(ctx, func(txRepo domain.OrderTxRepository) error {
			return txRepo.CreateOrder(order)
		})
	}
	if err != nil {
		uc.recordOrderErrorMetrics("create", err)
		return nil, errors.Wrap(err, "create order")
	}

	uc.recordOrderCreatedMetrics(order)
	uc.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"table_number": order.TableNumber,
		"items":        len(order.Items),
		"total_price":  order.TotalPrice.StringFixed(2),
	}).Info("order created")

	return order, nil
}
