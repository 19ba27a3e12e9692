package usecase

import (
	"context"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (uc *DefaultOrderUsecase) DeleteOrder(ctx context.Context, orderID uint) error {
	if err := uc.OrderRepo.DeleteOrder(ctx, orderID); err != nil {
		uc.recordOrderErrorMetrics("delete", err)
		return errors.Wrapf(err, "delete order %d", orderID)
	}

	uc.recordOrderDeletedMetrics()
	uc.logger.WithField("order_id", orderID).Info("order deleted")
	return nil
}

// DeleteItem removes a single item and re-derives the owning order's total.
func (uc *DefaultOrderUsecase) DeleteItem(ctx context.Context, itemID uint) (uint, error) {
	var order *domain.Order

	err := uc.withTx(ctx, func(txRepo domain.OrderTxRepository) error {
		item, err := txRepo.GetItemByID(itemID)
		if err != nil {
			return err
		}

		// заказ блокируем раньше позиции, как и в UpdateOrder
		order, err = txRepo.LockOrder(item.OrderID)
		if err != nil {
			return err
		}

		remaining := make([]domain.Item, 0, len(order.Items))
		found := false
		for _, it := range order.Items {
			if it.ID == itemID {
				found = true
				continue
			}
			remaining = append(remaining, it)
		}
		if !found {
			// позицию удалили между чтением и блокировкой
			return domain.ErrItemNotFound
		}

		if err := txRepo.DeleteItems(order.ID, []uint{itemID}); err != nil {
			return err
		}
		order.Items = remaining
		order.TotalPrice = ComputeTotal(remaining)
		return txRepo.SaveOrder(order)
	})
	if err != nil {
		uc.recordOrderErrorMetrics("delete_item", err)
		return 0, errors.Wrapf(err, "delete item %d", itemID)
	}

	uc.recordItemDeletedMetrics()
	uc.logger.WithFields(log.Fields{
		"item_id":     itemID,
		"order_id":    order.ID,
		"total_price": order.TotalPrice.StringFixed(2),
	}).Info("order item deleted")

	return order.ID, nil
}
