package usecase

import (
	"context"
	"fmt"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// UpdateOrder applies header changes and, when requested, reconciles the item
// set. The total is re-derived from the resulting items in the same
// transaction.
func (uc *DefaultOrderUsecase) UpdateOrder(ctx context.Context, orderID uint, input *orderdto.UpdateOrderInput) (*domain.Order, error) {
	var (
		order *domain.Order
		plan  ItemPlan
	)

	err := uc.withTx(ctx, func(txRepo domain.OrderTxRepository) error {
		var err error
		order, err = txRepo.LockOrder(orderID)
		if err != nil {
			return err
		}

		if input.TableNumber != nil {
			order.TableNumber = *input.TableNumber
		}
		if input.Status != nil {
			order.Status = *input.Status
		}

		if input.SyncItems {
			plan = Reconcile(order.ID, order.Items, input.Items)
			if err := checkClaimedItems(txRepo, order.ID, plan); err != nil {
				return err
			}
			items, err := applyItemPlan(txRepo, order.ID, plan)
			if err != nil {
				return err
			}
			order.Items = items
		}

		order.TotalPrice = ComputeTotal(order.Items)
		if err := checkOrderTotal(order.TotalPrice); err != nil {
			return err
		}
		return txRepo.SaveOrder(order)
	})
	if err != nil {
		uc.recordOrderErrorMetrics("update", err)
		return nil, errors.Wrapf(err, "update order %d", orderID)
	}

	uc.recordOrderUpdatedMetrics(plan)
	uc.logger.WithFields(log.Fields{
		"order_id":      order.ID,
		"status":        order.Status,
		"items_created": len(plan.ToCreate),
		"items_updated": len(plan.ToUpdate),
		"items_deleted": len(plan.ToDelete),
		"total_price":   order.TotalPrice.StringFixed(2),
	}).Info("order updated")

	return order, nil
}

// checkClaimedItems rejects submitted ids that belong to a different order.
// Ids that do not exist at all are created as new items.
func checkClaimedItems(txRepo domain.OrderTxRepository, orderID uint, plan ItemPlan) error {
	claimed := plan.ClaimedIDs()
	if len(claimed) == 0 {
		return nil
	}

	owners, err := txRepo.FindItemOwners(claimed)
	if err != nil {
		return err
	}

	verr := domain.NewValidationError()
	for _, item := range plan.ToCreate {
		if item.ClaimedID == 0 {
			continue
		}
		if owner, ok := owners[item.ClaimedID]; ok && owner != orderID {
			verr.Add(
				fmt.Sprintf("items[%d].id", item.Position),
				fmt.Sprintf("item %d belongs to order %d", item.ClaimedID, owner),
			)
		}
	}
	return verr.OrNil()
}

func applyItemPlan(txRepo domain.OrderTxRepository, orderID uint, plan ItemPlan) ([]domain.Item, error) {
	if plan.Empty() {
		return []domain.Item{}, nil
	}
	if len(plan.ToDelete) > 0 {
		if err := txRepo.DeleteItems(orderID, plan.ToDelete); err != nil {
			return nil, err
		}
	}
	if len(plan.ToUpdate) > 0 {
		if err := txRepo.UpdateItems(plan.ToUpdate); err != nil {
			return nil, err
		}
	}

	var created []domain.Item
	if len(plan.ToCreate) > 0 {
		toInsert := make([]domain.Item, 0, len(plan.ToCreate))
		for _, item := range plan.ToCreate {
			toInsert = append(toInsert, domain.Item{OrderID: orderID, Name: item.Name, Price: item.Price})
		}
		var err error
		created, err = txRepo.CreateItems(toInsert)
		if err != nil {
			return nil, err
		}
	}

	return resultingItems(plan, created), nil
}
