package usecase

import (
	"errors"

	"github.com/LavaJover/restaurant-orders/internal/domain"
)

// recordOrderCreatedMetrics - вызывается при создании заказа
func (uc *DefaultOrderUsecase) recordOrderCreatedMetrics(order *domain.Order) {
	if uc.Metrics == nil {
		return
	}

	total, _ := order.TotalPrice.Float64()
	uc.Metrics.RecordOrderCreated(string(order.Status), len(order.Items), total)
}

func (uc *DefaultOrderUsecase) recordOrderUpdatedMetrics(plan ItemPlan) {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordOrderUpdated(len(plan.ToCreate), len(plan.ToUpdate), len(plan.ToDelete))
}

func (uc *DefaultOrderUsecase) recordOrderDeletedMetrics() {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordOrderDeleted()
}

func (uc *DefaultOrderUsecase) recordItemDeletedMetrics() {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordItemDeleted()
}

// recordOrderErrorMetrics - записывает ошибку
func (uc *DefaultOrderUsecase) recordOrderErrorMetrics(operation string, err error) {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordError(operation, errorType(err))
}

func errorType(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrItemNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
