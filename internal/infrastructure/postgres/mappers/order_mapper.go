package mappers

import (
	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	items := make([]domain.Item, 0, len(model.Items))
	for i := range model.Items {
		items = append(items, *ToDomainItem(&model.Items[i]))
	}

	return &domain.Order{
		ID:          model.ID,
		TableNumber: model.TableNumber,
		Status:      model.Status,
		TotalPrice:  model.TotalPrice,
		Items:       items,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	items := make([]models.ItemModel, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, *ToGORMItem(&order.Items[i]))
	}

	return &models.OrderModel{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		Status:      order.Status,
		TotalPrice:  order.TotalPrice,
		Items:       items,
	}
}

func ToDomainItem(model *models.ItemModel) *domain.Item {
	return &domain.Item{
		ID:      model.ID,
		OrderID: model.OrderID,
		Name:    model.Item,
		Price:   model.Price,
	}
}

func ToGORMItem(item *domain.Item) *models.ItemModel {
	return &models.ItemModel{
		ID:      item.ID,
		OrderID: item.OrderID,
		Item:    item.Name,
		Price:   item.Price,
	}
}
