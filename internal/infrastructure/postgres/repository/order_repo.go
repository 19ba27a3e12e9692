package repository

import (
	"context"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/postgres/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

// позиции всегда отдаём по возрастанию id
func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("items.id ASC")
}

func (r *DefaultOrderRepository) BeginTx(ctx context.Context) (domain.OrderTxRepository, error) {
	tx := r.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "begin transaction")
	}
	return &orderTxRepository{tx: tx}, nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID uint) (*domain.Order, error) {
	var order models.OrderModel
	err := r.DB.WithContext(ctx).
		Preload("Items", preloadItems).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "get order")
	}

	return mappers.ToDomainOrder(&order), nil
}

// ListOrders loads items for the whole page with a single extra query.
func (r *DefaultOrderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	query := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Preload("Items", preloadItems)

	// Применяем фильтры
	if filter.ID != nil {
		query = query.Where("orders.id = ?", *filter.ID)
	}
	if filter.Status != nil {
		query = query.Where("orders.status = ?", *filter.Status)
	}

	var orderModels []models.OrderModel
	if err := query.Order("orders.id ASC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "find orders")
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

// DeleteOrder removes the order and its items in one transaction. Items are
// deleted explicitly, not left to the FK cascade.
func (r *DefaultOrderRepository) DeleteOrder(ctx context.Context, orderID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.ItemModel{}).Error; err != nil {
			return errors.Wrap(err, "delete order items")
		}

		res := tx.Delete(&models.OrderModel{}, orderID)
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete order")
		}
		if res.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
}

type orderTxRepository struct {
	tx *gorm.DB
}

func (r *orderTxRepository) CreateOrder(order *domain.Order) error {
	model := mappers.ToGORMOrder(order)
	// позиции вставляются через ассоциацию Items
	if err := r.tx.Create(model).Error; err != nil {
		return errors.Wrap(err, "insert order")
	}

	order.ID = model.ID
	for i := range order.Items {
		order.Items[i].ID = model.Items[i].ID
		order.Items[i].OrderID = model.ID
	}
	return nil
}

// LockOrder reads the order row FOR UPDATE together with its items.
func (r *orderTxRepository) LockOrder(orderID uint) (*domain.Order, error) {
	var order models.OrderModel
	err := r.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "lock order")
	}

	if err := r.tx.Where("order_id = ?", orderID).Order("id ASC").Find(&order.Items).Error; err != nil {
		return nil, errors.Wrap(err, "load order items")
	}

	return mappers.ToDomainOrder(&order), nil
}

func (r *orderTxRepository) SaveOrder(order *domain.Order) error {
	err := r.tx.Model(&models.OrderModel{ID: order.ID}).
		Updates(map[string]interface{}{
			"table_number": order.TableNumber,
			"status":       order.Status,
			"total_price":  order.TotalPrice,
		}).Error
	if err != nil {
		return errors.Wrap(err, "save order")
	}
	return nil
}

func (r *orderTxRepository) GetItemByID(itemID uint) (*domain.Item, error) {
	var item models.ItemModel
	if err := r.tx.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, errors.Wrap(err, "get item")
	}
	return mappers.ToDomainItem(&item), nil
}

func (r *orderTxRepository) CreateItems(items []domain.Item) ([]domain.Item, error) {
	itemModels := make([]models.ItemModel, len(items))
	for i := range items {
		itemModels[i] = *mappers.ToGORMItem(&items[i])
	}

	if err := r.tx.Create(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "insert items")
	}

	created := make([]domain.Item, len(itemModels))
	for i := range itemModels {
		created[i] = *mappers.ToDomainItem(&itemModels[i])
	}
	return created, nil
}

func (r *orderTxRepository) UpdateItems(items []domain.Item) error {
	for _, item := range items {
		err := r.tx.Model(&models.ItemModel{}).
			Where("id = ? AND order_id = ?", item.ID, item.OrderID).
			Updates(map[string]interface{}{
				"item":  item.Name,
				"price": item.Price,
			}).Error
		if err != nil {
			return errors.Wrapf(err, "update item %d", item.ID)
		}
	}
	return nil
}

func (r *orderTxRepository) DeleteItems(orderID uint, itemIDs []uint) error {
	err := r.tx.Where("order_id = ? AND id IN ?", orderID, itemIDs).
		Delete(&models.ItemModel{}).Error
	if err != nil {
		return errors.Wrap(err, "delete items")
	}
	return nil
}

func (r *orderTxRepository) FindItemOwners(itemIDs []uint) (map[uint]uint, error) {
	var rows []struct {
		ID      uint
		OrderID uint
	}
	err := r.tx.Model(&models.ItemModel{}).
		Select("id, order_id").
		Where("id IN ?", itemIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "find item owners")
	}

	owners := make(map[uint]uint, len(rows))
	for _, row := range rows {
		owners[row.ID] = row.OrderID
	}
	return owners, nil
}

func (r *orderTxRepository) Commit() error {
	return r.tx.Commit().Error
}

func (r *orderTxRepository) Rollback() error {
	return r.tx.Rollback().Error
}
