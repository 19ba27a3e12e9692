package usecase

import (
	"sort"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
)

// NewItem is a submitted line that has to be inserted. ClaimedID keeps the id
// the client sent, if any, so ownership can be checked before insert.
type NewItem struct {
	Position  int
	ClaimedID uint
	Name      string
	Price     decimal.Decimal
}

// ItemPlan is the diff that brings an order's persisted items in line with a
// submission.
type ItemPlan struct {
	ToCreate []NewItem
	ToUpdate []domain.Item
	ToDelete []uint
}

func (p ItemPlan) Empty() bool {
	return len(p.ToCreate) == 0 && len(p.ToUpdate) == 0 && len(p.ToDelete) == 0
}

// ClaimedIDs lists ids sent by the client that do not belong to the order.
func (p ItemPlan) ClaimedIDs() []uint {
	var ids []uint
	for _, item := range p.ToCreate {
		if item.ClaimedID != 0 {
			ids = append(ids, item.ClaimedID)
		}
	}
	return ids
}

// Reconcile diffs submitted lines against the order's existing items.
//
// A line whose id is one of the existing items updates that item; when the
// same id is submitted more than once the last occurrence wins. Lines without
// an id, or with an id the order does not own, are created. Existing items
// not referenced by any line are deleted.
func Reconcile(orderID uint, existing []domain.Item, submitted []orderdto.ItemInput) ItemPlan {
	existingByID := make(map[uint]domain.Item, len(existing))
	for _, item := range existing {
		existingByID[item.ID] = item
	}

	var plan ItemPlan
	updateIdx := make(map[uint]int)

	for pos, line := range submitted {
		if line.ID != nil {
			if current, ok := existingByID[*line.ID]; ok {
				current.Name = line.Name
				current.Price = line.Price
				current.OrderID = orderID
				if idx, seen := updateIdx[current.ID]; seen {
					plan.ToUpdate[idx] = current
				} else {
					updateIdx[current.ID] = len(plan.ToUpdate)
					plan.ToUpdate = append(plan.ToUpdate, current)
				}
				continue
			}
		}

		newItem := NewItem{Position: pos, Name: line.Name, Price: line.Price}
		if line.ID != nil {
			newItem.ClaimedID = *line.ID
		}
		plan.ToCreate = append(plan.ToCreate, newItem)
	}

	for _, item := range existing {
		if _, kept := updateIdx[item.ID]; !kept {
			plan.ToDelete = append(plan.ToDelete, item.ID)
		}
	}

	return plan
}

// resultingItems is the item set after the plan is applied, ordered by id.
func resultingItems(plan ItemPlan, created []domain.Item) []domain.Item {
	items := make([]domain.Item, 0, len(plan.ToUpdate)+len(created))
	items = append(items, plan.ToUpdate...)
	items = append(items, created...)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
