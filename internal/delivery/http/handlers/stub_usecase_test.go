package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	orderdto "github.com/LavaJover/restaurant-orders/internal/usecase/dto/order"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// stubUsecase returns canned values and remembers the last inputs it saw.
type stubUsecase struct {
	orders  map[uint]*domain.Order
	stats   *domain.RevenueStats
	err     error
	itemOwn map[uint]uint

	created     *orderdto.CreateOrderInput
	updated     *orderdto.UpdateOrderInput
	updatedID   uint
	deletedID   uint
	deletedItem uint
	filter      *domain.OrderFilter
	listStatus  *domain.OrderStatus
}

func newStubUsecase() *stubUsecase {
	return &stubUsecase{
		orders:  map[uint]*domain.Order{},
		itemOwn: map[uint]uint{},
	}
}

func (s *stubUsecase) CreateOrder(_ context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	order := &domain.Order{ID: 1, TableNumber: input.TableNumber, Status: input.Status}
	for i, item := range input.Items {
		order.Items = append(order.Items, domain.Item{ID: uint(i + 1), OrderID: 1, Name: item.Name, Price: item.Price})
		order.TotalPrice = order.TotalPrice.Add(item.Price)
	}
	return order, nil
}

func (s *stubUsecase) UpdateOrder(_ context.Context, orderID uint, input *orderdto.UpdateOrderInput) (*domain.Order, error) {
	s.updatedID = orderID
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubUsecase) DeleteOrder(_ context.Context, orderID uint) error {
	if _, ok := s.orders[orderID]; !ok {
		return domain.ErrOrderNotFound
	}
	s.deletedID = orderID
	return nil
}

func (s *stubUsecase) DeleteItem(_ context.Context, itemID uint) (uint, error) {
	orderID, ok := s.itemOwn[itemID]
	if !ok {
		return 0, domain.ErrItemNotFound
	}
	s.deletedItem = itemID
	return orderID, nil
}

func (s *stubUsecase) GetOrderByID(_ context.Context, orderID uint) (*domain.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubUsecase) ListOrders(_ context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	s.listStatus = status
	return s.matching(domain.OrderFilter{Status: status}), nil
}

func (s *stubUsecase) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	s.filter = &filter
	return s.matching(filter), nil
}

func (s *stubUsecase) GetRevenueStats(context.Context) (*domain.RevenueStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func (s *stubUsecase) matching(filter domain.OrderFilter) []*domain.Order {
	out := []*domain.Order{}
	for id := uint(1); id <= uint(len(s.orders))+10; id++ {
		order, ok := s.orders[id]
		if !ok {
			continue
		}
		if filter.ID != nil && order.ID != *filter.ID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		out = append(out, order)
	}
	return out
}

func sampleOrder(id uint, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:          id,
		TableNumber: 3,
		Status:      status,
		TotalPrice:  decimal.RequireFromString("6.75"),
		Items: []domain.Item{
			{ID: 10, OrderID: id, Name: "Soup", Price: decimal.RequireFromString("5.50")},
			{ID: 11, OrderID: id, Name: "Bread", Price: decimal.RequireFromString("1.25")},
		},
	}
}

func newTestRouter(t *testing.T, uc *stubUsecase) http.Handler {
	t.Helper()
	templates, err := LoadTemplates()
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		Web:      NewOrderWebHandler(uc, templates, 1),
		API:      NewOrderAPIHandler(uc),
		Gatherer: prometheus.NewRegistry(),
	})
}
