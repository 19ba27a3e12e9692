package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory OrderRepository. A transaction works on a copy of
// the state and only publishes it on Commit, so Rollback discards everything.
type fakeStore struct {
	mu          sync.Mutex
	orders      map[uint]*domain.Order
	nextOrderID uint
	nextItemID  uint

	// saveErr makes SaveOrder fail, after the item changes were applied.
	saveErr error
	commits int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:      map[uint]*domain.Order{},
		nextOrderID: 1,
		nextItemID:  1,
	}
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.Item{}, o.Items...)
	sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].ID < c.Items[j].ID })
	return &c
}

func cloneOrders(in map[uint]*domain.Order) map[uint]*domain.Order {
	out := make(map[uint]*domain.Order, len(in))
	for id, o := range in {
		out[id] = cloneOrder(o)
	}
	return out
}

func (s *fakeStore) BeginTx(context.Context) (domain.OrderTxRepository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &fakeTx{
		store:       s,
		orders:      cloneOrders(s.orders),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
	}, nil
}

func (s *fakeStore) GetOrderByID(_ context.Context, orderID uint) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (s *fakeStore) ListOrders(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Order
	for _, o := range s.orders {
		if filter.ID != nil && o.ID != *filter.ID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) DeleteOrder(_ context.Context, orderID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[orderID]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(s.orders, orderID)
	return nil
}

func (s *fakeStore) RevenueTotals(context.Context) (decimal.Decimal, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, o := range s.orders {
		total = total.Add(o.TotalPrice)
	}
	return total, int64(len(s.orders)), nil
}

func (s *fakeStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, o := range s.orders {
		n += len(o.Items)
	}
	return n
}

type fakeTx struct {
	store       *fakeStore
	orders      map[uint]*domain.Order
	nextOrderID uint
	nextItemID  uint
	done        bool
}

func (t *fakeTx) CreateOrder(order *domain.Order) error {
	order.ID = t.nextOrderID
	t.nextOrderID++
	for i := range order.Items {
		order.Items[i].ID = t.nextItemID
		order.Items[i].OrderID = order.ID
		t.nextItemID++
	}
	t.orders[order.ID] = cloneOrder(order)
	return nil
}

func (t *fakeTx) LockOrder(orderID uint) (*domain.Order, error) {
	o, ok := t.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (t *fakeTx) SaveOrder(order *domain.Order) error {
	if t.store.saveErr != nil {
		return t.store.saveErr
	}
	o, ok := t.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.TableNumber = order.TableNumber
	o.Status = order.Status
	o.TotalPrice = order.TotalPrice
	return nil
}

func (t *fakeTx) GetItemByID(itemID uint) (*domain.Item, error) {
	for _, o := range t.orders {
		for _, it := range o.Items {
			if it.ID == itemID {
				item := it
				return &item, nil
			}
		}
	}
	return nil, domain.ErrItemNotFound
}

func (t *fakeTx) CreateItems(items []domain.Item) ([]domain.Item, error) {
	created := make([]domain.Item, 0, len(items))
	for _, it := range items {
		o, ok := t.orders[it.OrderID]
		if !ok {
			return nil, domain.ErrOrderNotFound
		}
		it.ID = t.nextItemID
		t.nextItemID++
		o.Items = append(o.Items, it)
		created = append(created, it)
	}
	return created, nil
}

func (t *fakeTx) UpdateItems(items []domain.Item) error {
	for _, it := range items {
		o, ok := t.orders[it.OrderID]
		if !ok {
			continue
		}
		for i := range o.Items {
			if o.Items[i].ID == it.ID {
				o.Items[i].Name = it.Name
				o.Items[i].Price = it.Price
			}
		}
	}
	return nil
}

func (t *fakeTx) DeleteItems(orderID uint, itemIDs []uint) error {
	o, ok := t.orders[orderID]
	if !ok {
		return nil
	}
	drop := make(map[uint]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}
	kept := o.Items[:0]
	for _, it := range o.Items {
		if !drop[it.ID] {
			kept = append(kept, it)
		}
	}
	o.Items = kept
	return nil
}

func (t *fakeTx) FindItemOwners(itemIDs []uint) (map[uint]uint, error) {
	want := make(map[uint]bool, len(itemIDs))
	for _, id := range itemIDs {
		want[id] = true
	}
	owners := map[uint]uint{}
	for _, o := range t.orders {
		for _, it := range o.Items {
			if want[it.ID] {
				owners[it.ID] = o.ID
			}
		}
	}
	return owners, nil
}

func (t *fakeTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.orders = t.orders
	t.store.nextOrderID = t.nextOrderID
	t.store.nextItemID = t.nextItemID
	t.store.commits++
	t.done = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.done = true
	return nil
}
