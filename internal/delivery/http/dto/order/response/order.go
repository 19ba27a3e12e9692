package response

import "github.com/LavaJover/restaurant-orders/internal/domain"

type ItemResponse struct {
	ID    uint   `json:"id"`
	Item  string `json:"item"`
	Price string `json:"price"`
}

// OrderResponse is the retrieve shaped payload returned by every order
// endpoint.
type OrderResponse struct {
	ID          uint           `json:"id"`
	TableNumber int            `json:"table_number"`
	Status      string         `json:"status"`
	TotalPrice  string         `json:"total_price"`
	Items       []ItemResponse `json:"items"`
}

type RevenueResponse struct {
	TotalRevenue string `json:"total_revenue"`
	OrderCount   int64  `json:"order_count"`
	AverageBill  string `json:"average_bill"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemResponse{
			ID:    item.ID,
			Item:  item.Name,
			Price: item.Price.StringFixed(2),
		})
	}

	return OrderResponse{
		ID:          order.ID,
		TableNumber: order.TableNumber,
		Status:      string(order.Status),
		TotalPrice:  order.TotalPrice.StringFixed(2),
		Items:       items,
	}
}

func NewOrderListResponse(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}

func NewRevenueResponse(stats *domain.RevenueStats) RevenueResponse {
	return RevenueResponse{
		TotalRevenue: stats.TotalRevenue.StringFixed(2),
		OrderCount:   stats.OrderCount,
		AverageBill:  stats.AverageBill.StringFixed(2),
	}
}
