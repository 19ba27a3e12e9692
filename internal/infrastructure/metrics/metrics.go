package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics содержит все метрики для заказов
type OrderMetrics struct {
	// Созданные заказы
	OrdersCreatedTotal       *prometheus.CounterVec
	OrdersCreatedAmountTotal prometheus.Counter

	// Изменения и удаления
	OrdersUpdatedTotal     prometheus.Counter
	OrdersDeletedTotal     prometheus.Counter
	OrderItemsDeletedTotal prometheus.Counter

	// Сверка позиций при редактировании
	OrderItemsReconciledTotal *prometheus.CounterVec

	// Ошибки
	OrderErrorsTotal *prometheus.CounterVec
}

// NewOrderMetrics registers the order collectors on reg.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	factory := promauto.With(reg)

	return &OrderMetrics{
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Общее количество созданных заказов",
			},
			[]string{"status"},
		),

		OrdersCreatedAmountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_created_amount_total",
				Help: "Общая сумма заказов на момент создания",
			},
		),

		OrdersUpdatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_updated_total",
				Help: "Количество отредактированных заказов",
			},
		),

		OrdersDeletedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_deleted_total",
				Help: "Количество удаленных заказов",
			},
		),

		OrderItemsDeletedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "order_items_deleted_total",
				Help: "Количество позиций, удаленных по одной",
			},
		),

		OrderItemsReconciledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_items_reconciled_total",
				Help: "Позиции, созданные/измененные/удаленные при сверке",
			},
			[]string{"action"},
		),

		OrderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_errors_total",
				Help: "Общее количество ошибок при обработке заказов",
			},
			[]string{"operation", "error_type"},
		),
	}
}

// RecordOrderCreated записывает созданный заказ
func (m *OrderMetrics) RecordOrderCreated(status string, itemCount int, total float64) {
	m.OrdersCreatedTotal.WithLabelValues(status).Inc()
	m.OrdersCreatedAmountTotal.Add(total)
	m.OrderItemsReconciledTotal.WithLabelValues("create").Add(float64(itemCount))
}

// RecordOrderUpdated записывает результат сверки позиций
func (m *OrderMetrics) RecordOrderUpdated(created, updated, deleted int) {
	m.OrdersUpdatedTotal.Inc()
	m.OrderItemsReconciledTotal.WithLabelValues("create").Add(float64(created))
	m.OrderItemsReconciledTotal.WithLabelValues("update").Add(float64(updated))
	m.OrderItemsReconciledTotal.WithLabelValues("delete").Add(float64(deleted))
}

func (m *OrderMetrics) RecordOrderDeleted() {
	m.OrdersDeletedTotal.Inc()
}

func (m *OrderMetrics) RecordItemDeleted() {
	m.OrderItemsDeletedTotal.Inc()
}

// RecordError записывает ошибку
func (m *OrderMetrics) RecordError(operation, errorType string) {
	m.OrderErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// HTTPMetrics covers every request served by the web and API routers.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)

	return &HTTPMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Количество HTTP запросов",
			},
			[]string{"method", "route", "code"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Время обработки HTTP запроса в секундах",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms, 10ms, 20ms...
			},
			[]string{"method", "route"},
		),
	}
}

func (m *HTTPMetrics) RecordRequest(method, route string, code int, durationSeconds float64) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}
