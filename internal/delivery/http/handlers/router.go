package handlers

import (
	"net/http"

	"github.com/LavaJover/restaurant-orders/internal/delivery/http/middleware"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Web         *OrderWebHandler
	API         *OrderAPIHandler
	HTTPMetrics *metrics.HTTPMetrics
	// Gatherer backs /metrics. nil means the default registry.
	Gatherer prometheus.Gatherer
	// Health answers /healthz. nil means always ok.
	Health func(r *http.Request) error
}

func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	web := deps.Web
	r.HandleFunc("/", web.Index).Methods(http.MethodGet)
	r.HandleFunc("/order/create/", web.CreateForm).Methods(http.MethodGet)
	r.HandleFunc("/order/create/", web.Create).Methods(http.MethodPost)
	r.HandleFunc("/order/{id:[0-9]+}", web.Details).Methods(http.MethodGet)
	r.HandleFunc("/order/{id:[0-9]+}/update", web.UpdateForm).Methods(http.MethodGet)
	r.HandleFunc("/order/{id:[0-9]+}/update", web.Update).Methods(http.MethodPost)
	r.HandleFunc("/order/{id:[0-9]+}/delete", web.DeleteConfirm).Methods(http.MethodGet)
	r.HandleFunc("/order/{id:[0-9]+}/delete", web.Delete).Methods(http.MethodPost)
	r.HandleFunc("/order/item/{id:[0-9]+}/delete", web.DeleteItem).Methods(http.MethodPost)
	r.HandleFunc("/search/", web.Search).Methods(http.MethodGet)
	r.HandleFunc("/revenue/", web.Revenue).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/orders/", deps.API.List).Methods(http.MethodGet)
	api.HandleFunc("/orders/", deps.API.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}/", deps.API.Retrieve).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}/", deps.API.Update).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}/", deps.API.PartialUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/orders/{id}/", deps.API.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/revenue/", deps.API.Revenue).Methods(http.MethodGet)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz(deps.Health)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(web.NotFound)

	return middleware.RequestID(middleware.Logging(r))
}

func healthz(check func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
