package setup

import (
	"net/http"

	"github.com/LavaJover/restaurant-orders/internal/delivery/grpcapi"
	"github.com/LavaJover/restaurant-orders/internal/delivery/http/handlers"
	"github.com/pkg/errors"
)

type Servers struct {
	HTTP *http.Server
	GRPC *grpcapi.HealthServer
}

func InitializeServers(deps *Dependencies, ucs *UseCases) (*Servers, error) {
	templates, err := handlers.LoadTemplates()
	if err != nil {
		return nil, errors.Wrap(err, "load templates")
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Web:         handlers.NewOrderWebHandler(ucs.OrderUsecase, templates, deps.Config.Web.ExtraBlankRows),
		API:         handlers.NewOrderAPIHandler(ucs.OrderUsecase),
		HTTPMetrics: deps.HTTPMetrics,
		Gatherer:    deps.Registry,
		Health: func(r *http.Request) error {
			return deps.ReportingDB.PingContext(r.Context())
		},
	})

	cfg := deps.Config.HTTPServer
	return &Servers{
		HTTP: &http.Server{
			Addr:         deps.Config.HTTPAddr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		GRPC: grpcapi.NewHealthServer(),
	}, nil
}
