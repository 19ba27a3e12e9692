package setup

import (
	"github.com/LavaJover/restaurant-orders/internal/config"
	"github.com/LavaJover/restaurant-orders/internal/domain"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/metrics"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/migrate"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/postgres"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/postgres/repository"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.OrderConfig
	DB           *gorm.DB
	ReportingDB  *sqlx.DB
	Registry     *prometheus.Registry
	OrderMetrics *metrics.OrderMetrics
	HTTPMetrics  *metrics.HTTPMetrics
	Repositories *Repositories
}

type Repositories struct {
	OrderRepo   domain.OrderRepository
	RevenueRepo domain.RevenueRepository
}

func InitializeDependencies(cfg *config.OrderConfig) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init db")
	}

	if cfg.OrderDB.AutoMigrate {
		if err := migrate.RunMigrations(db, cfg.OrderDB.MigrationsPath); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	reportingDB, err := postgres.NewReportingDB(db)
	if err != nil {
		return nil, errors.Wrap(err, "reporting db")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	repos := &Repositories{
		OrderRepo:   repository.NewDefaultOrderRepository(db),
		RevenueRepo: repository.NewDefaultRevenueRepository(reportingDB),
	}

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		ReportingDB:  reportingDB,
		Registry:     registry,
		OrderMetrics: metrics.NewOrderMetrics(registry),
		HTTPMetrics:  metrics.NewHTTPMetrics(registry),
		Repositories: repos,
	}, nil
}

// Close releases the connection pool shared by gorm and sqlx.
func (d *Dependencies) Close() {
	sqlDB, err := d.DB.DB()
	if err != nil {
		log.WithError(err).Error("get sql.DB for close")
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("close database")
	}
}
