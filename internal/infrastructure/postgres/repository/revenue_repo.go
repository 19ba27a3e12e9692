package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const revenueTotalsQuery = `
	SELECT COALESCE(SUM(total_price), 0) AS total_revenue,
	       COUNT(id)                     AS order_count
	FROM orders`

type revenueRow struct {
	TotalRevenue decimal.Decimal `db:"total_revenue"`
	OrderCount   int64           `db:"order_count"`
}

// DefaultRevenueRepository is the read side used for the revenue report.
type DefaultRevenueRepository struct {
	DB *sqlx.DB
}

func NewDefaultRevenueRepository(db *sqlx.DB) *DefaultRevenueRepository {
	return &DefaultRevenueRepository{DB: db}
}

func (r *DefaultRevenueRepository) RevenueTotals(ctx context.Context) (decimal.Decimal, int64, error) {
	var row revenueRow
	if err := r.DB.GetContext(ctx, &row, revenueTotalsQuery); err != nil {
		return decimal.Zero, 0, errors.Wrap(err, "query revenue totals")
	}
	return row.TotalRevenue, row.OrderCount, nil
}
