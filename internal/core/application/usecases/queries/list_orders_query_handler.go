package queries

import (
	"context"
	"time"

	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/result"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderSummaryResponse struct {
	ID         string          `json:"id"`
	Type       string          `json:"orderType"`
	CustomerID string          `json:"customerId"`
	SupplierID string          `json:"supplierId"`
	Status     int             `json:"status"`
	StatusName string          `json:"statusName"`
	LineCount  int             `json:"lineCount"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type orderSummaryRow struct {
	ID         uuid.UUID       `db:"id"`
	Type       int             `db:"order_type"`
	CustomerID uuid.UUID       `db:"customer_id"`
	SupplierID uuid.UUID       `db:"supplier_id"`
	Status     int             `db:"status"`
	LineCount  int             `db:"line_count"`
	Total      decimal.Decimal `db:"total"`
	CreatedAt  time.Time       `db:"created_at"`
}

type ListOrdersQueryHandler struct {
	db *sqlx.DB
}

func NewListOrdersQueryHandler(db *sqlx.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the newest orders first. Total is the sum of quantity times
// price over the current terms of every line.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (result.Envelope[[]OrderSummaryResponse], error) {
	if err := query.Validate(); err != nil {
		return result.Envelope[[]OrderSummaryResponse]{}, err
	}

	var status *int
	if s := query.Status(); s != nil {
		v := int(*s)
		status = &v
	}

	rows := make([]orderSummaryRow, 0)
	err := h.db.SelectContext(ctx, &rows, `
		SELECT
			o.id,
			o.order_type,
			o.customer_id,
			o.supplier_id,
			o.status,
			o.created_at,
			COUNT(l.id) AS line_count,
			COALESCE(SUM(l.quantity * l.price), 0) AS total
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE (o.customer_id = $1 OR o.supplier_id = $1)
			AND ($2::smallint IS NULL OR o.status = $2::smallint)
		GROUP BY o.id
		ORDER BY o.created_at DESC, o.id`,
		query.CompanyID().String(), status,
	)
	if err != nil {
		return result.Envelope[[]OrderSummaryResponse]{}, err
	}

	orders := make([]OrderSummaryResponse, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, OrderSummaryResponse{
			ID:         r.ID.String(),
			Type:       order.Type(r.Type).String(),
			CustomerID: r.CustomerID.String(),
			SupplierID: r.SupplierID.String(),
			Status:     r.Status,
			StatusName: order.Status(r.Status).String(),
			LineCount:  r.LineCount,
			Total:      r.Total,
			CreatedAt:  r.CreatedAt.UTC(),
		})
	}

	return result.OK("orders listed", orders), nil
}
