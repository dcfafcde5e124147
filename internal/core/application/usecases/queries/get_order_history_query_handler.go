package queries

import (
	"context"
	"time"

	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/result"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type OrderHistoryEntryResponse struct {
	Seq     int       `json:"seq"`
	ActorID string    `json:"actorId"`
	Kind    string    `json:"kind"`
	LineID  string    `json:"lineId,omitempty"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

type historyRow struct {
	Seq     int           `db:"seq"`
	ActorID uuid.UUID     `db:"actor_id"`
	Kind    int           `db:"kind"`
	LineID  uuid.NullUUID `db:"line_id"`
	Note    string        `db:"note"`
	At      time.Time     `db:"at"`
}

type GetOrderHistoryQueryHandler struct {
	db *sqlx.DB
}

func NewGetOrderHistoryQueryHandler(db *sqlx.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the audit trail of an order in the order it was written.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) (result.Envelope[[]OrderHistoryEntryResponse], error) {
	if err := query.Validate(); err != nil {
		return result.Envelope[[]OrderHistoryEntryResponse]{}, err
	}

	entries, err := h.history(ctx, query)
	return result.Wrap("order history", entries, err)
}

func (h GetOrderHistoryQueryHandler) history(ctx context.Context, query GetOrderHistoryQuery) ([]OrderHistoryEntryResponse, error) {
	orderID := query.OrderID().String()

	var exists bool
	if err := h.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID); err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}

	rows := make([]historyRow, 0)
	err := h.db.SelectContext(ctx, &rows, `
		SELECT seq, actor_id, kind, line_id, note, at
		FROM order_history
		WHERE order_id = $1
		ORDER BY seq`, orderID)
	if err != nil {
		return nil, err
	}

	entries := make([]OrderHistoryEntryResponse, 0, len(rows))
	for _, r := range rows {
		e := OrderHistoryEntryResponse{
			Seq:     r.Seq,
			ActorID: r.ActorID.String(),
			Kind:    order.HistoryKind(r.Kind).String(),
			Note:    r.Note,
			At:      r.At.UTC(),
		}
		if r.LineID.Valid {
			e.LineID = r.LineID.UUID.String()
		}
		entries = append(entries, e)
	}

	return entries, nil
}
