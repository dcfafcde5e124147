// Package orderrepo maps the order aggregate, its lines and its history to
// relational tables.
package orderrepo

import (
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Type       int          `gorm:"column:order_type;type:smallint;not null"`
	CustomerID uuid.UUID    `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Status     int          `gorm:"type:smallint;not null"`
	CreatedAt  time.Time    `gorm:"not null"`
	Lines      []LineDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History    []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LineDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position      int             `gorm:"not null"`
	MaterialID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Price         decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Status        int             `gorm:"type:smallint;not null"`
	LastActor     int             `gorm:"type:smallint;not null"`
	RevisionCount int             `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

// HistoryDTO rows are keyed by their position in the order's history and
// never rewritten.
type HistoryDTO struct {
	OrderID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq     int        `gorm:"primaryKey;autoIncrement:false"`
	ActorID uuid.UUID  `gorm:"type:uuid;not null"`
	Kind    int        `gorm:"type:smallint;not null"`
	LineID  *uuid.UUID `gorm:"type:uuid"`
	Note    string     `gorm:"not null"`
	At      time.Time  `gorm:"not null"`
}

func (HistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	lines := make([]LineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, LineDTO{
			ID:            l.ID().Bytes(),
			OrderID:       orderID,
			Position:      i,
			MaterialID:    l.MaterialID().Bytes(),
			Quantity:      l.Quantity(),
			Price:         l.Price(),
			Status:        int(l.Status()),
			LastActor:     int(l.LastActor()),
			RevisionCount: l.RevisionCount(),
		})
	}

	history := make([]HistoryDTO, 0, len(o.History()))
	for i, h := range o.History() {
		var lineID *uuid.UUID
		if id := h.LineID(); id != nil {
			raw := id.Bytes()
			lineID = &raw
		}

		history = append(history, HistoryDTO{
			OrderID: orderID,
			Seq:     i,
			ActorID: h.ActorID().Bytes(),
			Kind:    int(h.Kind()),
			LineID:  lineID,
			Note:    h.Note(),
			At:      h.At(),
		})
	}

	return OrderDTO{
		ID:         orderID,
		Type:       int(o.Type()),
		CustomerID: o.CustomerID().Bytes(),
		SupplierID: o.SupplierID().Bytes(),
		Status:     int(o.Status()),
		CreatedAt:  o.CreatedAt(),
		Lines:      lines,
		History:    history,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		l, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		h, historyErr := historyToDomain(historyDTO)
		if historyErr != nil {
			return nil, historyErr
		}
		history = append(history, h)
	}

	return order.RestoreOrder(
		id,
		order.Type(dto.Type),
		customerID,
		supplierID,
		order.Status(dto.Status),
		lines,
		history,
		dto.CreatedAt.UTC(),
	)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	materialID, err := kernel.UUIDFromBytes(dto.MaterialID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(
		id,
		materialID,
		dto.Quantity,
		dto.Price,
		order.LineStatus(dto.Status),
		kernel.Role(dto.LastActor),
		dto.RevisionCount,
	)
}

func historyToDomain(dto HistoryDTO) (order.HistoryEntry, error) {
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	var lineID *kernel.UUID
	if dto.LineID != nil {
		id, lineErr := kernel.UUIDFromBytes((*dto.LineID)[:])
		if lineErr != nil {
			return order.HistoryEntry{}, lineErr
		}
		lineID = &id
	}

	return order.RestoreHistoryEntry(actorID, order.HistoryKind(dto.Kind), lineID, dto.Note, dto.At.UTC())
}
