// Package tenderrepo persists tenders together with their invitees, bids
// and bid lines.
package tenderrepo

import (
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/tender"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TenderDTO struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID    `gorm:"type:uuid;not null"`
	Type         int          `gorm:"column:tender_type;type:smallint;not null"`
	Title        string       `gorm:"type:varchar(255);not null"`
	Status       int          `gorm:"type:smallint;not null"`
	CancelReason string       `gorm:"not null"`
	CreatedAt    time.Time    `gorm:"not null"`
	Invitees     []InviteeDTO `gorm:"foreignKey:TenderID;constraint:OnDelete:CASCADE"`
	Bids         []BidDTO     `gorm:"foreignKey:TenderID;constraint:OnDelete:CASCADE"`
}

func (TenderDTO) TableName() string {
	return "tenders"
}

type InviteeDTO struct {
	TenderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"not null"`
}

func (InviteeDTO) TableName() string {
	return "tender_invitees"
}

type BidDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	TenderID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	SupplierID  uuid.UUID    `gorm:"type:uuid;not null"`
	Position    int          `gorm:"not null"`
	Status      int          `gorm:"type:smallint;not null"`
	SubmittedAt *time.Time
	Lines       []BidLineDTO `gorm:"foreignKey:BidID;constraint:OnDelete:CASCADE"`
}

func (BidDTO) TableName() string {
	return "bids"
}

type BidLineDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BidID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Price      decimal.Decimal `gorm:"type:numeric(20,6);not null"`
	Status     int             `gorm:"type:smallint;not null"`
}

func (BidLineDTO) TableName() string {
	return "bid_lines"
}

func fromDomain(t *tender.Tender) TenderDTO {
	tenderID := t.ID().Bytes()

	invitees := make([]InviteeDTO, 0, len(t.Invitees()))
	for i, supplierID := range t.Invitees() {
		invitees = append(invitees, InviteeDTO{
			TenderID:   tenderID,
			SupplierID: supplierID.Bytes(),
			Position:   i,
		})
	}

	bids := make([]BidDTO, 0, len(t.Bids()))
	for i, b := range t.Bids() {
		bids = append(bids, bidFromDomain(b, i))
	}

	return TenderDTO{
		ID:           tenderID,
		CustomerID:   t.CustomerID().Bytes(),
		Type:         int(t.Type()),
		Title:        t.Title(),
		Status:       int(t.Status()),
		CancelReason: t.CancelReason(),
		CreatedAt:    t.CreatedAt(),
		Invitees:     invitees,
		Bids:         bids,
	}
}

func bidFromDomain(b *tender.Bid, position int) BidDTO {
	bidID := b.ID().Bytes()

	var submittedAt *time.Time
	if at := b.SubmittedAt(); !at.IsZero() {
		submittedAt = &at
	}

	lines := make([]BidLineDTO, 0, len(b.Lines()))
	for i, l := range b.Lines() {
		lines = append(lines, BidLineDTO{
			ID:         l.ID().Bytes(),
			BidID:      bidID,
			Position:   i,
			MaterialID: l.MaterialID().Bytes(),
			Quantity:   l.Quantity(),
			Price:      l.Price(),
			Status:     int(l.Status()),
		})
	}

	return BidDTO{
		ID:          bidID,
		TenderID:    b.TenderID().Bytes(),
		SupplierID:  b.SupplierID().Bytes(),
		Position:    position,
		Status:      int(b.Status()),
		SubmittedAt: submittedAt,
		Lines:       lines,
	}
}

func toDomain(dto TenderDTO) (*tender.Tender, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	invitees := make([]kernel.UUID, 0, len(dto.Invitees))
	for _, inv := range dto.Invitees {
		supplierID, invErr := kernel.UUIDFromBytes(inv.SupplierID[:])
		if invErr != nil {
			return nil, invErr
		}
		invitees = append(invitees, supplierID)
	}

	bids := make([]*tender.Bid, 0, len(dto.Bids))
	for _, bidDTO := range dto.Bids {
		b, bidErr := bidToDomain(bidDTO)
		if bidErr != nil {
			return nil, bidErr
		}
		bids = append(bids, b)
	}

	return tender.RestoreTender(
		id,
		customerID,
		tender.Type(dto.Type),
		dto.Title,
		tender.Status(dto.Status),
		invitees,
		bids,
		dto.CancelReason,
		dto.CreatedAt.UTC(),
	)
}

func bidToDomain(dto BidDTO) (*tender.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenderID, err := kernel.UUIDFromBytes(dto.TenderID[:])
	if err != nil {
		return nil, err
	}

	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*tender.BidLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		l, lineErr := bidLineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}

	var submittedAt time.Time
	if dto.SubmittedAt != nil {
		submittedAt = dto.SubmittedAt.UTC()
	}

	return tender.RestoreBid(id, tenderID, supplierID, tender.BidStatus(dto.Status), lines, submittedAt)
}

func bidLineToDomain(dto BidLineDTO) (*tender.BidLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	materialID, err := kernel.UUIDFromBytes(dto.MaterialID[:])
	if err != nil {
		return nil, err
	}

	return tender.RestoreBidLine(id, materialID, dto.Quantity, dto.Price, tender.BidLineStatus(dto.Status))
}
