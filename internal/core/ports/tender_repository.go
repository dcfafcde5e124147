package ports

import (
	"context"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/tender"
)

// TenderRepository persists tenders together with their invitees, bids and
// bid lines.
type TenderRepository interface {
	Add(ctx context.Context, aggregate *tender.Tender) error
	Update(ctx context.Context, aggregate *tender.Tender) error

	// Get loads and locks a tender, like OrderRepository.Get.
	Get(ctx context.Context, id kernel.UUID) (*tender.Tender, error)

	// GetByBid loads and locks the tender owning bidID.
	GetByBid(ctx context.Context, bidID kernel.UUID) (*tender.Tender, error)
}
