package ports

import (
	"context"

	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
)

type CompanyRepository interface {
	Add(ctx context.Context, aggregate *company.Company) error
	Update(ctx context.Context, aggregate *company.Company) error
	Get(ctx context.Context, id kernel.UUID) (*company.Company, error)
}
