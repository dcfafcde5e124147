// Package companyrepo persists the company aggregate with GORM.
package companyrepo

import (
	"time"

	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CompanyDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Classification int       `gorm:"type:smallint;not null"`
	Approval       int       `gorm:"type:smallint;not null"`
	RegisteredAt   time.Time `gorm:"not null"`
}

func (CompanyDTO) TableName() string {
	return "companies"
}

func fromDomain(c *company.Company) CompanyDTO {
	return CompanyDTO{
		ID:             c.ID().Bytes(),
		Name:           c.Name(),
		Classification: int(c.Classification()),
		Approval:       int(c.Approval()),
		RegisteredAt:   c.RegisteredAt(),
	}
}

func toDomain(dto CompanyDTO) (*company.Company, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return company.RestoreCompany(
		id,
		dto.Name,
		company.Classification(dto.Classification),
		company.Approval(dto.Approval),
		dto.RegisteredAt.UTC(),
	)
}
