package company

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

var (
	ErrCompanyIsNotConstructed = errors.New("Company must be created via NewCompany constructor")
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
)

// Company is a trading party. Orders and tenders reference companies by id
// only; a company must be Approved and classified for the role before it
// may trade in it.
type Company struct {
	id             kernel.UUID
	name           string
	classification Classification
	approval       Approval
	registeredAt   time.Time
	guard          guard.ConstructorGuard
}

// NewCompany registers a company awaiting approval.
func NewCompany(id kernel.UUID, name string, classification Classification) (*Company, error) {
	return RestoreCompany(id, name, classification, Pending, time.Now().UTC())
}

// RestoreCompany rebuilds a company loaded from storage.
func RestoreCompany(
	id kernel.UUID,
	name string,
	classification Classification,
	approval Approval,
	registeredAt time.Time,
) (*Company, error) {
	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = ErrNameIsRequired
	}

	if err := errors.Join(id.Validate(), nameErr, classification.Validate(), approval.Validate()); err != nil {
		return nil, err
	}

	return &Company{
		id:             id,
		name:           name,
		classification: classification,
		approval:       approval,
		registeredAt:   registeredAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c *Company) Validate() error {
	if c == nil {
		return ErrCompanyIsNotConstructed
	}
	return c.guard.Validate(ErrCompanyIsNotConstructed)
}

func (c *Company) ID() kernel.UUID {
	return c.id
}

func (c *Company) Name() string {
	return c.name
}

func (c *Company) Classification() Classification {
	return c.classification
}

func (c *Company) Approval() Approval {
	return c.approval
}

func (c *Company) RegisteredAt() time.Time {
	return c.registeredAt
}

// ChangeApproval applies an Approve, Reject or Deactivate decision taken by
// the portal.
func (c *Company) ChangeApproval(actor kernel.Actor, action statemachine.Action) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	next, err := approvalTable.Next(c.approval, action, actor.Role())
	if err != nil {
		return err
	}

	c.approval = next
	return nil
}

// CanTradeAs returns a validation error unless the company is Approved and
// classified for role.
func (c *Company) CanTradeAs(role kernel.Role) error {
	if c.approval != Approved {
		return errs.NewValueIsInvalidErrorWithCause(strings.ToLower(role.String())+"ID",
			fmt.Errorf("company %s is %s", c.id, c.approval))
	}
	if !c.classification.Covers(role) {
		return errs.NewValueIsInvalidErrorWithCause(strings.ToLower(role.String())+"ID",
			fmt.Errorf("company %s is classified %s and cannot act as %s", c.id, c.classification, role))
	}
	return nil
}
