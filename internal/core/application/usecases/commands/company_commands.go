package commands

import (
	"errors"
	"fmt"
	"strings"

	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/guard"
)

var (
	ErrRegisterCompanyCommandIsNotConstructed = errors.New(
		"RegisterCompanyCommand must be created via NewRegisterCompanyCommand constructor",
	)
	ErrChangeCompanyApprovalCommandIsNotConstructed = errors.New(
		"ChangeCompanyApprovalCommand must be created via NewChangeCompanyApprovalCommand constructor",
	)
)

// RegisterCompanyCommand enrolls a company. New companies wait in Pending
// until the portal approves them.
type RegisterCompanyCommand struct {
	companyID      kernel.UUID
	name           string
	classification company.Classification

	guard guard.ConstructorGuard
}

func NewRegisterCompanyCommand(
	companyID kernel.UUID,
	name string,
	classification company.Classification,
) (RegisterCompanyCommand, error) {
	if err := errors.Join(
		requiredID("companyID", companyID),
		requiredString("name", name),
		classification.Validate(),
	); err != nil {
		return RegisterCompanyCommand{}, err
	}

	return RegisterCompanyCommand{
		companyID:      companyID,
		name:           strings.TrimSpace(name),
		classification: classification,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterCompanyCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCompanyCommandIsNotConstructed)
}

func (c RegisterCompanyCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c RegisterCompanyCommand) Name() string {
	return c.name
}

func (c RegisterCompanyCommand) Classification() company.Classification {
	return c.classification
}

// ChangeCompanyApprovalCommand applies Approve, Reject or Deactivate to a
// company's approval state.
type ChangeCompanyApprovalCommand struct {
	companyID kernel.UUID
	actor     kernel.Actor
	action    statemachine.Action

	guard guard.ConstructorGuard
}

func NewChangeCompanyApprovalCommand(
	companyID kernel.UUID,
	actor kernel.Actor,
	action statemachine.Action,
) (ChangeCompanyApprovalCommand, error) {
	if err := errors.Join(
		requiredID("companyID", companyID),
		actor.Validate(),
		approvalAction(action),
	); err != nil {
		return ChangeCompanyApprovalCommand{}, err
	}

	return ChangeCompanyApprovalCommand{
		companyID: companyID,
		actor:     actor,
		action:    action,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeCompanyApprovalCommand) Validate() error {
	return c.guard.Validate(ErrChangeCompanyApprovalCommandIsNotConstructed)
}

func (c ChangeCompanyApprovalCommand) CompanyID() kernel.UUID {
	return c.companyID
}

func (c ChangeCompanyApprovalCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ChangeCompanyApprovalCommand) Action() statemachine.Action {
	return c.action
}

func approvalAction(action statemachine.Action) error {
	switch action {
	case statemachine.Approve, statemachine.Reject, statemachine.Deactivate:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%s is not Approve, Reject or Deactivate", action))
	}
}

func requiredString(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
