package commands

import (
	"context"

	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/pkg/result"
)

type CompanyCommandHandler struct {
	uowFactory CompanyUoWFactory
}

func NewCompanyCommandHandler(uowFactory CompanyUoWFactory) CompanyCommandHandler {
	return CompanyCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CompanyCommandHandler) Register(ctx context.Context, cmd RegisterCompanyCommand) (result.Envelope[CompanyResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[CompanyResponse]{}, err
	}

	c, err := h.register(ctx, cmd)
	return reply("company registered", c, err, newCompanyResponse)
}

func (h CompanyCommandHandler) ChangeApproval(
	ctx context.Context,
	cmd ChangeCompanyApprovalCommand,
) (result.Envelope[CompanyResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[CompanyResponse]{}, err
	}

	c, err := h.changeApproval(ctx, cmd)
	return reply("company approval changed", c, err, newCompanyResponse)
}

func (h CompanyCommandHandler) register(ctx context.Context, cmd RegisterCompanyCommand) (*company.Company, error) {
	c, err := company.NewCompany(cmd.CompanyID(), cmd.Name(), cmd.Classification())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CompanyRepository().Add(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (h CompanyCommandHandler) changeApproval(ctx context.Context, cmd ChangeCompanyApprovalCommand) (*company.Company, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	companyRepo := uow.CompanyRepository()

	c, err := companyRepo.Get(ctx, cmd.CompanyID())
	if err != nil {
		return nil, err
	}

	if err = c.ChangeApproval(cmd.Actor(), cmd.Action()); err != nil {
		return nil, err
	}

	if err = companyRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
