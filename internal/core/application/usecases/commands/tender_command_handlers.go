package commands

import (
	"context"
	"errors"
	"fmt"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/tender"
	"vendorportal/internal/core/ports"
	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/result"
)

// TenderCommandHandler runs the tender lifecycle and bidding commands. Like
// order commands, each one locks the tender, calls one aggregate method and
// writes the whole tender back.
type TenderCommandHandler struct {
	uowFactory TenderUoWFactory
}

func NewTenderCommandHandler(uowFactory TenderUoWFactory) TenderCommandHandler {
	return TenderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h TenderCommandHandler) Create(ctx context.Context, cmd CreateTenderCommand) (result.Envelope[TenderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[TenderResponse]{}, err
	}

	t, err := h.create(ctx, cmd)
	return reply("tender created", t, err, newTenderResponse)
}

func (h TenderCommandHandler) Publish(ctx context.Context, cmd TenderActionCommand) (result.Envelope[TenderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[TenderResponse]{}, err
	}

	t, err := h.update(ctx, byTender(cmd.TenderID()), func(_ TenderUoW, t *tender.Tender) error {
		return t.Publish(cmd.Actor())
	})
	return reply("tender published", t, err, newTenderResponse)
}

func (h TenderCommandHandler) Cancel(ctx context.Context, cmd CancelTenderCommand) (result.Envelope[TenderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[TenderResponse]{}, err
	}

	t, err := h.update(ctx, byTender(cmd.TenderID()), func(_ TenderUoW, t *tender.Tender) error {
		return t.Cancel(cmd.Actor(), cmd.Reason())
	})
	return reply("tender cancelled", t, err, newTenderResponse)
}

// Invite adds suppliers to an Invited tender. Every supplier must be an
// approved company classified for supplying.
func (h TenderCommandHandler) Invite(ctx context.Context, cmd InviteSuppliersCommand) (result.Envelope[TenderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[TenderResponse]{}, err
	}

	t, err := h.update(ctx, byTender(cmd.TenderID()), func(uow TenderUoW, t *tender.Tender) error {
		if err := t.Invite(cmd.Actor(), cmd.SupplierIDs()); err != nil {
			return err
		}
		return checkSuppliers(ctx, uow.CompanyRepository(), cmd.SupplierIDs())
	})
	return reply("suppliers invited", t, err, newTenderResponse)
}

func (h TenderCommandHandler) StartEvaluation(ctx context.Context, cmd TenderActionCommand) (result.Envelope[TenderResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[TenderResponse]{}, err
	}

	t, err := h.update(ctx, byTender(cmd.TenderID()), func(_ TenderUoW, t *tender.Tender) error {
		return t.StartEvaluation(cmd.Actor())
	})
	return reply("tender evaluation started", t, err, newTenderResponse)
}

func (h TenderCommandHandler) SubmitBid(ctx context.Context, cmd SubmitBidCommand) (result.Envelope[BidResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[BidResponse]{}, err
	}

	var bid *tender.Bid
	_, err := h.update(ctx, byTender(cmd.TenderID()), func(uow TenderUoW, t *tender.Tender) error {
		lines, err := bidLines(cmd.Lines())
		if err != nil {
			return err
		}
		if bid, err = t.SubmitBid(cmd.Actor(), cmd.BidID(), lines); err != nil {
			return err
		}
		return checkParty(ctx, uow.CompanyRepository(), cmd.Actor().ID(), kernel.Supplier)
	})
	return reply("bid submitted", bid, err, newBidResponse)
}

func (h TenderCommandHandler) ReviewBidLine(ctx context.Context, cmd ReviewBidLineCommand) (result.Envelope[BidResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[BidResponse]{}, err
	}

	t, err := h.update(ctx, byBid(cmd.BidID()), func(_ TenderUoW, t *tender.Tender) error {
		return t.ReviewBidLine(cmd.Actor(), cmd.BidID(), cmd.LineID(), cmd.Approve())
	})
	return reply("bid line reviewed", t, err, bidOf(cmd.BidID()))
}

func (h TenderCommandHandler) RejectBid(ctx context.Context, cmd BidActionCommand) (result.Envelope[BidResponse], error) {
	if err := cmd.Validate(); err != nil {
		return result.Envelope[BidResponse]{}, err
	}

	t, err := h.update(ctx, byBid(cmd.BidID()), func(_ TenderUoW, t *tender.Tender) error {
		return t.RejectBid(cmd.Actor(), cmd.BidID())
	})
	return reply("bid rejected", t, err, bidOf(cmd.BidID()))
}

func (h TenderCommandHandler) create(ctx context.Context, cmd CreateTenderCommand) (*tender.Tender, error) {
	if cmd.Actor().Role() != kernel.Customer {
		return nil, errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("tenders are opened by customers, not %s", cmd.Actor().Role()))
	}

	t, err := tender.NewTender(cmd.TenderID(), cmd.Actor().ID(), cmd.Kind(), cmd.Title(), cmd.Invitees())
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

	companies := uow.CompanyRepository()
	if err = errs.JoinChecks(
		checkParty(ctx, companies, t.CustomerID(), kernel.Customer),
		checkSuppliers(ctx, companies, t.Invitees()),
	); err != nil {
		return nil, err
	}

	if err = uow.TenderRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}

type tenderLoader func(ctx context.Context, repo ports.TenderRepository) (*tender.Tender, error)

func byTender(id kernel.UUID) tenderLoader {
	return func(ctx context.Context, repo ports.TenderRepository) (*tender.Tender, error) {
		return repo.Get(ctx, id)
	}
}

func byBid(bidID kernel.UUID) tenderLoader {
	return func(ctx context.Context, repo ports.TenderRepository) (*tender.Tender, error) {
		return repo.GetByBid(ctx, bidID)
	}
}

func (h TenderCommandHandler) update(
	ctx context.Context,
	load tenderLoader,
	mutate func(TenderUoW, *tender.Tender) error,
) (*tender.Tender, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tenderRepo := uow.TenderRepository()

	t, err := load(ctx, tenderRepo)
	if err != nil {
		return nil, err
	}

	if err = mutate(uow, t); err != nil {
		return nil, err
	}

	if err = tenderRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}

// bidOf renders bidID from the tender that owns it.
func bidOf(bidID kernel.UUID) func(*tender.Tender) BidResponse {
	return func(t *tender.Tender) BidResponse {
		b, err := t.Bid(bidID)
		if err != nil {
			return BidResponse{}
		}
		return newBidResponse(b)
	}
}

func bidLines(in []LineInput) ([]*tender.BidLine, error) {
	lines := make([]*tender.BidLine, 0, len(in))
	var problems []error
	for i, l := range in {
		line, err := tender.NewBidLine(kernel.NewUUID(), l.MaterialID, l.Quantity, l.Price)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), err))
			continue
		}
		lines = append(lines, line)
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return lines, nil
}

func checkSuppliers(ctx context.Context, companies ports.CompanyRepository, ids []kernel.UUID) error {
	var problems []error
	for _, id := range ids {
		problems = append(problems, checkParty(ctx, companies, id, kernel.Supplier))
	}
	return errs.JoinChecks(problems...)
}
