package http

import (
	"io"
	"net/http"

	"vendorportal/internal/core/application/usecases/commands"
	"vendorportal/internal/core/application/usecases/queries"
	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/core/domain/model/tender"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	Companies         commands.CompanyCommandHandler
	CreateOrder       commands.CreateOrderCommandHandler
	Orders            commands.OrderCommandHandler
	Tenders           commands.TenderCommandHandler
	ApproveBid        commands.ApproveBidCommandHandler
	ImportOrders      commands.ImportOrdersCommandHandler
	SubmitImportBatch commands.SubmitImportBatchCommandHandler

	ListOrders      queries.ListOrdersQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
	GetImportBatch  queries.GetImportBatchQueryHandler
}

// Server implements ServerInterface. Every response body is a
// result.Envelope; the status code follows its most severe fault kind.
type Server struct {
	h Handlers
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// RegisterCompany handles POST /api/v1/companies.
func (s *Server) RegisterCompany(ctx echo.Context) error {
	var body NewCompany
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	class, err := company.ClassificationFromString(body.Classification)
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewRegisterCompanyCommand(kernel.NewUUID(), body.Name, class)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Companies.Register(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusCreated, env, err)
}

// ChangeCompanyApproval handles POST /api/v1/companies/{companyId}/approval.
func (s *Server) ChangeCompanyApproval(ctx echo.Context, companyId openapi_types.UUID, params ActorParams) error {
	var body ApprovalChange
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}
	action, err := statemachine.ActionFromString(body.Action)
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewChangeCompanyApprovalCommand(toUUID(companyId), actor, action)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Companies.ChangeApproval(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil {
		st := order.Status(*params.Status)
		status = &st
	}

	query, err := queries.NewListOrdersQuery(toUUID(params.CompanyId), status)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	return respond(ctx, http.StatusOK, env, err)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context, params ActorParams) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}
	kind, err := order.TypeFromString(body.OrderType)
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		actor,
		kind,
		toUUID(body.CustomerId),
		toUUID(body.SupplierId),
		lineInputs(body.Lines),
	)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusCreated, env, err)
}

// ImportOrders handles POST /api/v1/orders/import.
func (s *Server) ImportOrders(ctx echo.Context, params ActorParams) error {
	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewImportOrdersCommand(actor.ID(), payload)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.ImportOrders.Handle(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	query, err := queries.NewGetOrderHistoryQuery(toUUID(orderId))
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	return respond(ctx, http.StatusOK, env, err)
}

// CloseOrder handles POST /api/v1/orders/{orderId}/close.
func (s *Server) CloseOrder(ctx echo.Context, orderId openapi_types.UUID, params ActorParams) error {
	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewCloseOrderCommand(toUUID(orderId), actor)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Orders.CloseOrder(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// ReviseOrderLine handles POST /api/v1/orders/{orderId}/lines/{lineId}/revise.
func (s *Server) ReviseOrderLine(ctx echo.Context, orderId, lineId openapi_types.UUID, params ActorParams) error {
	var body LineTerms
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewReviseLineCommand(toUUID(orderId), toUUID(lineId), actor, body.Quantity, body.Price)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Orders.ReviseLine(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// ApproveOrderLine handles POST /api/v1/orders/{orderId}/lines/{lineId}/approve.
func (s *Server) ApproveOrderLine(ctx echo.Context, orderId, lineId openapi_types.UUID, params ActorParams) error {
	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewApproveLineCommand(toUUID(orderId), toUUID(lineId), actor)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Orders.ApproveLine(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// RejectOrderLine handles POST /api/v1/orders/{orderId}/lines/{lineId}/reject.
func (s *Server) RejectOrderLine(ctx echo.Context, orderId, lineId openapi_types.UUID, params ActorParams) error {
	var body Reason
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewRejectLineCommand(toUUID(orderId), toUUID(lineId), actor, body.Reason)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Orders.RejectLine(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// SubmitImportBatch handles POST /api/v1/import-batches. The batch is
// processed by the background job.
func (s *Server) SubmitImportBatch(ctx echo.Context, params ActorParams) error {
	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitImportBatchCommand(kernel.NewUUID(), actor.ID(), payload)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.SubmitImportBatch.Handle(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusAccepted, env, err)
}

// GetImportBatch handles GET /api/v1/import-batches/{batchId}.
func (s *Server) GetImportBatch(ctx echo.Context, batchId openapi_types.UUID) error {
	query, err := queries.NewGetImportBatchQuery(toUUID(batchId))
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.GetImportBatch.Handle(ctx.Request().Context(), query)
	return respond(ctx, http.StatusOK, env, err)
}

// CreateTender handles POST /api/v1/tenders.
func (s *Server) CreateTender(ctx echo.Context, params ActorParams) error {
	var body NewTender
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}
	kind, err := tender.TypeFromString(body.TenderType)
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewCreateTenderCommand(kernel.NewUUID(), actor, kind, body.Title, toUUIDs(body.Invitees))
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.Create(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusCreated, env, err)
}

// PublishTender handles POST /api/v1/tenders/{tenderId}/publish.
func (s *Server) PublishTender(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error {
	cmd, err := tenderAction(tenderId, params)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.Publish(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// InviteSuppliers handles POST /api/v1/tenders/{tenderId}/invitees.
func (s *Server) InviteSuppliers(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error {
	var body Invitation
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewInviteSuppliersCommand(toUUID(tenderId), actor, toUUIDs(body.SupplierIds))
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.Invite(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// StartTenderEvaluation handles POST /api/v1/tenders/{tenderId}/evaluation.
func (s *Server) StartTenderEvaluation(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error {
	cmd, err := tenderAction(tenderId, params)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.StartEvaluation(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// CancelTender handles POST /api/v1/tenders/{tenderId}/cancel.
func (s *Server) CancelTender(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error {
	var body Reason
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewCancelTenderCommand(toUUID(tenderId), actor, body.Reason)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.Cancel(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// SubmitBid handles POST /api/v1/tenders/{tenderId}/bids.
func (s *Server) SubmitBid(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error {
	var body NewBid
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewSubmitBidCommand(toUUID(tenderId), kernel.NewUUID(), actor, lineInputs(body.Lines))
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.SubmitBid(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusCreated, env, err)
}

// ReviewBidLine handles POST /api/v1/bids/{bidId}/lines/{lineId}/review.
func (s *Server) ReviewBidLine(ctx echo.Context, bidId, lineId openapi_types.UUID, params ActorParams) error {
	var body LineReview
	if err := ctx.Bind(&body); err != nil {
		return rejected(ctx, err)
	}

	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewReviewBidLineCommand(toUUID(bidId), toUUID(lineId), actor, body.Approve)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.ReviewBidLine(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// RejectBid handles POST /api/v1/bids/{bidId}/reject.
func (s *Server) RejectBid(ctx echo.Context, bidId openapi_types.UUID, params ActorParams) error {
	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewBidActionCommand(toUUID(bidId), actor)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.Tenders.RejectBid(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusOK, env, err)
}

// ApproveBid handles POST /api/v1/bids/{bidId}/approve and answers with the
// awarded bid and the order opened from it.
func (s *Server) ApproveBid(ctx echo.Context, bidId openapi_types.UUID, params ActorParams) error {
	actor, err := params.actor()
	if err != nil {
		return rejected(ctx, err)
	}

	cmd, err := commands.NewApproveBidCommand(toUUID(bidId), kernel.NewUUID(), actor)
	if err != nil {
		return rejected(ctx, err)
	}

	env, err := s.h.ApproveBid.Handle(ctx.Request().Context(), cmd)
	return respond(ctx, http.StatusCreated, env, err)
}

func (p ActorParams) actor() (kernel.Actor, error) {
	role, err := kernel.RoleFromString(p.XActorRole)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(toUUID(p.XActorID), role)
}

func tenderAction(tenderID openapi_types.UUID, params ActorParams) (commands.TenderActionCommand, error) {
	actor, err := params.actor()
	if err != nil {
		return commands.TenderActionCommand{}, err
	}
	return commands.NewTenderActionCommand(toUUID(tenderID), actor)
}

// toUUID keeps the nil UUID as the zero kernel.UUID so constructors report
// it as a missing value.
func toUUID(id openapi_types.UUID) kernel.UUID {
	converted, err := kernel.UUIDFromString(id.String())
	if err != nil {
		return kernel.UUID{}
	}
	return converted
}

func toUUIDs(ids []openapi_types.UUID) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, toUUID(id))
	}
	return out
}

func lineInputs(lines []LineInput) []commands.LineInput {
	out := make([]commands.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, commands.LineInput{
			MaterialID: toUUID(l.MaterialId),
			Quantity:   l.Quantity,
			Price:      l.Price,
		})
	}
	return out
}
