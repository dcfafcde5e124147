package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request bodies, mirroring components/schemas in openapi.yaml.

type LineInput struct {
	MaterialId openapi_types.UUID `json:"materialId"`
	Quantity   decimal.Decimal    `json:"quantity"`
	Price      decimal.Decimal    `json:"price"`
}

type LineTerms struct {
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type NewCompany struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
}

type ApprovalChange struct {
	Action string `json:"action"`
}

type NewOrder struct {
	OrderType  string             `json:"orderType"`
	CustomerId openapi_types.UUID `json:"customerId"`
	SupplierId openapi_types.UUID `json:"supplierId"`
	Lines      []LineInput        `json:"lines"`
}

type Reason struct {
	Reason string `json:"reason"`
}

type NewTender struct {
	TenderType string               `json:"tenderType"`
	Title      string               `json:"title"`
	Invitees   []openapi_types.UUID `json:"invitees,omitempty"`
}

type Invitation struct {
	SupplierIds []openapi_types.UUID `json:"supplierIds"`
}

type NewBid struct {
	Lines []LineInput `json:"lines"`
}

type LineReview struct {
	Approve bool `json:"approve"`
}

// ActorParams carries the X-Actor-ID and X-Actor-Role headers.
type ActorParams struct {
	XActorID   openapi_types.UUID
	XActorRole string
}

type ListOrdersParams struct {
	CompanyId openapi_types.UUID
	Status    *int
}

// ServerInterface is the operation set of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/companies)
	RegisterCompany(ctx echo.Context) error
	// (POST /api/v1/companies/{companyId}/approval)
	ChangeCompanyApproval(ctx echo.Context, companyId openapi_types.UUID, params ActorParams) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params ActorParams) error
	// (POST /api/v1/orders/import)
	ImportOrders(ctx echo.Context, params ActorParams) error
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/close)
	CloseOrder(ctx echo.Context, orderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/orders/{orderId}/lines/{lineId}/revise)
	ReviseOrderLine(ctx echo.Context, orderId, lineId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/orders/{orderId}/lines/{lineId}/approve)
	ApproveOrderLine(ctx echo.Context, orderId, lineId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/orders/{orderId}/lines/{lineId}/reject)
	RejectOrderLine(ctx echo.Context, orderId, lineId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/import-batches)
	SubmitImportBatch(ctx echo.Context, params ActorParams) error
	// (GET /api/v1/import-batches/{batchId})
	GetImportBatch(ctx echo.Context, batchId openapi_types.UUID) error
	// (POST /api/v1/tenders)
	CreateTender(ctx echo.Context, params ActorParams) error
	// (POST /api/v1/tenders/{tenderId}/publish)
	PublishTender(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/tenders/{tenderId}/invitees)
	InviteSuppliers(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/tenders/{tenderId}/evaluation)
	StartTenderEvaluation(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/tenders/{tenderId}/cancel)
	CancelTender(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/tenders/{tenderId}/bids)
	SubmitBid(ctx echo.Context, tenderId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/bids/{bidId}/lines/{lineId}/review)
	ReviewBidLine(ctx echo.Context, bidId, lineId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/bids/{bidId}/reject)
	RejectBid(ctx echo.Context, bidId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/bids/{bidId}/approve)
	ApproveBid(ctx echo.Context, bidId openapi_types.UUID, params ActorParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RegisterCompany(ctx echo.Context) error {
	return w.Handler.RegisterCompany(ctx)
}

func (w *ServerInterfaceWrapper) ChangeCompanyApproval(ctx echo.Context) error {
	return w.withID(ctx, "companyId", w.Handler.ChangeCompanyApproval)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, true, "companyId", ctx.QueryParams(), &params.CompanyId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter companyId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.withActor(ctx, w.Handler.CreateOrder)
}

func (w *ServerInterfaceWrapper) ImportOrders(ctx echo.Context) error {
	return w.withActor(ctx, w.Handler.ImportOrders)
}

func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderHistory(ctx, orderID)
}

func (w *ServerInterfaceWrapper) CloseOrder(ctx echo.Context) error {
	return w.withID(ctx, "orderId", w.Handler.CloseOrder)
}

func (w *ServerInterfaceWrapper) ReviseOrderLine(ctx echo.Context) error {
	return w.withIDs(ctx, "orderId", "lineId", w.Handler.ReviseOrderLine)
}

func (w *ServerInterfaceWrapper) ApproveOrderLine(ctx echo.Context) error {
	return w.withIDs(ctx, "orderId", "lineId", w.Handler.ApproveOrderLine)
}

func (w *ServerInterfaceWrapper) RejectOrderLine(ctx echo.Context) error {
	return w.withIDs(ctx, "orderId", "lineId", w.Handler.RejectOrderLine)
}

func (w *ServerInterfaceWrapper) SubmitImportBatch(ctx echo.Context) error {
	return w.withActor(ctx, w.Handler.SubmitImportBatch)
}

func (w *ServerInterfaceWrapper) GetImportBatch(ctx echo.Context) error {
	batchID, err := bindPathUUID(ctx, "batchId")
	if err != nil {
		return err
	}
	return w.Handler.GetImportBatch(ctx, batchID)
}

func (w *ServerInterfaceWrapper) CreateTender(ctx echo.Context) error {
	return w.withActor(ctx, w.Handler.CreateTender)
}

func (w *ServerInterfaceWrapper) PublishTender(ctx echo.Context) error {
	return w.withID(ctx, "tenderId", w.Handler.PublishTender)
}

func (w *ServerInterfaceWrapper) InviteSuppliers(ctx echo.Context) error {
	return w.withID(ctx, "tenderId", w.Handler.InviteSuppliers)
}

func (w *ServerInterfaceWrapper) StartTenderEvaluation(ctx echo.Context) error {
	return w.withID(ctx, "tenderId", w.Handler.StartTenderEvaluation)
}

func (w *ServerInterfaceWrapper) CancelTender(ctx echo.Context) error {
	return w.withID(ctx, "tenderId", w.Handler.CancelTender)
}

func (w *ServerInterfaceWrapper) SubmitBid(ctx echo.Context) error {
	return w.withID(ctx, "tenderId", w.Handler.SubmitBid)
}

func (w *ServerInterfaceWrapper) ReviewBidLine(ctx echo.Context) error {
	return w.withIDs(ctx, "bidId", "lineId", w.Handler.ReviewBidLine)
}

func (w *ServerInterfaceWrapper) RejectBid(ctx echo.Context) error {
	return w.withID(ctx, "bidId", w.Handler.RejectBid)
}

func (w *ServerInterfaceWrapper) ApproveBid(ctx echo.Context) error {
	return w.withID(ctx, "bidId", w.Handler.ApproveBid)
}

func (w *ServerInterfaceWrapper) withActor(ctx echo.Context, next func(echo.Context, ActorParams) error) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return next(ctx, params)
}

func (w *ServerInterfaceWrapper) withID(
	ctx echo.Context,
	name string,
	next func(echo.Context, openapi_types.UUID, ActorParams) error,
) error {
	id, err := bindPathUUID(ctx, name)
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return next(ctx, id, params)
}

func (w *ServerInterfaceWrapper) withIDs(
	ctx echo.Context,
	first, second string,
	next func(echo.Context, openapi_types.UUID, openapi_types.UUID, ActorParams) error,
) error {
	a, err := bindPathUUID(ctx, first)
	if err != nil {
		return err
	}
	b, err := bindPathUUID(ctx, second)
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return next(ctx, a, b, params)
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindActorParams(ctx echo.Context) (ActorParams, error) {
	var params ActorParams

	if err := bindHeader(ctx, "X-Actor-ID", &params.XActorID); err != nil {
		return params, err
	}
	if err := bindHeader(ctx, "X-Actor-Role", &params.XActorRole); err != nil {
		return params, err
	}

	return params, nil
}

func bindHeader(ctx echo.Context, name string, dest any) error {
	values, found := ctx.Request().Header[http.CanonicalHeaderKey(name)]
	if !found {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Header parameter %s is required, but not found", name))
	}
	if n := len(values); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}

	err := runtime.BindStyledParameterWithOptions("simple", name, values[0], dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every route of openapi.yaml to router, which must
// be mounted at /api/v1.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/companies", w.RegisterCompany)
	router.POST("/companies/:companyId/approval", w.ChangeCompanyApproval)
	router.GET("/orders", w.ListOrders)
	router.POST("/orders", w.CreateOrder)
	router.POST("/orders/import", w.ImportOrders)
	router.GET("/orders/:orderId/history", w.GetOrderHistory)
	router.POST("/orders/:orderId/close", w.CloseOrder)
	router.POST("/orders/:orderId/lines/:lineId/revise", w.ReviseOrderLine)
	router.POST("/orders/:orderId/lines/:lineId/approve", w.ApproveOrderLine)
	router.POST("/orders/:orderId/lines/:lineId/reject", w.RejectOrderLine)
	router.POST("/import-batches", w.SubmitImportBatch)
	router.GET("/import-batches/:batchId", w.GetImportBatch)
	router.POST("/tenders", w.CreateTender)
	router.POST("/tenders/:tenderId/publish", w.PublishTender)
	router.POST("/tenders/:tenderId/invitees", w.InviteSuppliers)
	router.POST("/tenders/:tenderId/evaluation", w.StartTenderEvaluation)
	router.POST("/tenders/:tenderId/cancel", w.CancelTender)
	router.POST("/tenders/:tenderId/bids", w.SubmitBid)
	router.POST("/bids/:bidId/lines/:lineId/review", w.ReviewBidLine)
	router.POST("/bids/:bidId/reject", w.RejectBid)
	router.POST("/bids/:bidId/approve", w.ApproveBid)
}
