package commands

import (
	"time"

	"vendorportal/internal/core/domain/model/company"
	"vendorportal/internal/core/domain/model/importbatch"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/core/domain/model/tender"

	"github.com/shopspring/decimal"
)

// Responses are the envelope payloads. Status fields carry the wire-stable
// numeric code next to its name.

type OrderLineResponse struct {
	ID            string          `json:"id"`
	MaterialID    string          `json:"materialId"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Status        int             `json:"status"`
	StatusName    string          `json:"statusName"`
	LastActor     string          `json:"lastActor,omitempty"`
	RevisionCount int             `json:"revisionCount"`
}

type HistoryEntryResponse struct {
	ActorID string    `json:"actorId"`
	Kind    string    `json:"kind"`
	LineID  string    `json:"lineId,omitempty"`
	Note    string    `json:"note,omitempty"`
	At      time.Time `json:"at"`
}

type OrderResponse struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"orderType"`
	CustomerID string                 `json:"customerId"`
	SupplierID string                 `json:"supplierId"`
	Status     int                    `json:"status"`
	StatusName string                 `json:"statusName"`
	Lines      []OrderLineResponse    `json:"lines"`
	History    []HistoryEntryResponse `json:"history"`
	CreatedAt  time.Time              `json:"createdAt"`
}

func newOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID().String(),
		Type:       o.Type().String(),
		CustomerID: o.CustomerID().String(),
		SupplierID: o.SupplierID().String(),
		Status:     int(o.Status()),
		StatusName: o.Status().String(),
		CreatedAt:  o.CreatedAt(),
	}
	for _, l := range o.Lines() {
		line := OrderLineResponse{
			ID:            l.ID().String(),
			MaterialID:    l.MaterialID().String(),
			Quantity:      l.Quantity(),
			Price:         l.Price(),
			Status:        int(l.Status()),
			StatusName:    l.Status().String(),
			RevisionCount: l.RevisionCount(),
		}
		if l.LastActor() != kernel.RoleUnknown {
			line.LastActor = l.LastActor().String()
		}
		resp.Lines = append(resp.Lines, line)
	}
	for _, h := range o.History() {
		entry := HistoryEntryResponse{
			ActorID: h.ActorID().String(),
			Kind:    h.Kind().String(),
			Note:    h.Note(),
			At:      h.At(),
		}
		if id := h.LineID(); id != nil {
			entry.LineID = id.String()
		}
		resp.History = append(resp.History, entry)
	}
	return resp
}

type BidLineResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"materialId"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Status     int             `json:"status"`
	StatusName string          `json:"statusName"`
}

type BidResponse struct {
	ID          string            `json:"id"`
	TenderID    string            `json:"tenderId"`
	SupplierID  string            `json:"supplierId"`
	Status      int               `json:"status"`
	StatusName  string            `json:"statusName"`
	Lines       []BidLineResponse `json:"lines"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
}

func newBidResponse(b *tender.Bid) BidResponse {
	resp := BidResponse{
		ID:         b.ID().String(),
		TenderID:   b.TenderID().String(),
		SupplierID: b.SupplierID().String(),
		Status:     int(b.Status()),
		StatusName: b.Status().String(),
	}
	if at := b.SubmittedAt(); !at.IsZero() {
		resp.SubmittedAt = &at
	}
	for _, l := range b.Lines() {
		resp.Lines = append(resp.Lines, BidLineResponse{
			ID:         l.ID().String(),
			MaterialID: l.MaterialID().String(),
			Quantity:   l.Quantity(),
			Price:      l.Price(),
			Status:     int(l.Status()),
			StatusName: l.Status().String(),
		})
	}
	return resp
}

type TenderResponse struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customerId"`
	Type         string        `json:"tenderType"`
	Title        string        `json:"title"`
	Status       int           `json:"status"`
	StatusName   string        `json:"statusName"`
	Invitees     []string      `json:"invitees"`
	Bids         []BidResponse `json:"bids"`
	CancelReason string        `json:"cancelReason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func newTenderResponse(t *tender.Tender) TenderResponse {
	resp := TenderResponse{
		ID:           t.ID().String(),
		CustomerID:   t.CustomerID().String(),
		Type:         t.Type().String(),
		Title:        t.Title(),
		Status:       int(t.Status()),
		StatusName:   t.Status().String(),
		Invitees:     make([]string, 0, len(t.Invitees())),
		Bids:         make([]BidResponse, 0, len(t.Bids())),
		CancelReason: t.CancelReason(),
		CreatedAt:    t.CreatedAt(),
	}
	for _, id := range t.Invitees() {
		resp.Invitees = append(resp.Invitees, id.String())
	}
	for _, b := range t.Bids() {
		resp.Bids = append(resp.Bids, newBidResponse(b))
	}
	return resp
}

// AwardResponse is the outcome of a bid approval: the approved bid and the
// order created from it.
type AwardResponse struct {
	Bid   BidResponse   `json:"bid"`
	Order OrderResponse `json:"order"`
}

type CompanyResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Classification string    `json:"classification"`
	Approval       int       `json:"approval"`
	ApprovalName   string    `json:"approvalName"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

func newCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID().String(),
		Name:           c.Name(),
		Classification: c.Classification().String(),
		Approval:       int(c.Approval()),
		ApprovalName:   c.Approval().String(),
		RegisteredAt:   c.RegisteredAt(),
	}
}

type FailureResponse struct {
	Index  int    `json:"recordIndex"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// BatchResultResponse is the BatchResult of an import.
type BatchResultResponse struct {
	Total          int               `json:"total"`
	SucceededCount int               `json:"succeededCount"`
	Failures       []FailureResponse `json:"failures"`
}

func newBatchResultResponse(r importbatch.Result) BatchResultResponse {
	resp := BatchResultResponse{
		Total:          r.Total,
		SucceededCount: r.SucceededCount,
		Failures:       make([]FailureResponse, 0, len(r.Failures)),
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, FailureResponse{Index: f.Index, Kind: string(f.Kind), Reason: f.Reason})
	}
	return resp
}

type BatchResponse struct {
	ID          string              `json:"id"`
	Status      string              `json:"status"`
	Cursor      int                 `json:"cursor"`
	Result      BatchResultResponse `json:"result"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

func newBatchResponse(b *importbatch.Batch) BatchResponse {
	return BatchResponse{
		ID:          b.ID().String(),
		Status:      b.Status().String(),
		Cursor:      b.Cursor(),
		Result:      newBatchResultResponse(b.Result()),
		SubmittedAt: b.SubmittedAt(),
	}
}
