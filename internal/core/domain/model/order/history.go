package order

import (
	"errors"
	"fmt"
	"time"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/pkg/errs"
)

// HistoryKind is the action recorded by a history entry.
type HistoryKind int

const (
	HistoryUnknown HistoryKind = iota
	HistoryCreated
	// HistoryUpdated is part of the audit vocabulary shared with clients; the
	// order workflow itself records the more specific kinds.
	HistoryUpdated
	HistoryRevised
	HistoryApproved
	HistoryRejected
	HistoryClosed
)

func getHistoryKindStrings() map[HistoryKind]string {
	return map[HistoryKind]string{
		HistoryUnknown:  "Unknown",
		HistoryCreated:  "Created",
		HistoryUpdated:  "Updated",
		HistoryRevised:  "Revised",
		HistoryApproved: "Approved",
		HistoryRejected: "Rejected",
		HistoryClosed:   "Closed",
	}
}

func (k HistoryKind) String() string {
	if str, ok := getHistoryKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

func (k HistoryKind) Validate() error {
	if _, ok := getHistoryKindStrings()[k]; !ok || k == HistoryUnknown {
		return errs.NewValueIsInvalidErrorWithCause("history kind is invalid", fmt.Errorf("%d is not a valid history kind", k))
	}
	return nil
}

// HistoryEntry is an immutable audit record. Entries are appended by Order
// and never changed afterwards.
type HistoryEntry struct {
	actorID kernel.UUID
	kind    HistoryKind
	lineID  *kernel.UUID
	note    string
	at      time.Time
}

// RestoreHistoryEntry rebuilds an entry loaded from storage.
func RestoreHistoryEntry(actorID kernel.UUID, kind HistoryKind, lineID *kernel.UUID, note string, at time.Time) (HistoryEntry, error) {
	if err := errors.Join(actorID.Validate(), kind.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history timestamp")
	}
	return newHistoryEntry(actorID, kind, lineID, note, at), nil
}

func newHistoryEntry(actorID kernel.UUID, kind HistoryKind, lineID *kernel.UUID, note string, at time.Time) HistoryEntry {
	var line *kernel.UUID
	if lineID != nil {
		id := *lineID
		line = &id
	}
	return HistoryEntry{actorID: actorID, kind: kind, lineID: line, note: note, at: at}
}

func (h HistoryEntry) ActorID() kernel.UUID {
	return h.actorID
}

func (h HistoryEntry) Kind() HistoryKind {
	return h.kind
}

// LineID returns the line the action targeted, or nil for order-level actions.
func (h HistoryEntry) LineID() *kernel.UUID {
	if h.lineID == nil {
		return nil
	}
	id := *h.lineID
	return &id
}

// Note carries the rejection reason for Rejected entries.
func (h HistoryEntry) Note() string {
	return h.note
}

func (h HistoryEntry) At() time.Time {
	return h.at
}
