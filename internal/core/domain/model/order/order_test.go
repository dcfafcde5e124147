package order_test

import (
	"testing"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	customer kernel.Actor
	supplier kernel.Actor
	order    *order.Order
	line1    kernel.UUID
	line2    kernel.UUID
}

func newLine(t *testing.T, qty, price string) *order.Line {
	t.Helper()
	l, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), decimal.RequireFromString(qty), decimal.RequireFromString(price))
	require.NoError(t, err)
	return l
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	customer, err := kernel.NewActor(kernel.NewUUID(), kernel.Customer)
	require.NoError(t, err)
	supplier, err := kernel.NewActor(kernel.NewUUID(), kernel.Supplier)
	require.NoError(t, err)

	l1 := newLine(t, "10", "2.50")
	l2 := newLine(t, "3", "100")

	o, err := order.NewOrder(kernel.NewUUID(), order.Purchase, customer.ID(), supplier.ID(), []*order.Line{l1, l2}, customer.ID())
	require.NoError(t, err)

	return fixture{customer: customer, supplier: supplier, order: o, line1: l1.ID(), line2: l2.ID()}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func historyKinds(o *order.Order) []order.HistoryKind {
	var kinds []order.HistoryKind
	for _, h := range o.History() {
		kinds = append(kinds, h.Kind())
	}
	return kinds
}

func TestNewOrder(t *testing.T) {
	customerID, supplierID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("creates order with pending lines and a Created entry", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.order.Validate())
		assert.Equal(t, order.Created, f.order.Status())
		assert.Equal(t, order.Purchase, f.order.Type())
		for _, l := range f.order.Lines() {
			assert.Equal(t, order.LinePending, l.Status())
		}
		require.Len(t, f.order.History(), 1)
		assert.Equal(t, order.HistoryCreated, f.order.History()[0].Kind())
		assert.True(t, f.order.History()[0].ActorID().IsEqual(f.customer.ID()))
	})

	t.Run("rejects an empty line list", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), order.Sale, customerID, supplierID, nil, customerID)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Nil(t, o)
	})

	t.Run("collects every validation fault", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.TypeUnknown, kernel.UUID{}, supplierID, nil, customerID)

		require.Error(t, err)
		assert.Len(t, errs.Leaves(err), 4)
	})

	t.Run("rejects a company supplying itself", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.Sale, customerID, customerID, []*order.Line{newLine(t, "1", "1")}, customerID)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects duplicated line ids", func(t *testing.T) {
		l := newLine(t, "1", "1")

		_, err := order.NewOrder(kernel.NewUUID(), order.Sale, customerID, supplierID, []*order.Line{l, l}, customerID)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "appears twice")
	})
}

func TestNewLine(t *testing.T) {
	t.Run("rejects non-positive quantity and negative price together", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), dec("0"), dec("-1"))

		require.Error(t, err)
		assert.Len(t, errs.Leaves(err), 2)
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("requires a material", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.UUID{}, dec("1"), dec("1"))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("allows a zero price", func(t *testing.T) {
		l, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), dec("1"), dec("0"))

		require.NoError(t, err)
		assert.True(t, l.Price().IsZero())
	})
}

func TestOrder_NegotiationScenario(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.order.ReviseLine(f.customer, f.line1, dec("12"), dec("2.40")))
	assert.Equal(t, order.Revised, f.order.Status())

	require.NoError(t, f.order.ApproveLine(f.supplier, f.line1))
	assert.Equal(t, order.Revised, f.order.Status())

	require.NoError(t, f.order.ApproveLine(f.supplier, f.line2))
	assert.Equal(t, order.Approved, f.order.Status())

	assert.Equal(t,
		[]order.HistoryKind{order.HistoryCreated, order.HistoryRevised, order.HistoryApproved},
		historyKinds(f.order))

	line, err := f.order.Line(f.line1)
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(line.Quantity()))
	assert.True(t, dec("2.40").Equal(line.Price()))
	assert.Equal(t, 1, line.RevisionCount())
}

func TestOrder_ReviseLine(t *testing.T) {
	t.Run("same party cannot revise twice in a row", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.order.ReviseLine(f.customer, f.line1, dec("11"), dec("2")))

		err := f.order.ReviseLine(f.customer, f.line1, dec("9"), dec("2"))

		require.ErrorIs(t, err, errs.ErrNotYourTurn)
		line, _ := f.order.Line(f.line1)
		assert.True(t, dec("11").Equal(line.Quantity()))
		assert.Len(t, f.order.History(), 2)
	})

	t.Run("parties alternate", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.order.ReviseLine(f.customer, f.line1, dec("11"), dec("2")))
		require.NoError(t, f.order.ReviseLine(f.supplier, f.line1, dec("11"), dec("2.2")))
		require.NoError(t, f.order.ReviseLine(f.customer, f.line1, dec("11"), dec("2.1")))

		line, _ := f.order.Line(f.line1)
		assert.Equal(t, order.LineCustomerRevised, line.Status())
		assert.Equal(t, kernel.Customer, line.LastActor())
		assert.Equal(t, 3, line.RevisionCount())
	})

	t.Run("approved line is settled for the last reviser too", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.order.ReviseLine(f.customer, f.line1, dec("11"), dec("2")))
		require.NoError(t, f.order.ApproveLine(f.supplier, f.line1))

		err := f.order.ReviseLine(f.customer, f.line1, dec("12"), dec("2"))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.NotErrorIs(t, err, errs.ErrNotYourTurn)
		line, _ := f.order.Line(f.line1)
		assert.Equal(t, order.LineApproved, line.Status())
	})

	t.Run("invalid terms leave the line untouched", func(t *testing.T) {
		f := newFixture(t)

		err := f.order.ReviseLine(f.customer, f.line1, dec("-1"), dec("2"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		line, _ := f.order.Line(f.line1)
		assert.Equal(t, order.LinePending, line.Status())
	})

	t.Run("unknown line is not found", func(t *testing.T) {
		f := newFixture(t)

		err := f.order.ReviseLine(f.customer, kernel.NewUUID(), dec("1"), dec("1"))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("actor must be the order's party", func(t *testing.T) {
		f := newFixture(t)
		stranger, _ := kernel.NewActor(kernel.NewUUID(), kernel.Customer)

		err := f.order.ReviseLine(stranger, f.line1, dec("1"), dec("1"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "is not the customer")
	})

	t.Run("system cannot negotiate", func(t *testing.T) {
		f := newFixture(t)

		err := f.order.ReviseLine(kernel.SystemActor(kernel.NewUUID()), f.line1, dec("1"), dec("1"))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_ApproveLine(t *testing.T) {
	t.Run("customer cannot approve a pending line", func(t *testing.T) {
		f := newFixture(t)

		err := f.order.ApproveLine(f.customer, f.line1)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("reviser cannot approve its own revision", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.order.ReviseLine(f.supplier, f.line1, dec("5"), dec("1")))

		err := f.order.ApproveLine(f.supplier, f.line1)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		require.NoError(t, f.order.ApproveLine(f.customer, f.line1))
	})

	t.Run("partial approval without revisions is PendingApproval", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.order.ApproveLine(f.supplier, f.line1))

		assert.Equal(t, order.PendingApproval, f.order.Status())
		assert.Len(t, f.order.History(), 1)
	})

	t.Run("approved lines are final", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.order.ApproveLine(f.supplier, f.line1))

		err := f.order.ReviseLine(f.customer, f.line1, dec("1"), dec("1"))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_RejectLine(t *testing.T) {
	t.Run("rejection is sticky until the line is revised", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.order.RejectLine(f.supplier, f.line1, "price too low"))
		require.NoError(t, f.order.ApproveLine(f.supplier, f.line2))
		assert.Equal(t, order.Rejected, f.order.Status())

		history := f.order.History()
		assert.Equal(t, order.HistoryRejected, history[1].Kind())
		assert.Equal(t, "price too low", history[1].Note())
		require.NotNil(t, history[1].LineID())
		assert.True(t, history[1].LineID().IsEqual(f.line1))

		require.ErrorIs(t, f.order.ReviseLine(f.supplier, f.line1, dec("1"), dec("1")), errs.ErrNotYourTurn)

		require.NoError(t, f.order.ReviseLine(f.customer, f.line1, dec("10"), dec("3")))
		assert.Equal(t, order.Revised, f.order.Status())

		require.NoError(t, f.order.ApproveLine(f.supplier, f.line1))
		assert.Equal(t, order.Approved, f.order.Status())
	})

	t.Run("reason is required", func(t *testing.T) {
		f := newFixture(t)

		err := f.order.RejectLine(f.supplier, f.line1, "   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Created, f.order.Status())
	})
}

func TestOrder_Close(t *testing.T) {
	approved := func(t *testing.T) fixture {
		f := newFixture(t)
		require.NoError(t, f.order.ApproveLine(f.supplier, f.line1))
		require.NoError(t, f.order.ApproveLine(f.supplier, f.line2))
		return f
	}

	t.Run("closes an approved order", func(t *testing.T) {
		f := approved(t)

		require.NoError(t, f.order.Close(f.customer))

		assert.Equal(t, order.Closed, f.order.Status())
		assert.Equal(t, order.HistoryClosed, f.order.History()[len(f.order.History())-1].Kind())
	})

	t.Run("cannot close before approval", func(t *testing.T) {
		f := newFixture(t)

		err := f.order.Close(f.customer)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Created, f.order.Status())
	})

	t.Run("closed orders reject line actions", func(t *testing.T) {
		f := approved(t)
		require.NoError(t, f.order.Close(f.supplier))

		require.ErrorIs(t, f.order.Close(f.customer), errs.ErrInvalidTransition)
		require.ErrorIs(t, f.order.RejectLine(f.customer, f.line1, "late"), errs.ErrInvalidTransition)
	})

	t.Run("system archives rejected orders", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.order.RejectLine(f.supplier, f.line1, "discontinued"))

		require.ErrorIs(t, f.order.Close(f.customer), errs.ErrInvalidTransition)
		require.NoError(t, f.order.Close(kernel.SystemActor(kernel.NewUUID())))
		assert.Equal(t, order.Closed, f.order.Status())
	})
}

func TestOrder_AccessorsReturnCopies(t *testing.T) {
	f := newFixture(t)

	lines := f.order.Lines()
	lines[0] = nil
	history := f.order.History()
	history[0] = order.HistoryEntry{}

	assert.NotNil(t, f.order.Lines()[0])
	assert.Equal(t, order.HistoryCreated, f.order.History()[0].Kind())
}

func TestRestoreOrder(t *testing.T) {
	customerID, supplierID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("accepts a status consistent with its lines", func(t *testing.T) {
		l, err := order.RestoreLine(kernel.NewUUID(), kernel.NewUUID(), dec("1"), dec("1"), order.LineSupplierRevised, kernel.Supplier, 1)
		require.NoError(t, err)

		o, err := order.RestoreOrder(kernel.NewUUID(), order.Sale, customerID, supplierID, order.Revised, []*order.Line{l}, nil, testTime)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Revised, o.Status())
	})

	t.Run("line last actor must be a negotiating party", func(t *testing.T) {
		for _, role := range []kernel.Role{kernel.System, kernel.Role(42)} {
			_, err := order.RestoreLine(kernel.NewUUID(), kernel.NewUUID(), dec("1"), dec("1"), order.LineCustomerRevised, role, 1)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, role)
			assert.Contains(t, err.Error(), "lastActor")
		}
	})

	t.Run("rejects a drifted status", func(t *testing.T) {
		l, err := order.RestoreLine(kernel.NewUUID(), kernel.NewUUID(), dec("1"), dec("1"), order.LinePending, kernel.RoleUnknown, 0)
		require.NoError(t, err)

		_, err = order.RestoreOrder(kernel.NewUUID(), order.Sale, customerID, supplierID, order.Approved, []*order.Line{l}, nil, testTime)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value order is not constructed", func(t *testing.T) {
		var o *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
		assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
	})
}
