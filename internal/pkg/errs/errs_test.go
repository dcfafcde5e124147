package errs_test

import (
	"errors"
	"testing"

	"vendorportal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderID", "o-1")

		assert.Equal(t, "orderID", err.ParamName)
		assert.Equal(t, "o-1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: o-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("tenderID", "t-9", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: tenderID, ID is: t-9 (cause: record not found)",
			err.Error())
	})
}

func TestValidationErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("must be positive"))
		assert.Equal(t, "value is invalid: quantity (cause: must be positive)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("productName")
		assert.Equal(t, "value is required: productName", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("out of range strips newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("kind", "Purchase\nSale", 1, 2)
		assert.Equal(t, "value is invalid: Purchase Sale is kind, min value is 1, max value is 2", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestWorkflowErrors(t *testing.T) {
	t.Run("invalid transition", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("order", "Closed", "Revise", "Customer")
		assert.Equal(t, "invalid transition: order cannot Revise from Closed as Customer", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("not your turn", func(t *testing.T) {
		err := errs.NewNotYourTurnError("order line", "l-1", "Supplier")
		assert.Equal(t, "not your turn: order line l-1 was last revised by Supplier", err.Error())
		require.ErrorIs(t, err, errs.ErrNotYourTurn)
	})

	t.Run("already awarded", func(t *testing.T) {
		err := errs.NewAlreadyAwardedError("t-1", "b-2")
		assert.Equal(t, "tender already awarded: tender t-1 was awarded to bid b-2", err.Error())
		require.ErrorIs(t, err, errs.ErrAlreadyAwarded)
	})

	t.Run("malformed payload", func(t *testing.T) {
		err := errs.NewMalformedPayloadErrorWithCause("not a JSON object", errors.New("unexpected EOF"))
		assert.Equal(t, "malformed payload: not a JSON object (cause: unexpected EOF)", err.Error())
		require.ErrorIs(t, err, errs.ErrMalformedPayload)
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"required", errs.NewValueIsRequiredError("x"), errs.KindValidation},
		{"invalid", errs.NewValueIsInvalidError("x"), errs.KindValidation},
		{"out of range", errs.NewValueIsOutOfRangeError("x", 5, 0, 1), errs.KindValidation},
		{"not found", errs.NewObjectNotFoundError("id", "1"), errs.KindNotFound},
		{"transition", errs.NewInvalidTransitionError("bid", "Draft", "Approve", "Customer"), errs.KindInvalidTransition},
		{"turn", errs.NewNotYourTurnError("order line", "1", "Customer"), errs.KindNotYourTurn},
		{"awarded", errs.NewAlreadyAwardedError("t", "b"), errs.KindAlreadyAwarded},
		{"malformed", errs.NewMalformedPayloadError("empty"), errs.KindMalformedPayload},
		{"infrastructure", errors.New("connection refused"), errs.KindUnexpectedFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.KindOf(tt.err))
		})
	}
}

func TestIsDomain(t *testing.T) {
	assert.False(t, errs.IsDomain(nil))
	assert.False(t, errs.IsDomain(errors.New("disk full")))
	assert.True(t, errs.IsDomain(errs.NewValueIsRequiredError("customerID")))
}

func TestJoinChecks(t *testing.T) {
	storage := errors.New("connection reset")
	missing := errs.NewObjectNotFoundError("companyID", "42")
	inactive := errs.NewValueIsInvalidError("supplier")

	t.Run("storage fault is not masked by a rejection", func(t *testing.T) {
		err := errs.JoinChecks(missing, storage, inactive)

		assert.Same(t, storage, err)
		assert.False(t, errs.IsDomain(err))
	})

	t.Run("rejections are reported together", func(t *testing.T) {
		err := errs.JoinChecks(missing, nil, inactive)

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		assert.Len(t, errs.Leaves(err), 2)
	})

	t.Run("all passed", func(t *testing.T) {
		assert.NoError(t, errs.JoinChecks(nil, nil))
	})
}

func TestLeaves(t *testing.T) {
	a := errs.NewValueIsRequiredError("customerID")
	b := errs.NewValueIsRequiredError("supplierID")
	c := errs.NewValueIsInvalidError("kind")

	joined := errors.Join(errors.Join(a, b), c)

	leaves := errs.Leaves(joined)
	require.Len(t, leaves, 3)
	assert.Equal(t, error(a), leaves[0])
	assert.Equal(t, error(b), leaves[1])
	assert.Equal(t, error(c), leaves[2])
	assert.Nil(t, errs.Leaves(nil))
	assert.Len(t, errs.Leaves(a), 1)
}
