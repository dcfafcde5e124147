package queries_test

import (
	"testing"

	"vendorportal/internal/core/application/usecases/queries"
	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/order"
	"vendorportal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOrdersQuery(t *testing.T) {
	t.Run("without status filter", func(t *testing.T) {
		q, err := queries.NewListOrdersQuery(kernel.NewUUID(), nil)
		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.Nil(t, q.Status())
	})

	t.Run("copies the status filter", func(t *testing.T) {
		status := order.Approved
		q, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status)
		require.NoError(t, err)

		status = order.Closed
		require.NotNil(t, q.Status())
		assert.Equal(t, order.Approved, *q.Status())
	})

	t.Run("invalid status", func(t *testing.T) {
		status := order.Status(42)
		_, err := queries.NewListOrdersQuery(kernel.NewUUID(), &status)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("company is required", func(t *testing.T) {
		_, err := queries.NewListOrdersQuery(kernel.UUID{}, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrderHistoryQuery{}.Validate(), queries.ErrQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetImportBatchQuery{}.Validate(), queries.ErrQueryIsNotConstructed)
}

func TestNewGetOrderHistoryQuery_RequiresID(t *testing.T) {
	_, err := queries.NewGetOrderHistoryQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetImportBatchQuery_RequiresID(t *testing.T) {
	_, err := queries.NewGetImportBatchQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
