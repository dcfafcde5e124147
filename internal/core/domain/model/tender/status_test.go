package tender_test

import (
	"testing"

	"vendorportal/internal/core/domain/model/kernel"
	"vendorportal/internal/core/domain/model/statemachine"
	"vendorportal/internal/core/domain/model/tender"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTables_Exhaustive(t *testing.T) {
	t.Run("tender", func(t *testing.T) {
		table := tender.StatusTable()
		for _, s := range tender.Statuses() {
			require.NoError(t, s.Validate())
			terminal := s == tender.Completed || s == tender.Cancelled
			assert.Equal(t, terminal, table.IsTerminal(s), s.String())
		}
		assert.Equal(t, 4, int(tender.Cancelled))
	})

	t.Run("bid", func(t *testing.T) {
		table := tender.BidStatusTable()
		for _, s := range tender.BidStatuses() {
			require.NoError(t, s.Validate())
			terminal := s == tender.BidRejected || s == tender.BidApproved
			assert.Equal(t, terminal, table.IsTerminal(s), s.String())
			assert.Equal(t, !terminal, s.IsOpen(), s.String())
		}
		for _, s := range tender.BidStatuses() {
			if s.IsOpen() {
				assert.True(t, table.Allows(s, statemachine.Reject, kernel.System), "%s must be force-rejectable", s)
			}
		}
	})

	t.Run("bid line", func(t *testing.T) {
		table := tender.BidLineStatusTable()
		for _, s := range tender.BidLineStatuses() {
			require.NoError(t, s.Validate())
			assert.NotEmpty(t, table.Outgoing(s), s.String())
		}
		for _, r := range table.Rules() {
			assert.Equal(t, kernel.Customer, r.Role)
		}
	})
}

func TestTypeFromString(t *testing.T) {
	typ, err := tender.TypeFromString("invited")
	require.NoError(t, err)
	assert.Equal(t, tender.TypeInvited, typ)

	_, err = tender.TypeFromString("Unknown")
	require.Error(t, err)
}
