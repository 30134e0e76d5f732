package ledger

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchamoorthee/txnproc/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetOrCreate(t *testing.T) {
	l := New()

	acc := l.GetOrCreate(7)
	require.NotNil(t, acc)
	assert.Equal(t, models.ClientID(7), acc.Client)
	assert.True(t, acc.Available.IsZero())
	assert.True(t, acc.Held.IsZero())
	assert.False(t, acc.Locked)

	// Same pointer on second lookup, no new account.
	assert.Same(t, acc, l.GetOrCreate(7))
	assert.Equal(t, 1, l.Len())
}

func TestCredit(t *testing.T) {
	l := New()

	require.NoError(t, l.Credit(1, dec("5.5")))
	assert.Equal(t, "5.5", l.Get(1).Available.String())

	assert.ErrorIs(t, l.Credit(1, dec("0")), ErrInvalidAmount)
	assert.ErrorIs(t, l.Credit(1, dec("-1")), ErrInvalidAmount)
	assert.Equal(t, "5.5", l.Get(1).Available.String())
}

func TestDebit(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit(1, dec("5")))

	require.NoError(t, l.Debit(1, dec("3")))
	assert.Equal(t, "2", l.Get(1).Available.String())

	assert.ErrorIs(t, l.Debit(1, dec("10")), ErrInsufficientFunds)
	assert.Equal(t, "2", l.Get(1).Available.String())

	assert.ErrorIs(t, l.Debit(1, dec("-2")), ErrInvalidAmount)
}

func TestHoldReleaseRoundTrip(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit(1, dec("5")))

	l.Hold(1, dec("5"))
	acc := l.Get(1)
	assert.Equal(t, "0", acc.Available.String())
	assert.Equal(t, "5", acc.Held.String())
	assert.Equal(t, "5", acc.Total().String())

	l.Release(1, dec("5"))
	assert.Equal(t, "5", acc.Available.String())
	assert.Equal(t, "0", acc.Held.String())
	assert.Equal(t, "5", acc.Total().String())
}

func TestHoldHasNoFloor(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit(1, dec("5")))
	require.NoError(t, l.Debit(1, dec("4")))

	// Disputing the original deposit after most of it was withdrawn drives
	// available negative. Total stays consistent.
	l.Hold(1, dec("5"))
	acc := l.Get(1)
	assert.Equal(t, "-4", acc.Available.String())
	assert.Equal(t, "5", acc.Held.String())
	assert.Equal(t, "1", acc.Total().String())
}

func TestSeizeLocksAccount(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit(1, dec("5")))
	l.Hold(1, dec("5"))

	l.Seize(1, dec("5"))
	acc := l.Get(1)
	assert.Equal(t, "0", acc.Available.String())
	assert.Equal(t, "0", acc.Held.String())
	assert.Equal(t, "0", acc.Total().String())
	assert.True(t, acc.Locked)
}

func TestTotalInvariant(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit(1, dec("0.0003")))
	require.NoError(t, l.Credit(1, dec("0.0007")))
	l.Hold(1, dec("0.0003"))

	acc := l.Get(1)
	assert.Equal(t, "0.001", acc.Total().String())
	assert.True(t, acc.Total().Equal(acc.Available.Add(acc.Held)))
}

func TestSnapshotInsertionOrderAndRestart(t *testing.T) {
	l := New()
	require.NoError(t, l.Credit(3, dec("1")))
	require.NoError(t, l.Credit(1, dec("2")))
	require.NoError(t, l.Credit(2, dec("3")))

	seq := l.Snapshot()

	ids := func() []models.ClientID {
		var out []models.ClientID
		for state := range seq {
			out = append(out, state.Client)
		}
		return out
	}

	assert.Equal(t, []models.ClientID{3, 1, 2}, ids())
	// Restartable: a second iteration yields the same sequence.
	assert.Equal(t, []models.ClientID{3, 1, 2}, ids())

	states := slices.Collect(seq)
	require.Len(t, states, 3)
	assert.Equal(t, "1", states[0].Total.String())
}
