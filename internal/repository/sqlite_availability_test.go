package repository

import (
	"context"
	"testing"

	"github.com/rkuznets/coachcal/internal/domain"
	"github.com/rkuznets/coachcal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityStore_CreateAndList(t *testing.T) {
	store := NewSQLiteAvailabilityStore(testutil.NewTestDB(t))
	ctx := context.Background()

	inside := testutil.NewMark(day(10), domain.AvailabilityAbsencePending)
	inside.Note = "physio appointment"
	outside := testutil.NewMark(day(25), domain.AvailabilityAvailable)
	require.NoError(t, store.Create(ctx, &inside))
	require.NoError(t, store.Create(ctx, &outside))

	got, err := store.ListByDateRange(ctx, day(9), day(12))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inside.ID, got[0].ID)
	assert.Equal(t, domain.AvailabilityAbsencePending, got[0].Kind)
	assert.Equal(t, "physio appointment", got[0].Note)
	assert.True(t, got[0].Date.Equal(day(10)))
}

func TestAvailabilityStore_SetKind(t *testing.T) {
	store := NewSQLiteAvailabilityStore(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewMark(day(10), domain.AvailabilityAbsencePending)
	require.NoError(t, store.Create(ctx, &m))

	// Approving an absence request.
	require.NoError(t, store.SetKind(ctx, m.ID, domain.AvailabilityAbsenceApproved))

	got, err := store.ListByDateRange(ctx, day(10), day(10))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.AvailabilityAbsenceApproved, got[0].Kind)

	assert.ErrorIs(t, store.SetKind(ctx, "nope", domain.AvailabilityAvailable), ErrNotFound)
}

func TestAvailabilityStore_Delete(t *testing.T) {
	store := NewSQLiteAvailabilityStore(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewMark(day(10), domain.AvailabilityUnavailable)
	require.NoError(t, store.Create(ctx, &m))
	require.NoError(t, store.Delete(ctx, m.ID))

	got, err := store.ListByDateRange(ctx, day(10), day(10))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.ErrorIs(t, store.Delete(ctx, m.ID), ErrNotFound)
}
