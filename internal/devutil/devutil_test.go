package devutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
)

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore("a@x.com")

	_, err := s.FindUserByEmail(ctx, "b@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	acc, err := s.CreateUser(ctx, domain.Worker{Email: "b@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "2", acc.ID)

	_, err = s.CreateUser(ctx, domain.Worker{Email: "A@x.com"})
	assert.ErrorIs(t, err, apperr.ErrDuplicate)

	all, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, []string{all[0].ID, all[1].ID})

	deleted, err := s.DeleteUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "1", deleted.ID)
	assert.Equal(t, 1, s.Len())
}

func TestSampleOrg(t *testing.T) {
	org := SampleOrg()
	require.Len(t, org, 6)
	assert.Equal(t, domain.StatusTerminated, org[3].Status)

	r := &Roster{Workers: org}
	got, err := r.ListWorkers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Equal(t, 1, r.Calls)
}
