package adp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adp-lms-sync/internal/apperr"
	"adp-lms-sync/internal/domain"
)

type fakeLister struct {
	workers []domain.Worker
	err     error
	calls   int
}

func (f *fakeLister) ListWorkers(context.Context) ([]domain.Worker, error) {
	f.calls++
	return f.workers, f.err
}

func roster() []domain.Worker {
	return []domain.Worker{
		{ID: "1", FullName: "Carla Chief", Email: "carla@example.com", Status: domain.StatusActive},
		{ID: "2", FullName: "Ana Diaz", Email: "ana@example.com", Status: domain.StatusActive, ManagerID: "1"},
		{ID: "3", FullName: "Tom Gone", Email: "tom@example.com", Status: domain.StatusTerminated, ManagerID: "2"},
		{ID: "4", FullName: "Eve Evans", Email: "eve@example.com", Status: domain.StatusActive, ManagerID: "3"},
		{ID: "5", FullName: "Joe Jones", Email: "joe@example.com", Status: domain.StatusActive, ManagerID: "1"},
	}
}

func ids(ws []domain.Worker) []string {
	var out []string
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

func TestDirectoryFetchesOnce(t *testing.T) {
	src := &fakeLister{workers: roster()}
	d := NewDirectory(src)
	ctx := context.Background()

	active, err := d.ListActiveWorkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "4", "5"}, ids(active))

	all, err := d.Roster(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	assert.Equal(t, 1, src.calls)
}

func TestDirectoryListWorkersUnderManager(t *testing.T) {
	d := NewDirectory(&fakeLister{workers: roster()})

	got, err := d.ListWorkersUnderManager(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, ids(got), "indirect report through a terminated manager")

	got, err = d.ListWorkersUnderManager(context.Background(), "Carla Chief")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2", "4", "5"}, ids(got))

	_, err = d.ListWorkersUnderManager(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDirectoryFindWorker(t *testing.T) {
	d := NewDirectory(&fakeLister{workers: roster()})

	w, err := d.FindWorker(context.Background(), "JOE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "5", w.ID)

	w, err = d.FindWorker(context.Background(), "3")
	require.NoError(t, err)
	assert.False(t, w.Active())

	_, err = d.FindWorker(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDirectoryPropagatesSourceError(t *testing.T) {
	boom := apperr.New(apperr.CodeAuth, "adp", "token rejected")
	d := NewDirectory(&fakeLister{err: boom})

	_, err := d.ListActiveWorkers(context.Background())
	assert.True(t, errors.Is(err, apperr.ErrAuth))
}
