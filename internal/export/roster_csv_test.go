package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/sync"
)

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRosterCSV(t *testing.T) {
	workers := []domain.Worker{
		{ID: "A1", WorkerID: "W1", FirstName: "Ana", LastName: "Diaz", Email: "ana@x.com", Status: domain.StatusActive, JobTitle: "Engineer,\nSenior", Department: "Eng", ManagerID: "A0", ManagerName: "Carla"},
		{ID: "A2", FirstName: "Tom", Email: "tom@x.com", Status: domain.StatusTerminated},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteRosterCSV(&buf, workers, []domain.Account{{Email: "ANA@x.com"}}))

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, rosterHeader, rows[0])
	assert.Equal(t, []string{"A1", "W1", "Ana", "Diaz", "ana@x.com", "active", "Engineer, Senior", "Eng", "A0", "Carla", "yes"}, rows[1])
	assert.Equal(t, "no", rows[2][10])
	assert.Contains(t, buf.String(), "\r\n")
}

func TestWriteRosterCSVWithoutAccounts(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteRosterCSV(&buf, []domain.Worker{{ID: "A1", Email: "a@x.com"}}, nil))

	rows := readCSV(t, buf.Bytes())
	assert.Equal(t, "", rows[1][10])
}

func TestWriteSyncReportCSV(t *testing.T) {
	rep := sync.Report{Results: []sync.Result{
		{Worker: domain.Worker{FullName: "Ana Diaz", Email: "ana@x.com"}, Outcome: sync.OutcomeCreated, AccountID: "12", Warning: "enrollment failed"},
		{Worker: domain.Worker{FullName: "Bob", Email: "bad"}, Outcome: sync.OutcomeFailed, Reason: "malformed work email"},
	}}
	var buf bytes.Buffer

	require.NoError(t, WriteSyncReportCSV(&buf, rep))

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ana@x.com", "Ana Diaz", "created", "12", "", "enrollment failed"}, rows[1])
	assert.Equal(t, "failed", rows[2][2])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteRosterCSVWriteError(t *testing.T) {
	err := WriteRosterCSV(failingWriter{}, []domain.Worker{{ID: "A1"}}, nil)
	assert.Error(t, err)
}
