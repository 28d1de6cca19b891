package export

import (
	"encoding/csv"
	"io"
	"strings"

	"adp-lms-sync/internal/domain"
	"adp-lms-sync/internal/sync"
)

var rosterHeader = []string{
	"ASSOCIATE_ID",
	"WORKER_ID",
	"FIRST_NAME",
	"LAST_NAME",
	"EMAIL",
	"STATUS",
	"JOB_TITLE",
	"DEPARTMENT",
	"MANAGER_ID",
	"MANAGER_NAME",
	"HAS_TALENTLMS_ACCOUNT",
}

// WriteRosterCSV writes one row per worker. With accounts == nil the
// HAS_TALENTLMS_ACCOUNT column is left empty.
func WriteRosterCSV(w io.Writer, workers []domain.Worker, accounts []domain.Account) error {
	var have map[string]bool
	if accounts != nil {
		have = make(map[string]bool, len(accounts))
		for _, a := range accounts {
			have[domain.NormalizeEmail(a.Email)] = true
		}
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(rosterHeader); err != nil {
		return err
	}
	for _, wk := range workers {
		account := ""
		if have != nil {
			account = yesNo(have[domain.NormalizeEmail(wk.Email)])
		}
		row := []string{
			wk.ID,
			wk.WorkerID,
			clean(wk.FirstName),
			clean(wk.LastName),
			strings.TrimSpace(wk.Email),
			string(wk.Status),
			clean(wk.JobTitle),
			clean(wk.Department),
			wk.ManagerID,
			clean(wk.ManagerName),
			account,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var reportHeader = []string{"EMAIL", "NAME", "OUTCOME", "ACCOUNT_ID", "REASON", "WARNING"}

// WriteSyncReportCSV writes the per-worker results of a sync run.
func WriteSyncReportCSV(w io.Writer, rep sync.Report) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, r := range rep.Results {
		row := []string{
			strings.TrimSpace(r.Worker.Email),
			clean(r.Worker.DisplayName()),
			string(r.Outcome),
			r.AccountID,
			clean(r.Reason),
			clean(r.Warning),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// clean collapses whitespace, including newlines, so every record stays
// on one line.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
