package domain

import "strings"

type WorkerStatus string

const (
	StatusActive     WorkerStatus = "active"
	StatusTerminated WorkerStatus = "terminated"
	StatusUnknown    WorkerStatus = "unknown"
)

// Worker is an employee record as read from the HR platform. It is never
// written back.
type Worker struct {
	ID       string // ADP associateOID
	WorkerID string // ADP workerID.idValue

	FirstName string
	LastName  string
	FullName  string
	Email     string // work email

	Status WorkerStatus

	// ManagerID holds whatever identifier the HR record uses for the
	// manager (associateOID or workerID). Empty for roots.
	ManagerID   string
	ManagerName string

	JobTitle   string
	Department string
}

func (w Worker) Active() bool { return w.Status == StatusActive }

// DisplayName prefers the formatted name and falls back to "first last",
// then the email, then the id.
func (w Worker) DisplayName() string {
	if n := strings.TrimSpace(w.FullName); n != "" {
		return n
	}
	if n := strings.TrimSpace(strings.TrimSpace(w.FirstName) + " " + strings.TrimSpace(w.LastName)); n != "" {
		return n
	}
	if w.Email != "" {
		return w.Email
	}
	return w.ID
}

// Key identifies a worker within one roster.
func (w Worker) Key() string {
	if w.ID != "" {
		return w.ID
	}
	return w.WorkerID
}

// NormalizeEmail is the comparison form of an address: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseStatus maps HR status codes ("Active", "Terminated", "Inactive", ...)
// onto WorkerStatus.
func ParseStatus(code string) WorkerStatus {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "active", "a":
		return StatusActive
	case "terminated", "inactive", "t", "deceased", "retired":
		return StatusTerminated
	default:
		return StatusUnknown
	}
}
