package devutil

import (
	"context"

	"adp-lms-sync/internal/domain"
)

// Roster is an adp.WorkerLister over a fixed slice.
type Roster struct {
	Workers []domain.Worker
	Err     error
	Calls   int
}

func (r *Roster) ListWorkers(context.Context) ([]domain.Worker, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	return append([]domain.Worker(nil), r.Workers...), nil
}

// Worker builds an active worker; set Status or ManagerID on the result as
// needed.
func Worker(id, first, last, email string) domain.Worker {
	return domain.Worker{
		ID:        id,
		WorkerID:  "W" + id,
		FirstName: first,
		LastName:  last,
		FullName:  first + " " + last,
		Email:     email,
		Status:    domain.StatusActive,
	}
}

// SampleOrg is a small roster with a terminated middle manager:
//
//	1 Carla Chief
//	├── 2 Ana Diaz
//	│   ├── 3 Bob Brown
//	│   └── 4 Tom Gone (terminated)
//	│       └── 5 Eve Evans
//	└── 6 Joe Jones
func SampleOrg() []domain.Worker {
	carla := Worker("1", "Carla", "Chief", "carla@example.com")
	carla.JobTitle = "CEO"
	ana := Worker("2", "Ana", "Diaz", "ana@example.com")
	ana.ManagerID, ana.JobTitle = "1", "Engineering Manager"
	bob := Worker("3", "Bob", "Brown", "bob@example.com")
	bob.ManagerID, bob.JobTitle = "2", "Engineer"
	tom := Worker("4", "Tom", "Gone", "tom@example.com")
	tom.ManagerID, tom.JobTitle, tom.Status = "2", "Team Lead", domain.StatusTerminated
	eve := Worker("5", "Eve", "Evans", "eve@example.com")
	eve.ManagerID, eve.JobTitle = "4", "Engineer"
	joe := Worker("6", "Joe", "Jones", "joe@example.com")
	joe.ManagerID, joe.JobTitle = "1", "Designer"
	return []domain.Worker{carla, ana, bob, tom, eve, joe}
}
