package adp

import (
	"strings"

	"adp-lms-sync/internal/domain"
)

func toWorker(a apiWorker) domain.Worker {
	name := a.Person.LegalName
	if p := a.Person.PreferredName; p != nil && strings.TrimSpace(p.GivenName) != "" {
		name.GivenName = p.GivenName
	}

	w := domain.Worker{
		ID:        strings.TrimSpace(a.AssociateOID),
		WorkerID:  strings.TrimSpace(a.WorkerID.IDValue),
		FirstName: strings.TrimSpace(name.GivenName),
		LastName:  strings.TrimSpace(name.FamilyName1),
		FullName:  strings.TrimSpace(name.FormattedName),
		Email:     workEmail(a),
		Status:    domain.ParseStatus(a.WorkerStatus.StatusCode.CodeValue),
	}

	wa, ok := primaryAssignment(a.WorkAssignments)
	if !ok {
		return w
	}
	if w.Status == domain.StatusUnknown {
		w.Status = domain.ParseStatus(wa.AssignmentStatus.StatusCode.CodeValue)
	}
	w.JobTitle = strings.TrimSpace(wa.JobTitle)
	if w.JobTitle == "" {
		w.JobTitle = strings.TrimSpace(wa.JobCode.label())
	}
	w.Department = department(wa)

	for _, r := range wa.ReportsTo {
		id := strings.TrimSpace(r.AssociateOID)
		if id == "" {
			id = strings.TrimSpace(r.WorkerID.IDValue)
		}
		if id == "" {
			continue
		}
		w.ManagerID = id
		w.ManagerName = strings.TrimSpace(r.ReportsToWorkerName.FormattedName)
		break
	}
	return w
}

func workEmail(a apiWorker) string {
	for _, e := range a.BusinessCommunication.Emails {
		if v := strings.TrimSpace(e.EmailURI); v != "" {
			return strings.TrimPrefix(v, "mailto:")
		}
	}
	return ""
}

// primaryAssignment prefers the assignment flagged primary, else the first.
func primaryAssignment(was []workAssignment) (workAssignment, bool) {
	if len(was) == 0 {
		return workAssignment{}, false
	}
	for _, wa := range was {
		if wa.PrimaryIndicator {
			return wa, true
		}
	}
	return was[0], true
}

func department(wa workAssignment) string {
	for _, u := range wa.HomeOrganizationalUnits {
		if strings.EqualFold(u.TypeCode.CodeValue, "Department") {
			return strings.TrimSpace(u.NameCode.label())
		}
	}
	if len(wa.HomeOrganizationalUnits) > 0 {
		return strings.TrimSpace(wa.HomeOrganizationalUnits[0].NameCode.label())
	}
	return ""
}
